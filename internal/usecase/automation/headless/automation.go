package headless

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"newsletter-agent/internal/application/port/input"
	"newsletter-agent/internal/application/port/output"
	"newsletter-agent/internal/domain/entity"
	"newsletter-agent/internal/domain/selector"
)

const (
	signupTimeout   = 2 * time.Minute
	responseTimeout = 10 * time.Second
)

const (
	msgNoForm   = "No newsletter signup form found on the page"
	msgNoInput  = "No email input field found in the form"
	msgNoSubmit = "No submit button found in the form"
)

var confirmationKeywords = []string{"subscribe", "newsletter", "signup"}

var _ input.Automation = (*Automation)(nil)

type Config struct {
	CaptureScreenshot bool
}

// Automation drives a local browser through the signup form. Every call
// launches its own browser and tears it down before returning.
type Automation struct {
	launcher          output.BrowserLauncher
	logger            output.LoggerPort
	captureScreenshot bool

	signupTimeout   time.Duration
	responseTimeout time.Duration
}

func New(launcher output.BrowserLauncher, cfg Config, logger output.LoggerPort) *Automation {
	return &Automation{
		launcher:          launcher,
		logger:            logger.Named("headless"),
		captureScreenshot: cfg.CaptureScreenshot,
		signupTimeout:     signupTimeout,
		responseTimeout:   responseTimeout,
	}
}

func (a *Automation) Name() string {
	return string(entity.FrameworkHeadless)
}

func (a *Automation) SignUp(ctx context.Context, url, email string) (res entity.AutomationResult) {
	details := map[string]any{
		"url":       url,
		"email":     email,
		"framework": entity.FrameworkHeadless,
		"driver":    a.launcher.Name(),
	}
	log := a.logger.WithFields(map[string]any{"url": url, "driver": a.launcher.Name()})

	defer func() {
		if r := recover(); r != nil {
			log.Error("Signup panicked", "panic", r)
			res = entity.Failure(entity.NewError(entity.KindInternal, fmt.Sprintf("unexpected failure: %v", r), nil), details)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, a.signupTimeout)
	defer cancel()

	if err := a.run(ctx, url, email, details, log); err != nil {
		log.Warn("Signup failed", "error", err)
		return entity.Failure(err, details)
	}

	log.Info("Signup submitted",
		"confirmationDetected", details["confirmationDetected"],
		"responseObserved", details["responseObserved"],
	)
	return entity.Succeeded(details)
}

func (a *Automation) run(ctx context.Context, url, email string, details map[string]any, log output.LoggerPort) error {
	page, err := a.launcher.Launch(ctx)
	if err != nil {
		return err
	}
	defer page.Close()

	if err := page.Navigate(ctx, url); err != nil {
		return err
	}

	form, formSel, err := selector.First(ctx, selector.Forms.With(selector.AnyEmailForm), page.Find)
	if err != nil {
		return stageError(ctx, err, msgNoForm)
	}
	log.Debug("Form located", "selector", formSel.String())

	field, _, err := selector.First(ctx, selector.EmailInputs, form.Find)
	if err != nil {
		return stageError(ctx, err, msgNoInput)
	}

	if err := field.Fill(ctx, email); err != nil {
		return err
	}

	submit, _, err := selector.First(ctx, selector.SubmitButtons.With(selector.AnyButton), form.Find)
	if err != nil {
		return stageError(ctx, err, msgNoSubmit)
	}

	observed, err := page.SubmitAndWait(ctx, submit, isConfirmationResponse, a.responseTimeout)
	if err != nil {
		return err
	}
	details["responseObserved"] = observed
	details["confirmationDetected"] = detectConfirmation(ctx, page)
	details["finalUrl"] = page.CurrentURL()

	if a.captureScreenshot {
		shot, err := page.Screenshot(ctx)
		if err != nil {
			log.Warn("Screenshot failed", "error", err)
		} else {
			details["screenshot"] = shot.Data
		}
	}
	return nil
}

func isConfirmationResponse(url string, status int) bool {
	lower := strings.ToLower(url)
	for _, k := range confirmationKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return status == 200
}

// detectConfirmation looks for a success marker element first and falls back
// to the confirmation phrases in the visible page text.
func detectConfirmation(ctx context.Context, page output.BrowserPort) bool {
	if _, _, err := selector.First(ctx, selector.SuccessMarkers, page.Find); err == nil {
		return true
	}
	text, err := page.GetPageText(ctx)
	if err != nil {
		return false
	}
	lower := strings.ToLower(text)
	for _, phrase := range selector.ConfirmationPhrases {
		if strings.Contains(lower, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}

func stageError(ctx context.Context, err error, msg string) error {
	if errors.Is(err, selector.ErrNoMatch) {
		return entity.NewError(entity.KindElementNotFound, msg, nil)
	}
	if ctx.Err() != nil {
		return entity.NewError(entity.KindTimeout, "signup timed out", err)
	}
	return err
}
