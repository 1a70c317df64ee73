package browserbase

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
	"newsletter-agent/internal/infrastructure/httpapi"
)

const (
	navigateSettle = 3 * time.Second
	submitSettle   = 5 * time.Second
	cleanupTimeout = 10 * time.Second
)

const (
	msgNoAPIKey = "Browserbase API key not configured"
	msgNoInput  = "Could not find or fill email input field"
	msgNoSubmit = "Could not find or click submit button"
)

var _ input.Automation = (*Automation)(nil)

type Config struct {
	APIKey    string
	BaseURL   string
	ProjectID string
	Timeout   time.Duration
}

// Automation signs up through a remote browser session. Fixed settle delays
// stand in for load detection, which the session API does not expose.
type Automation struct {
	cfg    Config
	client *Client
	logger output.LoggerPort

	sleep          func(ctx context.Context, d time.Duration)
	navigateSettle time.Duration
	submitSettle   time.Duration
}

func New(cfg Config, logger output.LoggerPort) *Automation {
	logger = logger.Named("browserbase")
	return &Automation{
		cfg:            cfg,
		client:         NewClient(cfg.BaseURL, cfg.APIKey, cfg.Timeout, logger),
		logger:         logger,
		sleep:          sleepContext,
		navigateSettle: navigateSettle,
		submitSettle:   submitSettle,
	}
}

func (a *Automation) Name() string {
	return string(entity.FrameworkBrowserbase)
}

func (a *Automation) SignUp(ctx context.Context, url, email string) (res entity.AutomationResult) {
	details := map[string]any{
		"url":       url,
		"email":     email,
		"framework": entity.FrameworkBrowserbase,
	}

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("Signup panicked", "url", url, "panic", r)
			res = entity.Failure(entity.NewError(entity.KindInternal, fmt.Sprintf("unexpected failure: %v", r), nil), details)
		}
	}()

	if a.cfg.APIKey == "" {
		return entity.Failure(entity.NewError(entity.KindConfiguration, msgNoAPIKey, nil), details)
	}

	sessionID, err := a.client.CreateSession(ctx, a.cfg.ProjectID)
	if err != nil {
		return entity.Failure(remoteError("Failed to create session", err), details)
	}
	details["sessionId"] = sessionID

	log := a.logger.WithFields(map[string]any{"sessionId": sessionID, "url": url})
	defer a.closeSession(ctx, sessionID, log)

	if err := a.run(ctx, sessionID, url, email, details); err != nil {
		log.Warn("Signup failed", "error", err)
		return entity.Failure(err, details)
	}

	log.Info("Signup submitted", "confirmationDetected", details["confirmationDetected"])
	return entity.Succeeded(details)
}

func (a *Automation) run(ctx context.Context, sessionID, url, email string, details map[string]any) error {
	if err := a.client.Navigate(ctx, sessionID, url); err != nil {
		return remoteError("Failed to navigate", err)
	}
	a.sleep(ctx, a.navigateSettle)

	_, filled, err := selector.First(ctx, selector.EmailInputs, func(ctx context.Context, sel selector.Selector) (struct{}, error) {
		return struct{}{}, a.client.Fill(ctx, sessionID, sel.String(), email)
	})
	if err != nil {
		return chainError(ctx, err, msgNoInput)
	}

	_, clicked, err := selector.First(ctx, selector.SubmitButtons, func(ctx context.Context, sel selector.Selector) (struct{}, error) {
		return struct{}{}, a.client.Click(ctx, sessionID, sel.String())
	})
	if err != nil {
		return chainError(ctx, err, msgNoSubmit)
	}
	details["emailSelector"] = filled.String()
	details["submitSelector"] = clicked.String()

	a.sleep(ctx, a.submitSettle)

	confirmed, err := a.client.Evaluate(ctx, sessionID, confirmationExpression())
	if err != nil {
		a.logger.Debug("Confirmation check failed", "error", err)
	}
	details["confirmationDetected"] = confirmed
	return nil
}

// closeSession runs detached from ctx so that a canceled signup still frees
// the remote session. Failures are only logged.
func (a *Automation) closeSession(ctx context.Context, sessionID string, log output.LoggerPort) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()
	if err := a.client.DeleteSession(ctx, sessionID); err != nil {
		log.Debug("Session cleanup failed", "error", err)
	}
}

// confirmationExpression checks the page for confirmation phrases and
// success-marker elements.
func confirmationExpression() string {
	checks := make([]string, 0, len(selector.ConfirmationPhrases)+len(selector.SuccessMarkers))
	for _, phrase := range selector.ConfirmationPhrases {
		checks = append(checks, fmt.Sprintf("document.body.innerText.includes(%q)", phrase))
	}
	for _, sel := range selector.SuccessMarkers {
		checks = append(checks, fmt.Sprintf("document.querySelector(%q) !== null", sel.CSS))
	}
	return strings.Join(checks, " ||\n")
}

func remoteError(prefix string, err error) error {
	if apiErr, ok := httpapi.AsAPIError(err); ok {
		return entity.NewError(entity.KindRemoteAPI, prefix+": "+apiErr.Reason(), nil)
	}
	return err
}

func chainError(ctx context.Context, err error, msg string) error {
	if errors.Is(err, selector.ErrNoMatch) {
		return entity.NewError(entity.KindElementNotFound, msg, nil)
	}
	if ctx.Err() != nil {
		return entity.NewError(entity.KindTimeout, "signup canceled", err)
	}
	return err
}

func sleepContext(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
