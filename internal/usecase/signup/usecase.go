package signup

import (
	"context"
	"net/url"
	"strings"
	"time"

	"newsletter-agent/internal/application/port/input"
	"newsletter-agent/internal/application/port/output"
	"newsletter-agent/internal/domain/entity"
	"newsletter-agent/internal/infrastructure/mailbox"
)

type Request struct {
	URL       string
	Framework entity.Framework
	// Email is generated when empty.
	Email string
}

type Outcome struct {
	URL       string           `json:"url"`
	Email     string           `json:"email"`
	Framework entity.Framework `json:"framework"`
	// Disposable reports whether Email belongs to the generator's domain.
	Disposable bool                    `json:"disposable"`
	Duration   int64                   `json:"duration"`
	Result     entity.AutomationResult `json:"result"`
}

type UseCase struct {
	registry input.AutomationRegistry
	mailbox  output.AddressGenerator
	logger   output.LoggerPort
}

func New(registry input.AutomationRegistry, mailbox output.AddressGenerator, logger output.LoggerPort) *UseCase {
	return &UseCase{registry: registry, mailbox: mailbox, logger: logger.Named("signup")}
}

// Execute validates the request and hands it to the chosen backend. Only
// request problems are returned as errors; backend failures stay inside
// Outcome.Result.
func (u *UseCase) Execute(ctx context.Context, req Request) (*Outcome, error) {
	if err := validateURL(req.URL); err != nil {
		return nil, err
	}

	framework := req.Framework
	if framework == "" {
		framework = entity.FrameworkHeadless
	}
	automation, ok := u.registry.Get(framework)
	if !ok {
		return nil, entity.NewError(entity.KindConfiguration, "framework not available: "+framework.String(), nil)
	}

	email := req.Email
	if email == "" {
		email = u.mailbox.Generate()
	} else if !mailbox.IsValid(email) {
		return nil, entity.NewError(entity.KindConfiguration, "invalid email address: "+email, nil)
	}

	u.logger.Info("Signing up", "url", req.URL, "framework", framework, "email", email)
	start := time.Now()
	res := automation.SignUp(ctx, req.URL, email)

	return &Outcome{
		URL:        req.URL,
		Email:      email,
		Framework:  framework,
		Disposable: strings.EqualFold(mailbox.DomainOf(email), u.mailbox.Domain()),
		Duration:   time.Since(start).Milliseconds(),
		Result:     res,
	}, nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return entity.NewError(entity.KindConfiguration, "invalid url: "+raw, nil)
	}
	return nil
}
