package di

import (
	"fmt"

	"newsletter-agent/internal/application/port/input"
	"newsletter-agent/internal/application/port/output"
	"newsletter-agent/internal/application/service"
	"newsletter-agent/internal/domain/entity"
	"newsletter-agent/internal/infrastructure/browser/playwright"
	"newsletter-agent/internal/infrastructure/browser/rod"
	"newsletter-agent/internal/infrastructure/browserbase"
	"newsletter-agent/internal/infrastructure/env"
	"newsletter-agent/internal/infrastructure/llm/openai"
	"newsletter-agent/internal/infrastructure/logger"
	"newsletter-agent/internal/infrastructure/mailbox"
	"newsletter-agent/internal/infrastructure/skyvern"
	"newsletter-agent/internal/usecase/automation/headless"
	"newsletter-agent/internal/usecase/compare"
	"newsletter-agent/internal/usecase/linkextract"
	"newsletter-agent/internal/usecase/signup"
)

type Container struct {
	Logger     output.LoggerPort
	LLM        output.LLMPort
	Mailbox    *mailbox.Generator
	Automation input.AutomationRegistry
	Extractor  input.LinkExtractor
	SignUp     *signup.UseCase
	Compare    *compare.UseCase
}

func NewContainer(cfg env.Config) (*Container, error) {
	log, err := logger.NewLoggerAdapter(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return build(cfg, log)
}

func build(cfg env.Config, log output.LoggerPort) (*Container, error) {
	launcher, err := newLauncher(cfg.Browser, log)
	if err != nil {
		_ = log.Close()
		return nil, err
	}

	registry := service.NewAutomationRegistry()
	for _, f := range entity.Frameworks() {
		registry.Register(f, newAutomation(f, cfg, launcher, log))
	}

	// The semantic strategy stays off without a key; a nil LLM disables it.
	var llm output.LLMPort
	if cfg.OpenAI.APIKey != "" {
		llm = openai.New(openai.Config{
			APIKey:  cfg.OpenAI.APIKey,
			Model:   cfg.OpenAI.Model,
			BaseURL: cfg.OpenAI.BaseURL,
			Logger:  log.Named("openai"),
		})
	} else {
		log.Info("OPENAI_API_KEY not set, semantic link extraction disabled")
	}

	addresses := mailbox.NewGenerator(cfg.EmailDomain)

	return &Container{
		Logger:     log,
		LLM:        llm,
		Mailbox:    addresses,
		Automation: registry,
		Extractor:  linkextract.New(llm, log),
		SignUp:     signup.New(registry, addresses, log),
		Compare:    compare.New(registry, addresses, log),
	}, nil
}

func (c *Container) Close() {
	if c.Logger != nil {
		_ = c.Logger.Close()
	}
}

// newAutomation is the backend table. Each backend only sees the part of the
// configuration it needs.
func newAutomation(f entity.Framework, cfg env.Config, launcher output.BrowserLauncher, log output.LoggerPort) input.Automation {
	switch f {
	case entity.FrameworkHeadless:
		return headless.New(launcher, headless.Config{CaptureScreenshot: cfg.Browser.CaptureScreenshot}, log)
	case entity.FrameworkBrowserbase:
		return browserbase.New(browserbase.Config{
			APIKey:    cfg.Browserbase.APIKey,
			BaseURL:   cfg.Browserbase.BaseURL,
			ProjectID: cfg.Browserbase.ProjectID,
		}, log)
	case entity.FrameworkSkyvern:
		return skyvern.New(skyvern.Config{
			APIKey:  cfg.Skyvern.APIKey,
			BaseURL: cfg.Skyvern.BaseURL,
		}, log)
	default:
		panic(fmt.Sprintf("no automation for framework %q", f))
	}
}

func newLauncher(cfg env.BrowserConfig, log output.LoggerPort) (output.BrowserLauncher, error) {
	switch cfg.Driver {
	case "", "rod":
		rc := rod.DefaultConfig()
		rc.Stealth = cfg.Stealth
		return rod.NewLauncher(rc, log), nil
	case "playwright":
		return playwright.NewLauncher(playwright.DefaultConfig(), log), nil
	default:
		return nil, entity.NewError(entity.KindConfiguration, fmt.Sprintf("unknown browser driver %q", cfg.Driver), nil)
	}
}
