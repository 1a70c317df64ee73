package playwright

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"newsletter-agent/internal/application/port/output"
	"newsletter-agent/internal/domain/entity"
	"newsletter-agent/internal/domain/selector"
	"newsletter-agent/internal/infrastructure/browser"
)

const (
	actionTimeout     = 10 * time.Second
	screenshotQuality = 80
)

var (
	_ output.BrowserLauncher = (*Launcher)(nil)
	_ output.BrowserPort     = (*BrowserAdapter)(nil)
	_ output.ElementPort     = (*elementAdapter)(nil)
)

type BrowserConfig struct {
	Headless  bool
	UserAgent string
}

func DefaultConfig() BrowserConfig {
	return BrowserConfig{
		Headless:  true,
		UserAgent: browser.DefaultUserAgent,
	}
}

// Launcher starts the Playwright driver and a Chromium instance per Launch.
type Launcher struct {
	cfg    BrowserConfig
	logger output.LoggerPort
}

func NewLauncher(cfg BrowserConfig, logger output.LoggerPort) *Launcher {
	return &Launcher{cfg: cfg, logger: logger.Named("playwright")}
}

func (l *Launcher) Name() string { return "playwright" }

func (l *Launcher) Launch(ctx context.Context) (output.BrowserPort, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, entity.NewError(entity.KindInternal, "failed to start playwright", err)
	}
	adapter := &BrowserAdapter{pw: pw, logger: l.logger}

	adapter.browser, err = pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(l.cfg.Headless),
		Args:     []string{"--no-sandbox", "--disable-setuid-sandbox"},
	})
	if err != nil {
		adapter.Close()
		return nil, entity.NewError(entity.KindInternal, "failed to launch browser", err)
	}

	opts := playwright.BrowserNewContextOptions{}
	if l.cfg.UserAgent != "" {
		opts.UserAgent = playwright.String(l.cfg.UserAgent)
	}
	adapter.context, err = adapter.browser.NewContext(opts)
	if err != nil {
		adapter.Close()
		return nil, entity.NewError(entity.KindInternal, "failed to create browser context", err)
	}

	adapter.page, err = adapter.context.NewPage()
	if err != nil {
		adapter.Close()
		return nil, entity.NewError(entity.KindInternal, "failed to open page", err)
	}

	return adapter, nil
}

// BrowserAdapter owns a Playwright driver process, one browser, one context
// and one page.
type BrowserAdapter struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	logger  output.LoggerPort

	closeOnce sync.Once
}

func (b *BrowserAdapter) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := b.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	}); err != nil {
		return entity.NewError(entity.KindNetwork, "navigation failed", err)
	}
	return nil
}

func (b *BrowserAdapter) Find(ctx context.Context, sel selector.Selector) (output.ElementPort, error) {
	return find(ctx, b.page.Locator(sel.String()), sel)
}

// SubmitAndWait clicks inside ExpectResponse so the listener is registered
// first. An expired wait reports false without an error.
func (b *BrowserAdapter) SubmitAndWait(ctx context.Context, el output.ElementPort, match output.ResponseMatcher, timeout time.Duration) (bool, error) {
	var clickErr error
	_, err := b.page.ExpectResponse(func(r playwright.Response) bool {
		return match(r.URL(), r.Status())
	}, func() error {
		clickErr = el.Click(ctx)
		return clickErr
	}, playwright.PageExpectResponseOptions{
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if clickErr != nil {
		return false, clickErr
	}
	if err != nil {
		b.logger.Debug("No confirmation response observed", "error", err)
		return false, nil
	}
	return true, nil
}

func (b *BrowserAdapter) GetPageText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := b.page.Locator("body").InnerText()
	if err != nil {
		return "", fmt.Errorf("failed to read page text: %w", err)
	}
	return text, nil
}

func (b *BrowserAdapter) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := b.page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
		Type:     playwright.ScreenshotTypeJpeg,
		Quality:  playwright.Int(screenshotQuality),
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}
	return browser.CompressScreenshot(raw)
}

func (b *BrowserAdapter) CurrentURL() string {
	if b.page == nil {
		return ""
	}
	return b.page.URL()
}

// Close tears down page, context, browser and driver in that order and
// ignores their errors.
func (b *BrowserAdapter) Close() {
	b.closeOnce.Do(func() {
		if b.page != nil {
			_ = b.page.Close()
		}
		if b.context != nil {
			_ = b.context.Close()
		}
		if b.browser != nil {
			_ = b.browser.Close()
		}
		if b.pw != nil {
			if err := b.pw.Stop(); err != nil {
				b.logger.Warn("Failed to stop playwright", "error", err)
			}
		}
	})
}

type elementAdapter struct {
	loc playwright.Locator
}

func (e *elementAdapter) Find(ctx context.Context, sel selector.Selector) (output.ElementPort, error) {
	return find(ctx, e.loc.Locator(sel.String()), sel)
}

func (e *elementAdapter) Fill(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.loc.Fill(text, playwright.LocatorFillOptions{
		Timeout: playwright.Float(float64(actionTimeout.Milliseconds())),
	}); err != nil {
		return fmt.Errorf("input failed: %w", err)
	}
	return nil
}

func (e *elementAdapter) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.loc.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(float64(actionTimeout.Milliseconds())),
	}); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}
	return nil
}

func find(ctx context.Context, loc playwright.Locator, sel selector.Selector) (output.ElementPort, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	first := loc.First()
	n, err := first.Count()
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", sel, err)
	}
	if n == 0 {
		return nil, entity.NewError(entity.KindElementNotFound, "no element matches "+sel.String(), nil)
	}
	return &elementAdapter{loc: first}, nil
}
