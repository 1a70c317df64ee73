package rod

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"

	"newsletter-agent/internal/application/port/output"
	"newsletter-agent/internal/domain/entity"
	"newsletter-agent/internal/domain/selector"
	"newsletter-agent/internal/infrastructure/browser"
)

const (
	defaultIdleTimeout = 5 * time.Second
	screenshotQuality  = 80
)

var (
	_ output.BrowserLauncher = (*Launcher)(nil)
	_ output.BrowserPort     = (*BrowserAdapter)(nil)
	_ output.ElementPort     = (*elementAdapter)(nil)
)

type BrowserConfig struct {
	Headless    bool
	NoSandbox   bool
	Stealth     bool
	UserAgent   string
	IdleTimeout time.Duration
}

func DefaultConfig() BrowserConfig {
	return BrowserConfig{
		Headless:    true,
		NoSandbox:   true,
		UserAgent:   browser.DefaultUserAgent,
		IdleTimeout: defaultIdleTimeout,
	}
}

// Launcher starts a fresh Chromium per Launch call. Nothing is shared between
// the browsers it hands out.
type Launcher struct {
	cfg    BrowserConfig
	logger output.LoggerPort
}

func NewLauncher(cfg BrowserConfig, logger output.LoggerPort) *Launcher {
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = defaultIdleTimeout
	}
	return &Launcher{cfg: cfg, logger: logger.Named("rod")}
}

func (l *Launcher) Name() string { return "rod" }

func (l *Launcher) Launch(ctx context.Context) (output.BrowserPort, error) {
	ln := launcher.New().
		Context(ctx).
		Headless(l.cfg.Headless).
		NoSandbox(l.cfg.NoSandbox).
		Delete("use-mock-keychain").
		Set("disable-setuid-sandbox")

	url, err := ln.Launch()
	if err != nil {
		ln.Cleanup()
		return nil, entity.NewError(entity.KindInternal, "failed to launch browser", err)
	}

	b := rod.New().ControlURL(url).Context(ctx)
	if err := b.Connect(); err != nil {
		ln.Kill()
		ln.Cleanup()
		return nil, entity.NewError(entity.KindInternal, "failed to connect to browser", err)
	}

	adapter := &BrowserAdapter{browser: b, launcher: ln, idle: l.cfg.IdleTimeout, logger: l.logger}

	page, err := l.openPage(b)
	if err != nil {
		adapter.Close()
		return nil, entity.NewError(entity.KindInternal, "failed to open page", err)
	}
	adapter.page = page

	if l.cfg.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: l.cfg.UserAgent}); err != nil {
			l.logger.Warn("Failed to override user agent", "error", err)
		}
	}

	return adapter, nil
}

func (l *Launcher) openPage(b *rod.Browser) (*rod.Page, error) {
	if l.cfg.Stealth {
		return stealth.Page(b)
	}
	return b.Page(proto.TargetCreateTarget{URL: "about:blank"})
}

// BrowserAdapter owns one browser process and its single page.
type BrowserAdapter struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	idle     time.Duration
	logger   output.LoggerPort
	closed   atomic.Bool
}

func (b *BrowserAdapter) Navigate(ctx context.Context, url string) error {
	p := b.page.Context(ctx)
	if err := p.Navigate(url); err != nil {
		return entity.NewError(entity.KindNetwork, "navigation failed", err)
	}
	if err := p.WaitLoad(); err != nil {
		return entity.NewError(entity.KindNetwork, "page did not load", err)
	}
	if err := p.WaitIdle(b.idle); err != nil {
		b.logger.Debug("Page did not become idle", "url", url, "error", err)
	}
	return nil
}

func (b *BrowserAdapter) Find(ctx context.Context, sel selector.Selector) (output.ElementPort, error) {
	p := b.page.Context(ctx)

	var (
		has bool
		el  *rod.Element
		err error
	)
	if sel.Text != "" {
		has, el, err = p.HasR(sel.CSS, textRegex(sel.Text))
	} else {
		has, el, err = p.Has(sel.CSS)
	}
	return wrapElement(sel, has, el, err)
}

// SubmitAndWait arms the response listener before clicking so that a fast
// confirmation is not missed. A response that never arrives is not an error.
func (b *BrowserAdapter) SubmitAndWait(ctx context.Context, el output.ElementPort, match output.ResponseMatcher, timeout time.Duration) (bool, error) {
	var seen atomic.Bool
	wait := b.page.Context(ctx).Timeout(timeout).EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Response != nil && match(e.Response.URL, e.Response.Status) {
			seen.Store(true)
			return true
		}
		return false
	})

	if err := el.Click(ctx); err != nil {
		return false, err
	}
	wait()

	return seen.Load(), nil
}

func (b *BrowserAdapter) GetPageText(ctx context.Context) (string, error) {
	res, err := b.page.Context(ctx).Eval(`() => document.body ? document.body.innerText : ""`)
	if err != nil {
		return "", fmt.Errorf("failed to read page text: %w", err)
	}
	return res.Value.String(), nil
}

func (b *BrowserAdapter) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	imgBytes, err := b.page.Context(ctx).Screenshot(true, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: gson.Int(screenshotQuality),
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}
	return browser.CompressScreenshot(imgBytes)
}

func (b *BrowserAdapter) CurrentURL() string {
	info, err := b.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

// Close is idempotent. The page goes first, then the browser, then the
// Chromium process and its profile directory.
func (b *BrowserAdapter) Close() {
	if !b.closed.CompareAndSwap(false, true) {
		return
	}
	if b.page != nil {
		_ = b.page.Close()
	}
	if b.browser != nil {
		_ = b.browser.Close()
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher.Cleanup()
	}
}

type elementAdapter struct {
	el *rod.Element
}

func (e *elementAdapter) Find(ctx context.Context, sel selector.Selector) (output.ElementPort, error) {
	scoped := e.el.Context(ctx)

	var (
		has bool
		el  *rod.Element
		err error
	)
	if sel.Text != "" {
		has, el, err = scoped.HasR(sel.CSS, textRegex(sel.Text))
	} else {
		has, el, err = scoped.Has(sel.CSS)
	}
	return wrapElement(sel, has, el, err)
}

func (e *elementAdapter) Fill(ctx context.Context, text string) error {
	el := e.el.Context(ctx)
	if err := el.SelectAllText(); err == nil {
		_ = el.Input("")
	}
	if err := el.Input(text); err != nil {
		return fmt.Errorf("input failed: %w", err)
	}
	return nil
}

func (e *elementAdapter) Click(ctx context.Context) error {
	if err := e.el.Context(ctx).Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}
	return nil
}

func wrapElement(sel selector.Selector, has bool, el *rod.Element, err error) (output.ElementPort, error) {
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", sel, err)
	}
	if !has || el == nil {
		return nil, entity.NewError(entity.KindElementNotFound, "no element matches "+sel.String(), nil)
	}
	return &elementAdapter{el: el}, nil
}

// textRegex builds the case-insensitive JS regex rod matches element text with.
func textRegex(text string) string {
	return "/" + strings.ReplaceAll(regexp.QuoteMeta(text), "/", `\/`) + "/i"
}
