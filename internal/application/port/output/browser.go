package output

import (
	"context"
	"time"

	"newsletter-agent/internal/domain/entity"
	"newsletter-agent/internal/domain/selector"
)

// BrowserLauncher starts an isolated browser and hands out its only page.
type BrowserLauncher interface {
	Name() string
	Launch(ctx context.Context) (BrowserPort, error)
}

// ResponseMatcher decides whether a network response counts as a
// confirmation of the submitted form.
type ResponseMatcher func(url string, status int) bool

// BrowserPort is a single page owned by one signup attempt. Close releases
// the page and the browser process behind it.
type BrowserPort interface {
	Navigate(ctx context.Context, url string) error
	Find(ctx context.Context, sel selector.Selector) (ElementPort, error)
	SubmitAndWait(ctx context.Context, el ElementPort, match ResponseMatcher, timeout time.Duration) (bool, error)
	GetPageText(ctx context.Context) (string, error)
	Screenshot(ctx context.Context) (*entity.Screenshot, error)
	CurrentURL() string
	Close()
}

type ElementPort interface {
	Find(ctx context.Context, sel selector.Selector) (ElementPort, error)
	Fill(ctx context.Context, text string) error
	Click(ctx context.Context) error
}
