//go:build integration

package rod

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsletter-agent/internal/domain/entity"
	"newsletter-agent/internal/domain/selector"
	"newsletter-agent/internal/infrastructure/logger"
)

const signupPage = `<!DOCTYPE html>
<html>
<head><title>Newsletter</title></head>
<body>
  <form id="newsletter-form" action="/subscribe" method="post" onsubmit="event.preventDefault(); fetch('/subscribe', {method: 'POST'}).then(() => { document.getElementById('msg').textContent = 'Thank you for subscribing!'; });">
    <input type="email" name="email" placeholder="Your email">
    <button type="submit">Subscribe</button>
  </form>
  <div id="msg"></div>
</body>
</html>`

func newSignupServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/subscribe" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, signupPage)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestBrowserAdapter_SignupFlow(t *testing.T) {
	server := newSignupServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	l := NewLauncher(DefaultConfig(), logger.NewNop())
	page, err := l.Launch(ctx)
	require.NoError(t, err)
	defer page.Close()

	require.NoError(t, page.Navigate(ctx, server.URL))
	assert.True(t, strings.HasPrefix(page.CurrentURL(), server.URL))

	form, matched, err := selector.First(ctx, selector.Forms.With(selector.AnyEmailForm), page.Find)
	require.NoError(t, err)
	assert.Equal(t, `form[action*="subscribe"]`, matched.CSS)

	input, _, err := selector.First(ctx, selector.EmailInputs, form.Find)
	require.NoError(t, err)
	require.NoError(t, input.Fill(ctx, "reader@example.com"))

	submit, _, err := selector.First(ctx, selector.SubmitButtons.With(selector.AnyButton), form.Find)
	require.NoError(t, err)

	observed, err := page.SubmitAndWait(ctx, submit, func(url string, status int) bool {
		return strings.Contains(url, "subscribe")
	}, 5*time.Second)
	require.NoError(t, err)
	assert.True(t, observed)

	require.Eventually(t, func() bool {
		text, err := page.GetPageText(ctx)
		return err == nil && strings.Contains(text, "Thank you")
	}, 5*time.Second, 100*time.Millisecond)
}

func TestBrowserAdapter_FindMissing(t *testing.T) {
	server := newSignupServer(t)
	ctx := context.Background()

	page, err := NewLauncher(DefaultConfig(), logger.NewNop()).Launch(ctx)
	require.NoError(t, err)
	defer page.Close()

	require.NoError(t, page.Navigate(ctx, server.URL))

	_, err = page.Find(ctx, selector.CSS("table.pricing"))
	assert.ErrorIs(t, err, entity.ErrElementNotFound)

	el, err := page.Find(ctx, selector.WithText("button", "subscribe"))
	require.NoError(t, err)
	assert.NotNil(t, el)
}

func TestBrowserAdapter_CloseIsIdempotent(t *testing.T) {
	page, err := NewLauncher(DefaultConfig(), logger.NewNop()).Launch(context.Background())
	require.NoError(t, err)

	page.Close()
	assert.NotPanics(t, page.Close)
}
