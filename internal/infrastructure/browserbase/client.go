package browserbase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"newsletter-agent/internal/application/port/output"
	"newsletter-agent/internal/infrastructure/httpapi"
)

// Client wraps the remote-session endpoints. Every call is a single request;
// retries and selector fallbacks live in Automation.
type Client struct {
	api *httpapi.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration, logger output.LoggerPort) *Client {
	return &Client{api: httpapi.New(baseURL, apiKey, timeout, logger)}
}

type createSessionRequest struct {
	ProjectID string `json:"projectId,omitempty"`
}

type session struct {
	ID string `json:"id"`
}

type navigateRequest struct {
	URL string `json:"url"`
}

type fillRequest struct {
	Selector string `json:"selector"`
	Value    string `json:"value"`
}

type clickRequest struct {
	Selector string `json:"selector"`
}

type evaluateRequest struct {
	Expression string `json:"expression"`
}

type evaluateResponse struct {
	Result json.RawMessage `json:"result"`
}

func (c *Client) CreateSession(ctx context.Context, projectID string) (string, error) {
	var s session
	if err := c.api.Do(ctx, http.MethodPost, "/v1/sessions", createSessionRequest{ProjectID: projectID}, &s); err != nil {
		return "", err
	}
	return s.ID, nil
}

func (c *Client) Navigate(ctx context.Context, sessionID, target string) error {
	return c.api.Do(ctx, http.MethodPost, sessionPath(sessionID, "navigate"), navigateRequest{URL: target}, nil)
}

func (c *Client) Fill(ctx context.Context, sessionID, selector, value string) error {
	return c.api.Do(ctx, http.MethodPost, sessionPath(sessionID, "fill"), fillRequest{Selector: selector, Value: value}, nil)
}

func (c *Client) Click(ctx context.Context, sessionID, selector string) error {
	return c.api.Do(ctx, http.MethodPost, sessionPath(sessionID, "click"), clickRequest{Selector: selector}, nil)
}

// Evaluate runs expression in the session page and reports whether it
// evaluated to JSON true.
func (c *Client) Evaluate(ctx context.Context, sessionID, expression string) (bool, error) {
	var out evaluateResponse
	if err := c.api.Do(ctx, http.MethodPost, sessionPath(sessionID, "evaluate"), evaluateRequest{Expression: expression}, &out); err != nil {
		return false, err
	}
	var truthy bool
	if err := json.Unmarshal(out.Result, &truthy); err != nil {
		return false, nil
	}
	return truthy, nil
}

func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	return c.api.Do(ctx, http.MethodDelete, sessionPath(sessionID, ""), nil, nil)
}

func sessionPath(sessionID, action string) string {
	p := "/v1/sessions/" + url.PathEscape(sessionID)
	if action != "" {
		p += "/" + action
	}
	return p
}
