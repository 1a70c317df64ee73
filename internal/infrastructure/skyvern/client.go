package skyvern

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"newsletter-agent/internal/application/port/output"
	"newsletter-agent/internal/domain/entity"
	"newsletter-agent/internal/infrastructure/httpapi"
)

type Action struct {
	ActionType          string   `json:"action_type"`
	Input               string   `json:"input,omitempty"`
	AssociatedSelectors []string `json:"associated_selectors"`
}

type NavigationPayload struct {
	Actions []Action `json:"actions"`
}

type SchemaProperty struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

type Schema struct {
	Type       string                    `json:"type"`
	Properties map[string]SchemaProperty `json:"properties"`
}

type TaskRequest struct {
	URL                        string            `json:"url"`
	NavigationPayload          NavigationPayload `json:"navigation_payload"`
	ExtractedInformationSchema Schema            `json:"extracted_information_schema"`
}

type createTaskResponse struct {
	TaskID string `json:"task_id"`
}

// Client wraps the AI-task endpoints.
type Client struct {
	api *httpapi.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration, logger output.LoggerPort) *Client {
	return &Client{api: httpapi.New(baseURL, apiKey, timeout, logger)}
}

func (c *Client) CreateTask(ctx context.Context, req TaskRequest) (string, error) {
	var out createTaskResponse
	if err := c.api.Do(ctx, http.MethodPost, "/v1/tasks", req, &out); err != nil {
		return "", err
	}
	return out.TaskID, nil
}

// GetTask fetches the task document. Status is upper-cased so that both the
// documented and the lower-case spelling of the service compare equal.
func (c *Client) GetTask(ctx context.Context, taskID string) (*entity.RemoteTask, error) {
	var task entity.RemoteTask
	if err := c.api.Do(ctx, http.MethodGet, "/v1/tasks/"+url.PathEscape(taskID), nil, &task); err != nil {
		return nil, err
	}
	task.Status = entity.TaskStatus(strings.ToUpper(string(task.Status)))
	return &task, nil
}
