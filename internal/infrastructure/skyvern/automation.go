package skyvern

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"newsletter-agent/internal/application/port/input"
	"newsletter-agent/internal/application/port/output"
	"newsletter-agent/internal/domain/entity"
	"newsletter-agent/internal/domain/selector"
	"newsletter-agent/internal/infrastructure/httpapi"
)

const (
	pollInterval = 10 * time.Second
	maxPolls     = 30
)

const (
	msgNoAPIKey      = "Skyvern API key not configured"
	msgStatusFailed  = "Failed to check task status"
	msgTaskTimedOut  = "Task timed out"
	msgUnknownReason = "Unknown error"
)

var _ input.Automation = (*Automation)(nil)

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Automation hands the whole signup to a remote AI agent and polls the task
// until it settles.
type Automation struct {
	cfg    Config
	client *Client
	logger output.LoggerPort

	sleep        func(time.Duration)
	pollInterval time.Duration
	maxPolls     int
}

func New(cfg Config, logger output.LoggerPort) *Automation {
	logger = logger.Named("skyvern")
	return &Automation{
		cfg:          cfg,
		client:       NewClient(cfg.BaseURL, cfg.APIKey, cfg.Timeout, logger),
		logger:       logger,
		sleep:        time.Sleep,
		pollInterval: pollInterval,
		maxPolls:     maxPolls,
	}
}

func (a *Automation) Name() string {
	return string(entity.FrameworkSkyvern)
}

func (a *Automation) SignUp(ctx context.Context, url, email string) (res entity.AutomationResult) {
	details := map[string]any{
		"url":       url,
		"email":     email,
		"framework": entity.FrameworkSkyvern,
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

	taskID, err := a.client.CreateTask(ctx, signupTask(url, email))
	if err != nil {
		if apiErr, ok := httpapi.AsAPIError(err); ok {
			err = entity.NewError(entity.KindRemoteAPI, "Skyvern API error: "+apiErr.Reason(), nil)
		}
		return entity.Failure(err, details)
	}
	details["taskId"] = taskID

	log := a.logger.WithFields(map[string]any{"taskId": taskID, "url": url})
	log.Info("Task submitted")

	return a.await(ctx, taskID, details, log)
}

// await polls until the task completes, fails or the attempt budget runs out.
// The pause before each poll deliberately ignores ctx; only a terminal
// remote status ends the loop early.
func (a *Automation) await(ctx context.Context, taskID string, details map[string]any, log output.LoggerPort) entity.AutomationResult {
	m := newTaskMachine()

	for attempt := 1; attempt <= a.maxPolls; attempt++ {
		if err := m.to(statePolling); err != nil {
			return transitionFailure(err, details)
		}
		a.sleep(a.pollInterval)

		task, err := a.client.GetTask(ctx, taskID)
		if err != nil {
			log.Warn("Status check failed", "attempt", attempt, "error", err)
			if _, ok := httpapi.AsAPIError(err); ok {
				err = entity.NewError(entity.KindRemoteAPI, msgStatusFailed, nil)
			}
			return entity.Failure(err, details)
		}
		details["attempts"] = attempt

		switch task.Status {
		case entity.TaskStatusCompleted:
			if err := m.to(stateCompleted); err != nil {
				return transitionFailure(err, details)
			}
			details["state"] = string(m.state)
			details["extractedInfo"] = task.ExtractedInformation
			success := truthy(task.ExtractedInformation["success"])
			log.Info("Task completed", "success", success, "attempts", attempt)
			if !success {
				return entity.AutomationResult{Success: false, Details: details}
			}
			return entity.Succeeded(details)

		case entity.TaskStatusFailed:
			if err := m.to(stateFailed); err != nil {
				return transitionFailure(err, details)
			}
			details["state"] = string(m.state)
			reason := task.FailureReason
			if reason == "" {
				reason = msgUnknownReason
			}
			log.Warn("Task failed", "reason", reason)
			return entity.Failure(entity.NewError(entity.KindRemoteAPI, "Task failed: "+reason, nil), details)

		default:
			log.Debug("Task pending", "status", task.Status, "attempt", attempt)
		}
	}

	if err := m.to(stateTimedOut); err != nil {
		return transitionFailure(err, details)
	}
	details["state"] = string(m.state)
	log.Warn("Task timed out", "attempts", a.maxPolls)
	return entity.Failure(entity.NewError(entity.KindTimeout, msgTaskTimedOut, nil), details)
}

func transitionFailure(err error, details map[string]any) entity.AutomationResult {
	return entity.Failure(entity.NewError(entity.KindInternal, err.Error(), nil), details)
}

// truthy accepts what the task model writes for a yes: a bool, a "true"-like
// string or a non-zero number.
func truthy(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		ok, err := strconv.ParseBool(strings.TrimSpace(x))
		return err == nil && ok
	case float64:
		return x != 0
	default:
		return false
	}
}

func signupTask(url, email string) TaskRequest {
	return TaskRequest{
		URL: url,
		NavigationPayload: NavigationPayload{
			Actions: []Action{
				{
					ActionType:          "fill",
					Input:               email,
					AssociatedSelectors: selector.EmailInputs.Strings(),
				},
				{
					ActionType:          "click",
					AssociatedSelectors: selector.SubmitButtons.Strings(),
				},
			},
		},
		ExtractedInformationSchema: Schema{
			Type: "object",
			Properties: map[string]SchemaProperty{
				"success": {Type: "boolean", Description: "Whether the newsletter signup was successful"},
				"message": {Type: "string", Description: "Success or error message from the signup process"},
			},
		},
	}
}
