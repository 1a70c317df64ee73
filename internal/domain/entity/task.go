package entity

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "PENDING"
	TaskStatusRunning   TaskStatus = "RUNNING"
	TaskStatusCompleted TaskStatus = "COMPLETED"
	TaskStatusFailed    TaskStatus = "FAILED"
)

// RemoteTask is the status document of an AI task, as polled.
type RemoteTask struct {
	TaskID               string         `json:"task_id"`
	Status               TaskStatus     `json:"status"`
	ExtractedInformation map[string]any `json:"extracted_information,omitempty"`
	FailureReason        string         `json:"failure_reason,omitempty"`
}
