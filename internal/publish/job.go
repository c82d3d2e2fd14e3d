package publish

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Job is one publish request and what became of it.
type Job struct {
	ID         uuid.UUID  `json:"id"`
	Message    string     `json:"message"`
	Status     Status     `json:"status"`
	Output     []string   `json:"output"`
	Error      string     `json:"error,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	StartedAt  *time.Time `json:"startedAt,omitempty"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}

func (j *Job) Done() bool {
	return j.Status == StatusSucceeded || j.Status == StatusFailed
}
