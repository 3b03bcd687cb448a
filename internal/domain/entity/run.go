package entity

import (
	"time"

	"github.com/google/uuid"
)

type RunStatus string

const (
	RunStatusPending   RunStatus = "PENDING"
	RunStatusRunning   RunStatus = "RUNNING"
	RunStatusCompleted RunStatus = "COMPLETED"
	RunStatusFailed    RunStatus = "FAILED"
)

// PipelineRun tracks one extract-then-combine invocation. Its ID also names
// the staging directory under the temp root.
type PipelineRun struct {
	ID              uuid.UUID
	Inputs          []string
	OutputPath      string
	Status          RunStatus
	PadWidth        int
	TotalFrames     int
	FramesExtracted int
	FramesEncoded   int
	ArchiveKey      string
	ErrorMessage    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	CompletedAt     *time.Time
}

func NewPipelineRun(inputs []string, outputPath string) *PipelineRun {
	now := time.Now().UTC()
	return &PipelineRun{
		ID:         uuid.New(),
		Inputs:     inputs,
		OutputPath: outputPath,
		Status:     RunStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (r *PipelineRun) MarkRunning() {
	r.Status = RunStatusRunning
	r.UpdatedAt = time.Now().UTC()
}

func (r *PipelineRun) MarkCompleted() {
	now := time.Now().UTC()
	r.Status = RunStatusCompleted
	r.UpdatedAt = now
	r.CompletedAt = &now
}

func (r *PipelineRun) MarkFailed(errMsg string) {
	r.Status = RunStatusFailed
	r.ErrorMessage = errMsg
	r.UpdatedAt = time.Now().UTC()
}
