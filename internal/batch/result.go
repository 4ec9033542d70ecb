package batch

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a job run.
type Status string

const (
	StatusStarted             Status = "started"
	StatusCompleted           Status = "completed"
	StatusCompletedWithErrors Status = "completed-with-errors"
	StatusFailed              Status = "failed"
)

// Result records one job run. Created at job start, mutated only by that
// run, immutable once returned.
type Result struct {
	JobID            string
	JobName          string
	Status           Status
	StartTime        time.Time
	EndTime          time.Time
	RecordsProcessed int
	RecordsSucceeded int
	RecordsFailed    int
	Errors           []string
	OutputFilePath   string
	ErrorMessage     string
}

// NewResult creates a Started result with a fresh job ID.
func NewResult(jobName string) *Result {
	return &Result{
		JobID:     uuid.NewString(),
		JobName:   jobName,
		Status:    StatusStarted,
		StartTime: time.Now().UTC(),
	}
}

// RecordSuccess counts one record that passed.
func (r *Result) RecordSuccess() {
	r.RecordsProcessed++
	r.RecordsSucceeded++
}

// RecordError counts one record that failed and appends its error.
func (r *Result) RecordError(format string, args ...any) {
	r.RecordsProcessed++
	r.RecordsFailed++
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Finish stamps the end time and settles the status from the failure count.
func (r *Result) Finish() {
	r.EndTime = time.Now().UTC()
	if r.RecordsFailed > 0 {
		r.Status = StatusCompletedWithErrors
	} else {
		r.Status = StatusCompleted
	}
}

// Fail stamps the end time and marks the run Failed with the given cause.
func (r *Result) Fail(err error) {
	r.EndTime = time.Now().UTC()
	r.Status = StatusFailed
	r.ErrorMessage = err.Error()
}

// Duration returns the run's wall time.
func (r *Result) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}
