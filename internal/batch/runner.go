package batch

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Handler does the actual work of a job, recording per-record outcomes on
// the result. A returned error means a job-level failure; per-record
// failures go through Result.RecordError and are not errors here.
type Handler func(ctx context.Context, res *Result) error

// Registry binds each job kind to its handler.
type Registry map[JobKind]Handler

// Runner executes jobs: it wraps handlers in a Result, converts job-level
// failures and panics into a Failed status, and appends every finished run
// to history.
type Runner struct {
	registry Registry
	history  History
	logger   *zap.Logger
}

// NewRunner creates a Runner. A nil logger defaults to a no-op logger.
func NewRunner(registry Registry, history History, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{registry: registry, history: history, logger: logger}
}

// Run executes the handler registered for the kind. The returned error
// covers only infrastructure problems (unknown kind, history write); the
// run's own outcome, including Failed, lives in the Result.
func (r *Runner) Run(ctx context.Context, kind JobKind) (*Result, error) {
	handler, ok := r.registry[kind]
	if !ok {
		return nil, fmt.Errorf("no handler registered for job %q", kind.Name())
	}
	return r.run(ctx, kind, handler)
}

func (r *Runner) run(ctx context.Context, kind JobKind, handler Handler) (*Result, error) {
	res := NewResult(kind.Name())
	r.logger.Info("job started", zap.String("job", res.JobName), zap.String("job_id", res.JobID))

	r.invoke(ctx, handler, res)

	r.logger.Info("job finished",
		zap.String("job", res.JobName),
		zap.String("job_id", res.JobID),
		zap.String("status", string(res.Status)),
		zap.Int("processed", res.RecordsProcessed),
		zap.Int("failed", res.RecordsFailed),
		zap.Duration("took", res.Duration()),
	)

	if err := r.history.Append(res); err != nil {
		return res, fmt.Errorf("appending job history: %w", err)
	}
	return res, nil
}

// invoke runs the handler with a panic barrier so an uncaught panic
// becomes a Failed result instead of tearing down the cycle.
func (r *Runner) invoke(ctx context.Context, handler Handler, res *Result) {
	defer func() {
		if p := recover(); p != nil {
			res.Fail(fmt.Errorf("panic: %v", p))
			r.logger.Error("job panicked", zap.String("job", res.JobName), zap.Any("panic", p))
		}
	}()

	if err := handler(ctx, res); err != nil {
		res.Fail(err)
		return
	}
	res.Finish()
}
