package async

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/blueparser/constants"
	"github.com/joseph-ayodele/blueparser/internal/entity"
)

// ErrQueueClosed is returned by Enqueue after Shutdown.
var ErrQueueClosed = errors.New("queue is shutting down")

// Job is one OCR document waiting to be parsed.
type Job struct {
	ID          uuid.UUID
	Path        string
	SubmittedAt time.Time
}

// NewJob stamps a fresh job for path.
func NewJob(path string) Job {
	return Job{ID: uuid.New(), Path: path, SubmittedAt: time.Now().UTC()}
}

// Outcome is what a worker hands to the Sink after processing a job.
type Outcome struct {
	Job     Job
	Status  constants.JobStatus
	Result  *entity.ParseResult
	Err     error
	Elapsed time.Duration
}

// FileProcessor parses one document by path.
type FileProcessor interface {
	ProcessFile(ctx context.Context, path string) (*entity.ParseResult, error)
}

// Sink consumes outcomes; it is called concurrently from every worker.
type Sink interface {
	Handle(ctx context.Context, o Outcome) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, o Outcome) error

func (f SinkFunc) Handle(ctx context.Context, o Outcome) error { return f(ctx, o) }

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}
