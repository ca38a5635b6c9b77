package app

import (
	"time"

	"peek-go/internal/peek"
)

// Operation tracks one CLI command run. Its RunID tags every log line the
// run produces so interleaved runs can be told apart in peek.log.
type Operation struct {
	RunID     string
	Operation string
	StartedAt time.Time
	Status    string // "running", "success" or "error"
}

// NewOperation starts tracking a run of the named command.
func NewOperation(operation string, ids peek.IDGenerator, clock peek.Clock) *Operation {
	return &Operation{
		RunID:     ids.New(),
		Operation: operation,
		StartedAt: clock.Now(),
		Status:    "running",
	}
}

// Finish records the outcome of the run.
func (op *Operation) Finish(err error) {
	if err != nil {
		op.Status = "error"
		return
	}
	op.Status = "success"
}

// Finished returns true once Finish has been called.
func (op *Operation) Finished() bool {
	return op.Status != "running"
}
