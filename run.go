package scrapedown

import (
	"context"
	"time"
)

// Run is a persisted record of one pipeline invocation. Keeping runs and
// their page records around means artifacts stay inspectable and
// re-exportable after the process exits.
type Run struct {
	ID        string    `json:"id"`
	Kind      SeedKind  `json:"kind"`
	Seed      string    `json:"seed"`
	Location  string    `json:"location,omitempty"`
	Attempted int       `json:"attempted"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.Seed == "" {
		return Errorf(EINVALID, "run seed required")
	}
	if r.Kind != SeedURL && r.Kind != SeedQuery {
		return Errorf(EINVALID, "unknown seed kind %q", r.Kind)
	}
	return nil
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID   *string `json:"id"`
	Kind *string `json:"kind"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RunService persists run history.
type RunService interface {
	// CreateRun stores a run and its page records.
	CreateRun(ctx context.Context, run *Run, pages []*PageRecord) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// FindPagesByRun retrieves a run's page records in stored order.
	FindPagesByRun(ctx context.Context, runID string) ([]*PageRecord, error)

	// DeleteRun permanently removes a run and its page records.
	// Returns ENOTFOUND if the run does not exist.
	DeleteRun(ctx context.Context, id string) error
}
