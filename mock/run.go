package mock

import (
	"context"

	"github.com/scrapedown/scrapedown"
)

var _ scrapedown.RunService = (*RunService)(nil)

// RunService is a mock implementation of scrapedown.RunService.
type RunService struct {
	CreateRunFn      func(ctx context.Context, run *scrapedown.Run, pages []*scrapedown.PageRecord) error
	FindRunByIDFn    func(ctx context.Context, id string) (*scrapedown.Run, error)
	FindRunsFn       func(ctx context.Context, filter scrapedown.RunFilter) ([]*scrapedown.Run, error)
	FindPagesByRunFn func(ctx context.Context, runID string) ([]*scrapedown.PageRecord, error)
	DeleteRunFn      func(ctx context.Context, id string) error
}

func (s *RunService) CreateRun(ctx context.Context, run *scrapedown.Run, pages []*scrapedown.PageRecord) error {
	return s.CreateRunFn(ctx, run, pages)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*scrapedown.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter scrapedown.RunFilter) ([]*scrapedown.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) FindPagesByRun(ctx context.Context, runID string) ([]*scrapedown.PageRecord, error) {
	return s.FindPagesByRunFn(ctx, runID)
}

func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	return s.DeleteRunFn(ctx, id)
}
