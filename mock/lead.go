package mock

import (
	"context"

	"github.com/scrapedown/scrapedown"
)

var _ scrapedown.LeadSearcher = (*LeadSearcher)(nil)

// LeadSearcher is a mock implementation of scrapedown.LeadSearcher.
type LeadSearcher struct {
	SearchFn func(ctx context.Context, query, location string, limit int) ([]scrapedown.BusinessRecord, error)
}

func (s *LeadSearcher) Search(ctx context.Context, query, location string, limit int) ([]scrapedown.BusinessRecord, error) {
	return s.SearchFn(ctx, query, location, limit)
}

var _ scrapedown.Enricher = (*Enricher)(nil)

// Enricher is a mock implementation of scrapedown.Enricher.
type Enricher struct {
	EnrichFn func(ctx context.Context, rec scrapedown.BusinessRecord) (*scrapedown.EnrichedLead, error)
}

func (e *Enricher) Enrich(ctx context.Context, rec scrapedown.BusinessRecord) (*scrapedown.EnrichedLead, error) {
	return e.EnrichFn(ctx, rec)
}
