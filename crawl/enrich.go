package crawl

import (
	"context"

	"github.com/scrapedown/scrapedown"
)

// LeadResult is the run summary for a lead enrichment pipeline. Leads are
// ordered by score, highest first.
type LeadResult struct {
	Leads     []*scrapedown.EnrichedLead
	Attempted int
	Succeeded int
	Failed    []scrapedown.PageFailure
}

// LeadPipeline resolves a listing query into business records and enriches
// each through the shared fetch path.
type LeadPipeline struct {
	Searcher scrapedown.LeadSearcher
	Enricher scrapedown.Enricher

	// Limit bounds the number of seed records enriched.
	Limit int
}

// Run enriches up to Limit businesses matching the query. Per-business
// website failures are isolated: the lead keeps its listing fields, the
// failure is recorded, and the run continues. An empty search result is an
// ENOTFOUND run failure.
func (p *LeadPipeline) Run(ctx context.Context, query, location string) (*LeadResult, error) {
	seed := scrapedown.SeedSpec{Kind: scrapedown.SeedQuery, Value: query, Location: location}
	if err := seed.Validate(); err != nil {
		return nil, err
	}

	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	records, err := p.Searcher.Search(ctx, query, location, limit)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, scrapedown.Errorf(scrapedown.ENOTFOUND, "no listings found for %q in %q", query, location)
	}

	result := &LeadResult{Attempted: len(records)}
	for _, rec := range records {
		if ctx.Err() != nil {
			break
		}

		lead, err := p.Enricher.Enrich(ctx, rec)
		if err != nil {
			result.Failed = append(result.Failed, scrapedown.PageFailure{
				URL:    rec.Website,
				Reason: failureReason(err),
			})
			continue
		}
		result.Succeeded++
		result.Leads = append(result.Leads, lead)
	}

	scrapedown.SortLeadsByScore(result.Leads)
	return result, nil
}
