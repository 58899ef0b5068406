package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/scrapedown/scrapedown"
)

// Ensure LoggingEnricher implements scrapedown.Enricher.
var _ scrapedown.Enricher = (*LoggingEnricher)(nil)

// LoggingEnricher wraps an Enricher with debug logging.
type LoggingEnricher struct {
	next   scrapedown.Enricher
	logger *slog.Logger
}

// NewLoggingEnricher creates a new LoggingEnricher.
func NewLoggingEnricher(next scrapedown.Enricher, logger *slog.Logger) *LoggingEnricher {
	return &LoggingEnricher{next: next, logger: logger}
}

// Enrich delegates to the wrapped enricher and logs the outcome.
func (e *LoggingEnricher) Enrich(ctx context.Context, rec scrapedown.BusinessRecord) (lead *scrapedown.EnrichedLead, err error) {
	defer func(begin time.Time) {
		score := -1
		if lead != nil {
			score = lead.Score
		}
		e.logger.Info("enrich",
			"business", rec.Name,
			"website", rec.Website,
			"score", score,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Enrich(ctx, rec)
}
