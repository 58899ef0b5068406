package crawl

import (
	"context"

	"github.com/scrapedown/scrapedown"
)

// RunListing executes the pipeline for a query seed: the searcher resolves
// the (query, location) pair into business records, each record's website
// becomes a depth-0 frontier entry, and Stage 2 fetches and extracts them
// like any other discovered page. There is no link expansion; the listing
// itself closes the frontier.
//
// Records without a website are skipped silently. MaxPages and URL dedup
// still apply through the frontier.
func (c *Crawler) RunListing(ctx context.Context, seed scrapedown.SeedSpec, searcher scrapedown.LeadSearcher, limit int, progress ProgressFunc) (*scrapedown.RunResult, error) {
	if err := seed.Validate(); err != nil {
		return nil, err
	}
	if seed.Kind != scrapedown.SeedQuery {
		return nil, scrapedown.Errorf(scrapedown.EINVALID, "listing runs require a query seed")
	}
	if err := c.Config.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = c.Config.MaxPages
	}

	records, err := searcher.Search(ctx, seed.Value, seed.Location, limit)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, scrapedown.Errorf(scrapedown.ENOTFOUND, "no listings found for %q in %q", seed.Value, seed.Location)
	}

	// Websites from a listing are unrelated domains; scoping is meaningless
	// here.
	frontier, err := NewFrontier(c.Config, scrapedown.ScopeAll)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.Website == "" {
			continue
		}
		frontier.Enqueue(scrapedown.FrontierEntry{URL: EnsureScheme(rec.Website)})
	}

	var tasks []pageTask
	for {
		entry, ok := frontier.Next()
		if !ok {
			break
		}
		tasks = append(tasks, pageTask{position: len(tasks), entry: entry})
		if progress != nil {
			progress(ProgressEvent{Type: ProgressDiscovered, URL: entry.URL, Completed: len(tasks)})
		}
	}
	if len(tasks) == 0 {
		return nil, scrapedown.Errorf(scrapedown.EEMPTY, "no listed business has a website to fetch")
	}

	recordsByPos := c.extract(ctx, tasks, progress)

	result := &scrapedown.RunResult{Attempted: len(tasks)}
	ordered := make([]*scrapedown.PageRecord, 0, len(tasks))
	for i := range tasks {
		if recordsByPos[i] != nil {
			result.Succeeded++
			ordered = append(ordered, recordsByPos[i])
			continue
		}
		result.Failed = append(result.Failed, scrapedown.PageFailure{
			URL:    tasks[i].entry.URL,
			Reason: failureReason(tasks[i].err),
		})
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: len(tasks), Total: len(tasks)})
	}

	if len(ordered) == 0 {
		return result, scrapedown.Errorf(scrapedown.EEMPTY, "no pages survived extraction")
	}

	artifact, err := scrapedown.Assemble(seed.Value+" in "+seed.Location, ordered, c.order())
	if err != nil {
		return result, err
	}
	result.Artifact = artifact

	return result, nil
}
