// Package crawl provides the two-stage crawl pipeline orchestration.
// Stage 1 expands the frontier breadth-first from a seed; Stage 2 extracts
// structured content from each discovered page and hands the survivors, in
// discovery order, to the assembler.
package crawl

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/scrapedown/scrapedown"
	"golang.org/x/sync/errgroup"
)

// Crawler orchestrates a single run of the pipeline. All collaborators are
// injected; the crawler owns no global state, so concurrent runs with
// separate crawlers are fully isolated.
type Crawler struct {
	Fetcher   scrapedown.Fetcher
	Links     scrapedown.LinkExtractor
	Extractor scrapedown.Extractor
	Gate      scrapedown.HostGate

	// Sitemaps, when set, seeds the frontier from the site's sitemap
	// before falling back to recursive link expansion.
	Sitemaps scrapedown.SitemapService

	Config scrapedown.CrawlConfig

	// Order selects the artifact ordering; empty means discovery order.
	Order scrapedown.Order

	// RetryDelays overrides the fetch retry backoff. Nil means defaults.
	RetryDelays []time.Duration
}

// ProgressType indicates the type of progress event.
type ProgressType int

// Progress event types emitted during a run.
const (
	ProgressStarted ProgressType = iota
	ProgressDiscovered
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Err       error
}

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// pageTask tracks one dispatched frontier entry through both stages.
type pageTask struct {
	position int
	entry    scrapedown.FrontierEntry
	html     string
	fetched  bool
	err      error
}

// Run executes the pipeline for one seed and returns the run summary.
//
// A seed that cannot be fetched aborts the run with an EUNAVAILABLE error
// before any Stage 2 work. Per-page failures are isolated: the page is
// skipped, recorded in RunResult.Failed, and the run continues. When zero
// pages survive extraction the summary is still returned, together with an
// EEMPTY error, so callers can always report counts.
func (c *Crawler) Run(ctx context.Context, seed scrapedown.SeedSpec, progress ProgressFunc) (*scrapedown.RunResult, error) {
	if err := seed.Validate(); err != nil {
		return nil, err
	}
	if err := c.Config.Validate(); err != nil {
		return nil, err
	}

	seedURL := EnsureScheme(seed.Value)

	frontier, err := NewFrontier(c.Config, seed.ScopeDomain)
	if err != nil {
		return nil, err
	}

	tasks, err := c.discover(ctx, frontier, seedURL, progress)
	if err != nil {
		return nil, err
	}

	records := c.extract(ctx, tasks, progress)

	result := &scrapedown.RunResult{Attempted: len(tasks)}
	ordered := make([]*scrapedown.PageRecord, 0, len(tasks))
	for i := range tasks {
		if records[i] != nil {
			result.Succeeded++
			ordered = append(ordered, records[i])
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

	artifact, err := scrapedown.Assemble(c.artifactTitle(seed, seedURL), ordered, c.order())
	if err != nil {
		return result, err
	}
	result.Artifact = artifact

	return result, nil
}

// discover runs Stage 1: sequential breadth-first frontier expansion. Each
// expansion step needs the previous page's extracted links, so this stage
// cannot be parallelized without changing discovery semantics. Pages
// fetched here keep their markup cached so Stage 2 does not refetch them.
func (c *Crawler) discover(ctx context.Context, frontier *Frontier, seedURL string, progress ProgressFunc) ([]pageTask, error) {
	sitemapSeeded := c.seedFromSitemap(ctx, frontier, seedURL)
	if !sitemapSeeded {
		frontier.Enqueue(scrapedown.FrontierEntry{URL: seedURL})
	}

	var tasks []pageTask
	for {
		if ctx.Err() != nil {
			break
		}

		entry, ok := frontier.Next()
		if !ok {
			break
		}

		task := pageTask{position: len(tasks), entry: entry}

		// Only pages whose links feed further expansion are fetched
		// here. The seed is always fetched so an unreachable seed fails
		// fast. Sitemap-seeded frontiers are already closed.
		expand := !sitemapSeeded && (entry.Depth < c.Config.MaxDepth || task.position == 0)
		if expand {
			html, err := c.fetch(ctx, entry.URL)
			if err != nil {
				if task.position == 0 {
					return nil, scrapedown.Errorf(scrapedown.EUNAVAILABLE, "seed unreachable: %s", failureReason(err))
				}
				task.err = err
			} else {
				task.html = html
				task.fetched = true
				if links, lerr := c.Links.ExtractLinks(html, entry.URL); lerr == nil {
					frontier.Observe(entry.URL, links, entry.Depth)
				}
			}
		}

		tasks = append(tasks, task)
		if progress != nil {
			progress(ProgressEvent{Type: ProgressDiscovered, URL: entry.URL, Completed: len(tasks)})
		}
	}

	return tasks, nil
}

// extract runs Stage 2: per-page fetch (when not cached from Stage 1) and
// content extraction, with bounded concurrency. Results are indexed by
// frontier position so assembly consumes discovery order, not completion
// order. After cancellation no new work is dispatched; in-flight pages are
// allowed to finish.
func (c *Crawler) extract(ctx context.Context, tasks []pageTask, progress ProgressFunc) []*scrapedown.PageRecord {
	records := make([]*scrapedown.PageRecord, len(tasks))

	concurrency := c.Config.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: len(tasks)})
	}

	g := &errgroup.Group{}
	g.SetLimit(concurrency)

	for i := range tasks {
		task := &tasks[i]
		if task.err != nil {
			continue
		}
		if ctx.Err() != nil {
			task.err = scrapedown.Errorf(scrapedown.EUNAVAILABLE, "run canceled before fetch")
			continue
		}

		g.Go(func() error {
			c.processTask(ctx, task, records)
			return nil
		})
	}
	_ = g.Wait()

	if progress != nil {
		for i := range tasks {
			c.report(progress, &tasks[i], records[i], i+1, len(tasks))
		}
	}

	return records
}

// processTask fetches (unless Stage 1 already did) and extracts one page.
// Each worker touches only its own task and record slot; the host gate is
// the only shared state.
func (c *Crawler) processTask(ctx context.Context, task *pageTask, records []*scrapedown.PageRecord) {
	html := task.html
	if !task.fetched {
		fetched, err := c.fetch(ctx, task.entry.URL)
		if err != nil {
			task.err = err
			return
		}
		html = fetched
	}

	rec, err := c.Extractor.Extract(html, task.entry.URL)
	if err != nil {
		task.err = err
		return
	}
	rec.FetchedAt = time.Now().UTC()
	if rec.ContentHash == "" {
		rec.ContentHash = scrapedown.HashContent(rec.ContentHTML)
	}
	records[task.position] = rec
}

// fetch applies the per-host politeness gate and retry policy around one
// fetch.
func (c *Crawler) fetch(ctx context.Context, rawURL string) (string, error) {
	if c.Gate != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			return "", scrapedown.Errorf(scrapedown.EINVALID, "invalid URL %q: %v", rawURL, err)
		}
		if err := c.Gate.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetryDelays(ctx, c.Fetcher, rawURL, delays)
}

// seedFromSitemap tries to close the frontier from a sitemap. Returns true
// when at least one sitemap URL was admitted.
func (c *Crawler) seedFromSitemap(ctx context.Context, frontier *Frontier, seedURL string) bool {
	if c.Sitemaps == nil {
		return false
	}

	filter, err := c.Config.Filter()
	if err != nil {
		return false
	}
	urls, err := c.Sitemaps.DiscoverURLs(ctx, seedURL, filter)
	if err != nil || len(urls) == 0 {
		return false
	}

	frontier.Enqueue(scrapedown.FrontierEntry{URL: seedURL})
	for _, u := range urls {
		frontier.Enqueue(scrapedown.FrontierEntry{URL: u, DiscoveredFrom: seedURL})
	}
	return frontier.Len() > 0
}

func (c *Crawler) report(progress ProgressFunc, task *pageTask, rec *scrapedown.PageRecord, completed, total int) {
	if progress == nil {
		return
	}
	event := ProgressEvent{Completed: completed, Total: total, URL: task.entry.URL}
	if rec != nil {
		event.Type = ProgressCompleted
	} else {
		event.Type = ProgressFailed
		event.Err = task.err
	}
	progress(event)
}

func (c *Crawler) order() scrapedown.Order {
	if c.Order == "" {
		return scrapedown.OrderDiscovery
	}
	return c.Order
}

func (c *Crawler) artifactTitle(seed scrapedown.SeedSpec, seedURL string) string {
	if seed.Kind == scrapedown.SeedQuery {
		return seed.Value + " in " + seed.Location
	}
	if u, err := url.Parse(seedURL); err == nil && u.Host != "" {
		return u.Host
	}
	return seed.Value
}

// failureReason prefers the application error message over the raw error
// string.
func failureReason(err error) string {
	if err == nil {
		return ""
	}
	var appErr *scrapedown.Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// EnsureScheme prefixes bare hostnames with https so seeds can be typed
// without a scheme.
func EnsureScheme(rawURL string) string {
	if strings.Contains(rawURL, "://") {
		return rawURL
	}
	return "https://" + rawURL
}
