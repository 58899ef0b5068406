package scrapedown

// FrontierEntry is one URL pending fetch, with its discovery bookkeeping.
type FrontierEntry struct {
	URL string

	// Depth counts link hops from the seed (the seed itself is depth 0).
	Depth int

	// DiscoveredFrom is the URL of the page whose links produced this entry.
	// Empty for the seed.
	DiscoveredFrom string
}

// Frontier manages the crawl queue for one run: deduplication, depth and
// filter admission, and the MaxPages dispatch bound. A Frontier is owned by
// exactly one run and is never shared across runs.
type Frontier interface {
	// Enqueue admits the seed entry.
	// Returns false if the URL has already been seen.
	Enqueue(entry FrontierEntry) bool

	// Next returns the next entry in first-discovered order.
	// Returns false when the queue is empty or the dispatch bound is
	// reached.
	Next() (FrontierEntry, bool)

	// Observe admits a fetched page's outbound links at depth+1 and returns
	// how many were admitted. Already-seen, out-of-scope, filtered, and
	// too-deep links are dropped silently.
	Observe(fromURL string, links []string, depth int) int

	// Seen reports whether the normalized URL has been queued or yielded.
	Seen(url string) bool

	// Dispatched returns the number of entries yielded by Next so far.
	Dispatched() int

	// Len returns the number of entries waiting in the queue.
	Len() int
}
