package crawl

import (
	"net"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/scrapedown/scrapedown"
	"github.com/scrapedown/scrapedown/bloom"
	"golang.org/x/net/publicsuffix"
)

// Frontier sizing for Bloom filter deduplication.
const (
	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.01
)

// Query parameters that materially distinguish pages. Everything else
// (tracking params, session tokens) is stripped during normalization.
var distinguishingQueryKeys = map[string]bool{
	"article": true,
	"id":      true,
	"p":       true,
	"page":    true,
}

// Compile-time interface verification.
var _ scrapedown.Frontier = (*Frontier)(nil)

// Frontier is an in-memory breadth-first URL frontier with Bloom filter
// deduplication. Entries are yielded in first-discovered order so a run's
// discovery sequence is reproducible regardless of fetch latency. It is
// safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu         sync.Mutex
	seen       *bloom.Filter
	queue      []scrapedown.FrontierEntry
	dispatched int

	maxDepth int
	maxPages int
	filter   *regexp.Regexp

	// scope is the registrable domain links must belong to. Empty until
	// the seed is enqueued; scopeAll disables the check.
	scope    string
	scopeAll bool
}

// NewFrontier creates a Frontier bounded by the given config. The
// scopeDomain follows scrapedown.SeedSpec semantics: empty derives the
// scope from the seed, scrapedown.ScopeAll disables scoping.
func NewFrontier(cfg scrapedown.CrawlConfig, scopeDomain string) (*Frontier, error) {
	filter, err := cfg.Filter()
	if err != nil {
		return nil, err
	}

	f := &Frontier{
		seen:     bloom.NewFilter(frontierExpectedURLs, frontierFalsePositiveRate),
		maxDepth: cfg.MaxDepth,
		maxPages: cfg.MaxPages,
		filter:   filter,
	}

	switch scopeDomain {
	case "":
	case scrapedown.ScopeAll:
		f.scopeAll = true
	default:
		scope, err := registrableDomain(scopeDomain)
		if err != nil {
			return nil, scrapedown.Errorf(scrapedown.EINVALID, "invalid scope domain %q: %v", scopeDomain, err)
		}
		f.scope = scope
	}

	return f, nil
}

// Enqueue admits the seed entry. The seed also fixes the domain scope when
// none was configured. Returns false for already-seen URLs.
func (f *Frontier) Enqueue(entry scrapedown.FrontierEntry) bool {
	normalized, host, ok := NormalizeURL(entry.URL)
	if !ok {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.scope == "" && !f.scopeAll {
		if scope, err := registrableDomain(host); err == nil {
			f.scope = scope
		}
	}

	return f.push(scrapedown.FrontierEntry{
		URL:            normalized,
		Depth:          entry.Depth,
		DiscoveredFrom: entry.DiscoveredFrom,
	})
}

// Next yields entries in first-discovered-first-served order. It stops
// yielding once maxPages entries have been dispatched, regardless of
// remaining queue contents.
func (f *Frontier) Next() (scrapedown.FrontierEntry, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.dispatched >= f.maxPages || len(f.queue) == 0 {
		return scrapedown.FrontierEntry{}, false
	}

	entry := f.queue[0]
	f.queue = f.queue[1:]
	f.dispatched++
	return entry, true
}

// Observe admits a fetched page's outbound links at depth+1. Each link is
// admitted only if it has not been seen, the new depth is within bounds,
// the filter pattern (if any) matches, and the registrable domain is in
// scope. Returns the number of admitted links.
func (f *Frontier) Observe(fromURL string, links []string, currentDepth int) int {
	if currentDepth+1 > f.maxDepth {
		return 0
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	admitted := 0
	for _, link := range links {
		normalized, host, ok := NormalizeURL(link)
		if !ok {
			continue
		}
		if f.filter != nil && !f.filter.MatchString(normalized) {
			continue
		}
		if !f.scopeAll && f.scope != "" {
			domain, err := registrableDomain(host)
			if err != nil || domain != f.scope {
				continue
			}
		}
		if f.push(scrapedown.FrontierEntry{
			URL:            normalized,
			Depth:          currentDepth + 1,
			DiscoveredFrom: fromURL,
		}) {
			admitted++
		}
	}
	return admitted
}

// Seen reports whether the normalized URL has been queued or yielded.
func (f *Frontier) Seen(rawURL string) bool {
	normalized, _, ok := NormalizeURL(rawURL)
	if !ok {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Contains(normalized)
}

// Dispatched returns the number of entries yielded so far.
func (f *Frontier) Dispatched() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dispatched
}

// Len returns the number of entries waiting in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// push assumes f.mu is held.
func (f *Frontier) push(entry scrapedown.FrontierEntry) bool {
	if f.seen.Contains(entry.URL) {
		return false
	}
	f.seen.Add(entry.URL)
	f.queue = append(f.queue, entry)
	return true
}

// NormalizeURL reduces a URL to its deduplication key: scheme, host, and
// path, with the fragment always stripped and the query stripped unless it
// carries a materially distinguishing key. The second return value is the
// hostname. Returns ok=false for unparseable or non-http(s) URLs.
func NormalizeURL(rawURL string) (normalized, host string, ok bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", "", false
	}
	if u.Host == "" {
		return "", "", false
	}

	u.Fragment = ""
	u.RawQuery = distinguishingQuery(u.Query())
	u.Host = strings.ToLower(u.Host)
	if u.Path == "/" {
		u.Path = ""
	}

	return u.String(), u.Hostname(), true
}

// distinguishingQuery keeps only materially distinguishing parameters, in
// sorted key order so equivalent URLs normalize identically.
func distinguishingQuery(values url.Values) string {
	kept := url.Values{}
	for key, vals := range values {
		if distinguishingQueryKeys[strings.ToLower(key)] {
			kept[key] = vals
		}
	}
	if len(kept) == 0 {
		return ""
	}

	keys := make([]string, 0, len(kept))
	for key := range kept {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		for _, val := range kept[key] {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(key))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(val))
		}
	}
	return b.String()
}

// registrableDomain returns the eTLD+1 for a hostname. IP literals and
// bare hosts without a public suffix (e.g., "localhost") are returned
// unchanged so local testing stays scopeable.
func registrableDomain(host string) (string, error) {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if net.ParseIP(host) != nil {
		return host, nil
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		if !strings.Contains(host, ".") && host != "" {
			return host, nil
		}
		return "", err
	}
	return domain, nil
}
