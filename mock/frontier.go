package mock

import "github.com/scrapedown/scrapedown"

var _ scrapedown.Frontier = (*Frontier)(nil)

// Frontier is a mock implementation of scrapedown.Frontier.
type Frontier struct {
	EnqueueFn    func(entry scrapedown.FrontierEntry) bool
	NextFn       func() (scrapedown.FrontierEntry, bool)
	ObserveFn    func(fromURL string, links []string, depth int) int
	SeenFn       func(url string) bool
	DispatchedFn func() int
	LenFn        func() int
}

func (f *Frontier) Enqueue(entry scrapedown.FrontierEntry) bool {
	return f.EnqueueFn(entry)
}

func (f *Frontier) Next() (scrapedown.FrontierEntry, bool) {
	return f.NextFn()
}

func (f *Frontier) Observe(fromURL string, links []string, depth int) int {
	return f.ObserveFn(fromURL, links, depth)
}

func (f *Frontier) Seen(url string) bool {
	return f.SeenFn(url)
}

func (f *Frontier) Dispatched() int {
	return f.DispatchedFn()
}

func (f *Frontier) Len() int {
	return f.LenFn()
}
