// Package bloom provides probabilistic set membership for URL deduplication.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter keyed by normalized URL.
// False positives are possible (a fresh URL may be reported as seen and
// skipped); false negatives are not, so a URL is never yielded twice.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected keys with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add marks a key as seen.
func (f *Filter) Add(key string) {
	f.f.AddString(key)
}

// Contains reports whether the key might have been added.
func (f *Filter) Contains(key string) bool {
	return f.f.TestString(key)
}

// EstimatedCount returns the approximate number of keys in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
