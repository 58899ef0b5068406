package scrapedown

import "context"

// SeedKind identifies how a run is seeded.
type SeedKind string

// Supported seed kinds.
const (
	// SeedURL starts the crawl from a single page whose outbound links are
	// expanded breadth-first.
	SeedURL SeedKind = "url"

	// SeedQuery resolves a (query, location) pair into business records via
	// a LeadSearcher; each record's website becomes a crawl target.
	SeedQuery SeedKind = "query"
)

// ScopeAll disables registrable-domain scoping when set as
// SeedSpec.ScopeDomain. Every http(s) link is then in scope.
const ScopeAll = "*"

// SeedSpec is the immutable input that starts a run.
type SeedSpec struct {
	Kind  SeedKind `json:"kind"`
	Value string   `json:"value"`

	// ScopeDomain overrides the domain links are scoped to. Empty means
	// "derive from the seed URL"; ScopeAll disables scoping entirely.
	ScopeDomain string `json:"scopeDomain,omitempty"`

	// Location qualifies query seeds (e.g., a city name).
	Location string `json:"location,omitempty"`
}

// Validate returns an error if the seed contains invalid fields.
func (s *SeedSpec) Validate() error {
	if s.Value == "" {
		return Errorf(EINVALID, "seed value required")
	}
	switch s.Kind {
	case SeedURL:
	case SeedQuery:
		if s.Location == "" {
			return Errorf(EINVALID, "location required for query seeds")
		}
	default:
		return Errorf(EINVALID, "unknown seed kind %q", s.Kind)
	}
	return nil
}

// LeadSearcher resolves a listing-search query into candidate business
// records. The listing API client itself is an external collaborator; this
// package only defines the boundary.
type LeadSearcher interface {
	// Search returns up to limit business records matching the query in the
	// given location.
	Search(ctx context.Context, query, location string, limit int) ([]BusinessRecord, error)
}
