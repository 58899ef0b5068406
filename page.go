package scrapedown

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Section is one heading-delimited slice of a page's main content.
// Paragraphs and list items are retained in document order.
type Section struct {
	Heading    string   `json:"heading"`
	Level      int      `json:"level"`
	Paragraphs []string `json:"paragraphs,omitempty"`
}

// PageMetadata holds auxiliary fields detected during extraction.
type PageMetadata struct {
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Tools       []string `json:"tools,omitempty"`
	Duration    string   `json:"duration,omitempty"`
}

// PageRecord is the structured result of extracting one fetched page.
// It is immutable after its producing stage returns.
type PageRecord struct {
	URL   string `json:"url"`
	Title string `json:"title"`

	// Sections preserve the page's heading hierarchy.
	Sections []Section `json:"sections,omitempty"`

	// ContentHTML is the cleaned main-content markup, boilerplate removed.
	// Kept alongside the parsed sections so document sinks can re-render.
	ContentHTML string `json:"-"`

	Metadata PageMetadata `json:"metadata"`

	// PaywallDetected marks teaser content gathered up to a login wall.
	PaywallDetected bool `json:"paywallDetected,omitempty"`

	ContentHash string    `json:"contentHash,omitempty"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (p *PageRecord) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	return nil
}

// HashContent computes a stable content hash using xxhash.
func HashContent(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}
