// Package trafilatura implements a boilerplate-stripping content extractor
// on top of github.com/markusmobius/go-trafilatura. It serves as the
// fallback main-content strategy when selector and density heuristics find
// nothing.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/scrapedown/scrapedown"
	"golang.org/x/net/html"
)

// Ensure Extractor implements scrapedown.Extractor at compile time.
var _ scrapedown.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract strips boilerplate and returns the page's title and main content
// markup. Section and metadata heuristics are left to richer extractors;
// callers use this as the last resort before declaring a page empty.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*scrapedown.PageRecord, error) {
	if rawHTML == "" {
		return nil, scrapedown.Errorf(scrapedown.EUNPROCESSABLE, "empty HTML input for %s", pageURL)
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, scrapedown.Errorf(scrapedown.EUNPROCESSABLE, "no content found at %s: %v", pageURL, err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, scrapedown.Errorf(scrapedown.EINTERNAL, "rendering content for %s: %v", pageURL, err)
		}
	}

	title := strings.TrimSpace(result.Metadata.Title)
	if title == "" && contentHTML == "" {
		return nil, scrapedown.Errorf(scrapedown.EUNPROCESSABLE, "no content found at %s", pageURL)
	}
	if title == "" {
		title = scrapedown.LastPathSegment(pageURL)
	}

	rec := &scrapedown.PageRecord{
		URL:         pageURL,
		Title:       title,
		ContentHTML: contentHTML,
	}
	rec.ContentHash = scrapedown.HashContent(contentHTML)
	return rec, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
