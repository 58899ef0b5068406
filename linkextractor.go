package scrapedown

// LinkExtractor returns the outbound links of a fetched page.
// Results are consumed as a set by the Frontier; duplicates within one page
// collapse silently and ordering carries no meaning.
type LinkExtractor interface {
	// ExtractLinks resolves relative links against baseURL and returns
	// absolute http(s) URLs. Fragment-only links and mailto/tel/javascript
	// schemes are dropped.
	ExtractLinks(html string, baseURL string) ([]string, error)
}
