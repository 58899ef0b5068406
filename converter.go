package scrapedown

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms clean content HTML (e.g., a PageRecord's
	// ContentHTML) into Markdown.
	Convert(html string) (string, error)
}
