package mock

import "github.com/scrapedown/scrapedown"

var _ scrapedown.Converter = (*Converter)(nil)

// Converter is a mock implementation of scrapedown.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
