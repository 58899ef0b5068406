package goquery_test

import (
	"testing"

	"github.com/scrapedown/scrapedown/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkExtractor_ExtractLinks(t *testing.T) {
	t.Parallel()

	t.Run("resolves relative links against base URL", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<a href="/guides/intro">Intro</a>
<a href="deep/nested">Nested</a>
<a href="https://example.com/absolute">Absolute</a>
</body>
</html>`

		e := goquery.NewLinkExtractor()
		links, err := e.ExtractLinks(html, "https://example.com/guides/")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/guides/intro",
			"https://example.com/guides/deep/nested",
			"https://example.com/absolute",
		}, links)
	})

	t.Run("drops mailto tel javascript and data schemes", func(t *testing.T) {
		t.Parallel()

		html := `<body>
<a href="mailto:info@example.com">Mail</a>
<a href="tel:+4912345678">Call</a>
<a href="javascript:void(0)">JS</a>
<a href="data:text/plain,hi">Data</a>
<a href="/keep">Keep</a>
</body>`

		e := goquery.NewLinkExtractor()
		links, err := e.ExtractLinks(html, "https://example.com")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/keep"}, links)
	})

	t.Run("drops fragment-only and self-referential links", func(t *testing.T) {
		t.Parallel()

		html := `<body>
<a href="#section">Jump</a>
<a href="/page#section">Page with fragment</a>
<a href="/page">Same page again</a>
</body>`

		e := goquery.NewLinkExtractor()
		links, err := e.ExtractLinks(html, "https://example.com/page")

		require.NoError(t, err)
		assert.Empty(t, links)
	})

	t.Run("collapses duplicates within one page", func(t *testing.T) {
		t.Parallel()

		html := `<body>
<a href="/docs">Docs</a>
<a href="/docs">Docs again</a>
<a href="/docs#intro">Docs fragment</a>
</body>`

		e := goquery.NewLinkExtractor()
		links, err := e.ExtractLinks(html, "https://example.com")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/docs"}, links)
	})

	t.Run("keeps off-host links for the frontier to scope", func(t *testing.T) {
		t.Parallel()

		html := `<body>
<a href="https://blog.example.com/post">Subdomain</a>
<a href="https://other.org/page">Elsewhere</a>
</body>`

		e := goquery.NewLinkExtractor()
		links, err := e.ExtractLinks(html, "https://example.com")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://blog.example.com/post",
			"https://other.org/page",
		}, links)
	})

	t.Run("returns error for invalid base URL", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewLinkExtractor()
		_, err := e.ExtractLinks("<body></body>", "://not-a-url")

		assert.Error(t, err)
	})
}
