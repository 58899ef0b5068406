package goquery_test

import (
	"testing"

	"github.com/scrapedown/scrapedown"
	"github.com/scrapedown/scrapedown/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("prefers h1 in main content for the title", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Site Title</title></head>
<body>
<main>
<h1>Article Heading</h1>
<p>Body text goes here.</p>
</main>
</body>
</html>`

		e := goquery.NewContentExtractor()
		rec, err := e.Extract(html, "https://example.com/article")

		require.NoError(t, err)
		assert.Equal(t, "Article Heading", rec.Title)
	})

	t.Run("falls back to page title metadata without h1", func(t *testing.T) {
		t.Parallel()

		html := `<html>
<head><title>Meta Title</title></head>
<body><main><p>Some body text.</p></main></body>
</html>`

		e := goquery.NewContentExtractor()
		rec, err := e.Extract(html, "https://example.com/article")

		require.NoError(t, err)
		assert.Equal(t, "Meta Title", rec.Title)
	})

	t.Run("falls back to last path segment as title", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><main><p>Just text with no title anywhere.</p></main></body></html>`

		e := goquery.NewContentExtractor()
		rec, err := e.Extract(html, "https://example.com/guides/getting-started")

		require.NoError(t, err)
		assert.Equal(t, "getting-started", rec.Title)
	})

	t.Run("preserves heading hierarchy as sections", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><article>
<h1>Top</h1>
<p>Intro paragraph.</p>
<h2>Details</h2>
<p>First detail.</p>
<ul><li>Item one</li><li>Item two</li></ul>
<h3>Fine print</h3>
<p>Small note.</p>
</article></body></html>`

		e := goquery.NewContentExtractor()
		rec, err := e.Extract(html, "https://example.com/page")

		require.NoError(t, err)
		require.Len(t, rec.Sections, 3)

		assert.Equal(t, "Top", rec.Sections[0].Heading)
		assert.Equal(t, 1, rec.Sections[0].Level)
		assert.Equal(t, []string{"Intro paragraph."}, rec.Sections[0].Paragraphs)

		assert.Equal(t, "Details", rec.Sections[1].Heading)
		assert.Equal(t, 2, rec.Sections[1].Level)
		assert.Equal(t, []string{"First detail.", "Item one", "Item two"}, rec.Sections[1].Paragraphs)

		assert.Equal(t, "Fine print", rec.Sections[2].Heading)
		assert.Equal(t, 3, rec.Sections[2].Level)
	})

	t.Run("uses densest container when no semantic element exists", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="sidebar"><p>Short menu text.</p></div>
<div class="stuff">
<h1>Real Content</h1>
<p>` + longParagraph + `</p>
<p>` + longParagraph + `</p>
</div>
</body></html>`

		e := goquery.NewContentExtractor()
		rec, err := e.Extract(html, "https://example.com/page")

		require.NoError(t, err)
		assert.Equal(t, "Real Content", rec.Title)
		require.NotEmpty(t, rec.Sections)
		assert.Equal(t, "Real Content", rec.Sections[0].Heading)
	})

	t.Run("flags paywall but keeps teaser content", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><main>
<h1>Premium Article</h1>
<p>A short teaser sentence.</p>
<div class="wall">Jetzt beitreten, um weiterzulesen.</div>
</main></body></html>`

		e := goquery.NewContentExtractor()
		rec, err := e.Extract(html, "https://example.com/premium")

		require.NoError(t, err)
		assert.True(t, rec.PaywallDetected)
		assert.Equal(t, "Premium Article", rec.Title)
		require.NotEmpty(t, rec.Sections)
		assert.Equal(t, []string{"A short teaser sentence."}, rec.Sections[0].Paragraphs)
	})

	t.Run("does not flag long pages with incidental login link", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<header><a href="/login">einloggen</a></header>
<main>
<h1>Open Article</h1>
<p>` + longParagraph + `</p>
<p>` + longParagraph + `</p>
<p>` + longParagraph + `</p>
</main>
</body></html>`

		e := goquery.NewContentExtractor()
		rec, err := e.Extract(html, "https://example.com/open")

		require.NoError(t, err)
		assert.False(t, rec.PaywallDetected)
	})

	t.Run("collects description tags tools and duration", func(t *testing.T) {
		t.Parallel()

		html := `<html>
<head><meta name="description" content="How to automate with no-code tools."></head>
<body><main>
<h1>Automation Guide</h1>
<p>We connect n8n with Notion in about 12 min of setup.</p>
<div class="tags"><a href="/t/automation">Automation</a><a href="/t/nocode">No-Code</a></div>
</main></body></html>`

		e := goquery.NewContentExtractor()
		rec, err := e.Extract(html, "https://example.com/guide")

		require.NoError(t, err)
		assert.Equal(t, "How to automate with no-code tools.", rec.Metadata.Description)
		assert.Equal(t, []string{"Automation", "No-Code"}, rec.Metadata.Tags)
		assert.Equal(t, []string{"n8n", "Notion"}, rec.Metadata.Tools)
		assert.Equal(t, "12 min", rec.Metadata.Duration)
	})

	t.Run("returns EUNPROCESSABLE for empty page", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewContentExtractor()
		_, err := e.Extract("<html><body></body></html>", "https://example.com/")

		require.Error(t, err)
		assert.Equal(t, scrapedown.EUNPROCESSABLE, scrapedown.ErrorCode(err))
	})

	t.Run("computes a content hash", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><main><h1>Title</h1><p>Text.</p></main></body></html>`

		e := goquery.NewContentExtractor()
		rec, err := e.Extract(html, "https://example.com/page")

		require.NoError(t, err)
		assert.NotEmpty(t, rec.ContentHash)
		assert.Equal(t, scrapedown.HashContent(rec.ContentHTML), rec.ContentHash)
	})
}

// longParagraph pads test pages past the paywall short-body threshold.
const longParagraph = "This paragraph exists to give the page a realistically long body of text " +
	"so that length-based heuristics treat it as a full article rather than a teaser fragment. " +
	"It talks about nothing in particular at considerable and deliberate length, sentence after sentence."
