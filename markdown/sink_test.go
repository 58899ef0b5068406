package markdown_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/scrapedown/scrapedown"
	"github.com/scrapedown/scrapedown/markdown"
	"github.com/scrapedown/scrapedown/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArtifact() *scrapedown.Artifact {
	return &scrapedown.Artifact{
		Title: "example.com",
		TOC: []scrapedown.TOCEntry{
			{Ordinal: 1, Title: "First Page", Anchor: "first-page"},
			{Ordinal: 2, Title: "Second Page", Anchor: "second-page"},
		},
		Units: []scrapedown.AssemblyUnit{
			{Ordinal: 1, Page: &scrapedown.PageRecord{
				URL:         "https://example.com/first",
				Title:       "First Page",
				ContentHTML: "<p>First body.</p>",
			}},
			{Ordinal: 2, Page: &scrapedown.PageRecord{
				URL:   "https://example.com/second",
				Title: "Second Page",
				Sections: []scrapedown.Section{
					{Heading: "Part", Level: 2, Paragraphs: []string{"Second body."}},
				},
			}},
		},
		GeneratedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestSink_Write(t *testing.T) {
	t.Parallel()

	t.Run("writes merged document with TOC and numbered sections", func(t *testing.T) {
		t.Parallel()

		conv := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return "First body.", nil
			},
		}
		s := markdown.NewSink(conv, t.TempDir())

		path, err := s.Write(context.Background(), testArtifact())
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		doc := string(data)

		assert.Contains(t, doc, "# example.com")
		assert.Contains(t, doc, "1. [First Page](#first-page)")
		assert.Contains(t, doc, "2. [Second Page](#second-page)")
		assert.Contains(t, doc, "## 1. First Page")
		assert.Contains(t, doc, "## 2. Second Page")
		assert.Contains(t, doc, "First body.")
		assert.Contains(t, doc, "Second body.")
		assert.Contains(t, doc, "Source: <https://example.com/first>")
	})

	t.Run("falls back to sections when conversion fails", func(t *testing.T) {
		t.Parallel()

		conv := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return "", scrapedown.Errorf(scrapedown.EINTERNAL, "boom")
			},
		}
		artifact := testArtifact()
		artifact.Units[0].Page.Sections = []scrapedown.Section{
			{Heading: "Fallback", Level: 1, Paragraphs: []string{"Fallback body."}},
		}

		s := markdown.NewSink(conv, t.TempDir())
		path, err := s.Write(context.Background(), artifact)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Fallback body.")
	})

	t.Run("returns EEMPTY for empty artifact", func(t *testing.T) {
		t.Parallel()

		s := markdown.NewSink(nil, t.TempDir())
		_, err := s.Write(context.Background(), &scrapedown.Artifact{})

		require.Error(t, err)
		assert.Equal(t, scrapedown.EEMPTY, scrapedown.ErrorCode(err))
	})

	t.Run("file name derives from title and timestamp", func(t *testing.T) {
		t.Parallel()

		conv := &mock.Converter{ConvertFn: func(html string) (string, error) { return "x", nil }}
		s := markdown.NewSink(conv, t.TempDir())

		path, err := s.Write(context.Background(), testArtifact())
		require.NoError(t, err)
		assert.Contains(t, path, "examplecom-20260314-093000.md")
	})
}
