package json_test

import (
	"context"
	gojson "encoding/json"
	"os"
	"testing"
	"time"

	"github.com/scrapedown/scrapedown"
	"github.com/scrapedown/scrapedown/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSink_Write(t *testing.T) {
	t.Parallel()

	t.Run("writes envelope with timestamp count and items", func(t *testing.T) {
		t.Parallel()

		artifact := &scrapedown.Artifact{
			Title: "go-basics in Berlin",
			TOC: []scrapedown.TOCEntry{
				{Ordinal: 1, Title: "Intro", Anchor: "intro"},
			},
			Units: []scrapedown.AssemblyUnit{
				{Ordinal: 1, Page: &scrapedown.PageRecord{
					URL:   "https://example.com/intro",
					Title: "Intro",
				}},
			},
			GeneratedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		}

		s := json.NewSink(t.TempDir())
		path, err := s.Write(context.Background(), artifact)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var doc struct {
			Timestamp time.Time                 `json:"timestamp"`
			Title     string                    `json:"title"`
			Count     int                       `json:"count"`
			Items     []scrapedown.AssemblyUnit `json:"items"`
		}
		require.NoError(t, gojson.Unmarshal(data, &doc))

		assert.Equal(t, artifact.GeneratedAt, doc.Timestamp)
		assert.Equal(t, "go-basics in Berlin", doc.Title)
		assert.Equal(t, 1, doc.Count)
		require.Len(t, doc.Items, 1)
		assert.Equal(t, "https://example.com/intro", doc.Items[0].Page.URL)
	})

	t.Run("returns EEMPTY for empty artifact", func(t *testing.T) {
		t.Parallel()

		s := json.NewSink(t.TempDir())
		_, err := s.Write(context.Background(), &scrapedown.Artifact{})

		require.Error(t, err)
		assert.Equal(t, scrapedown.EEMPTY, scrapedown.ErrorCode(err))
	})

	t.Run("file name derives from title and timestamp", func(t *testing.T) {
		t.Parallel()

		artifact := &scrapedown.Artifact{
			Units: []scrapedown.AssemblyUnit{
				{Ordinal: 1, Page: &scrapedown.PageRecord{URL: "https://example.com/"}},
			},
			GeneratedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		}

		s := json.NewSink(t.TempDir())
		path, err := s.Write(context.Background(), artifact)
		require.NoError(t, err)
		assert.Contains(t, path, "artifact-20260314-093000.json")
	})
}
