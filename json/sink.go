// Package json implements the dataset sink: the artifact and its summary
// serialized as a timestamped JSON file.
package json

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/scrapedown/scrapedown"
)

// Ensure Sink implements scrapedown.Sink at compile time.
var _ scrapedown.Sink = (*Sink)(nil)

// envelope is the on-disk document shape.
type envelope struct {
	Timestamp time.Time                 `json:"timestamp"`
	Title     string                    `json:"title"`
	Count     int                       `json:"count"`
	TOC       []scrapedown.TOCEntry     `json:"toc"`
	Items     []scrapedown.AssemblyUnit `json:"items"`
}

// Sink writes artifacts as JSON datasets.
type Sink struct {
	dir string
}

// NewSink creates a Sink writing timestamped files into dir. An empty dir
// defaults to a scrapedown directory under the system temp directory.
func NewSink(dir string) *Sink {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "scrapedown")
	}
	return &Sink{dir: dir}
}

// Write serializes the artifact and returns the written file's path.
func (s *Sink) Write(ctx context.Context, artifact *scrapedown.Artifact) (string, error) {
	if artifact == nil || len(artifact.Units) == 0 {
		return "", scrapedown.Errorf(scrapedown.EEMPTY, "nothing to write")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	doc := envelope{
		Timestamp: artifact.GeneratedAt,
		Title:     artifact.Title,
		Count:     len(artifact.Units),
		TOC:       artifact.TOC,
		Items:     artifact.Units,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", scrapedown.Errorf(scrapedown.EINTERNAL, "encoding artifact: %v", err)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", scrapedown.Errorf(scrapedown.EINTERNAL, "creating output directory: %v", err)
	}

	path := filepath.Join(s.dir, fileName(artifact))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", scrapedown.Errorf(scrapedown.EINTERNAL, "writing dataset: %v", err)
	}

	return path, nil
}

func fileName(artifact *scrapedown.Artifact) string {
	slug := scrapedown.GenerateAnchor(artifact.Title)
	if slug == "" {
		slug = "artifact"
	}
	return fmt.Sprintf("%s-%s.json", slug, artifact.GeneratedAt.Format("20060102-150405"))
}
