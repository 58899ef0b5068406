// Package markdown implements the merged-document sink: one Markdown file
// containing the artifact's title, a generated table of contents, and every
// assembly unit converted from its content HTML.
package markdown

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/scrapedown/scrapedown"
)

// Ensure Sink implements scrapedown.Sink at compile time.
var _ scrapedown.Sink = (*Sink)(nil)

// Sink writes artifacts as single merged Markdown documents.
type Sink struct {
	converter scrapedown.Converter
	dir       string
}

// NewSink creates a Sink writing timestamped files into dir. An empty dir
// defaults to a scrapedown directory under the system temp directory.
func NewSink(converter scrapedown.Converter, dir string) *Sink {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "scrapedown")
	}
	return &Sink{converter: converter, dir: dir}
}

// Write renders the artifact and returns the written file's path. Units
// whose content cannot be converted fall back to their parsed sections so a
// single conversion failure never loses the unit.
func (s *Sink) Write(ctx context.Context, artifact *scrapedown.Artifact) (string, error) {
	if artifact == nil || len(artifact.Units) == 0 {
		return "", scrapedown.Errorf(scrapedown.EEMPTY, "nothing to write")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	content := s.render(artifact)

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", scrapedown.Errorf(scrapedown.EINTERNAL, "creating output directory: %v", err)
	}

	path := filepath.Join(s.dir, fileName(artifact))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", scrapedown.Errorf(scrapedown.EINTERNAL, "writing document: %v", err)
	}

	return path, nil
}

func (s *Sink) render(artifact *scrapedown.Artifact) string {
	var b strings.Builder

	b.WriteString("# ")
	b.WriteString(artifact.Title)
	b.WriteString("\n\n")
	b.WriteString("_Generated: ")
	b.WriteString(artifact.GeneratedAt.Format("2006-01-02 15:04 MST"))
	b.WriteString("_\n\n")

	b.WriteString("## Contents\n\n")
	for _, entry := range artifact.TOC {
		fmt.Fprintf(&b, "%d. [%s](#%s)\n", entry.Ordinal, entry.Title, entry.Anchor)
	}
	b.WriteString("\n")

	for i, unit := range artifact.Units {
		title := unit.Page.Title
		if title == "" {
			title = scrapedown.LastPathSegment(unit.Page.URL)
		}
		fmt.Fprintf(&b, "## %d. %s\n\n", unit.Ordinal, title)
		fmt.Fprintf(&b, "Source: <%s>\n\n", unit.Page.URL)
		if unit.Page.PaywallDetected {
			b.WriteString("> Teaser content only; the full page sits behind a login wall.\n\n")
		}

		b.WriteString(s.unitBody(unit.Page))
		b.WriteString("\n")
		if i < len(artifact.Units)-1 {
			b.WriteString("\n---\n\n")
		}
	}

	return b.String()
}

// unitBody converts the unit's content HTML, falling back to its parsed
// sections when conversion fails or no markup was kept.
func (s *Sink) unitBody(page *scrapedown.PageRecord) string {
	if page.ContentHTML != "" && s.converter != nil {
		if md, err := s.converter.Convert(page.ContentHTML); err == nil {
			return strings.TrimSpace(md) + "\n"
		}
	}

	var b strings.Builder
	for _, section := range page.Sections {
		if section.Heading != "" {
			level := section.Level + 2
			if level > 6 {
				level = 6
			}
			b.WriteString(strings.Repeat("#", level))
			b.WriteString(" ")
			b.WriteString(section.Heading)
			b.WriteString("\n\n")
		}
		for _, p := range section.Paragraphs {
			b.WriteString(p)
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

func fileName(artifact *scrapedown.Artifact) string {
	slug := scrapedown.GenerateAnchor(artifact.Title)
	if slug == "" {
		slug = "artifact"
	}
	return fmt.Sprintf("%s-%s.md", slug, artifact.GeneratedAt.Format("20060102-150405"))
}
