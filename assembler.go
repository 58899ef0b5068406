package scrapedown

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Order selects how assembly units are numbered.
type Order string

// Supported assembly orderings.
const (
	// OrderDiscovery keeps the input (frontier discovery) order.
	OrderDiscovery Order = "discovery"

	// OrderTitle re-sorts alphabetically by title before numbering.
	OrderTitle Order = "title"
)

// Assemble merges page records into one artifact with a table of contents
// and contiguous ordinals starting at 1. It is a pure function of its input
// order: the same ordered record sequence always yields the same artifact
// modulo the generation timestamp.
//
// Returns an EEMPTY error when given zero records; an empty document is a
// pipeline-level failure, not a degenerate success.
func Assemble(title string, records []*PageRecord, order Order) (*Artifact, error) {
	if len(records) == 0 {
		return nil, Errorf(EEMPTY, "no page records to assemble")
	}

	units := make([]AssemblyUnit, 0, len(records))
	for _, rec := range records {
		units = append(units, AssemblyUnit{Page: rec})
	}

	if order == OrderTitle {
		sort.SliceStable(units, func(i, j int) bool {
			return strings.ToLower(unitTitle(units[i])) < strings.ToLower(unitTitle(units[j]))
		})
	}

	toc := make([]TOCEntry, 0, len(units))
	anchorCounts := make(map[string]int)
	for i := range units {
		units[i].Ordinal = i + 1

		t := unitTitle(units[i])
		baseAnchor := GenerateAnchor(t)
		anchor := baseAnchor
		if count, exists := anchorCounts[baseAnchor]; exists {
			anchor = baseAnchor + "-" + strconv.Itoa(count)
			anchorCounts[baseAnchor]++
		} else {
			anchorCounts[baseAnchor] = 1
		}

		toc = append(toc, TOCEntry{
			Ordinal: units[i].Ordinal,
			Title:   t,
			Anchor:  anchor,
		})
	}

	return &Artifact{
		Title:       title,
		TOC:         toc,
		Units:       units,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// unitTitle falls back to the URL's last path segment when a page has no
// resolvable title.
func unitTitle(u AssemblyUnit) string {
	if u.Page.Title != "" {
		return u.Page.Title
	}
	return LastPathSegment(u.Page.URL)
}

// LastPathSegment returns the final path segment of a URL, or the host for
// root URLs. Used as the lowest-precedence title fallback.
func LastPathSegment(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	path := strings.Trim(u.Path, "/")
	if path == "" {
		return u.Host
	}
	if idx := strings.LastIndex(path, "/"); idx != -1 {
		path = path[idx+1:]
	}
	return path
}

// GenerateAnchor creates a URL-safe anchor from a title.
// Converts to lowercase, replaces spaces with hyphens, removes special chars.
func GenerateAnchor(title string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}
