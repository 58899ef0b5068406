package scrapedown

import "time"

// AssemblyUnit pairs a page record with its final position in the artifact.
// Ordinals are assigned only at assembly time, over the final filtered set.
type AssemblyUnit struct {
	Page    *PageRecord `json:"page"`
	Ordinal int         `json:"ordinal"`
}

// TOCEntry points at the start of one assembly unit.
type TOCEntry struct {
	Ordinal int    `json:"ordinal"`
	Title   string `json:"title"`
	Anchor  string `json:"anchor"`
}

// Artifact is the single consolidated output of a run, independent of the
// final serialization format.
type Artifact struct {
	Title       string         `json:"title"`
	TOC         []TOCEntry     `json:"toc"`
	Units       []AssemblyUnit `json:"units"`
	GeneratedAt time.Time      `json:"generatedAt"`
}

// PageFailure records one skipped page and why.
type PageFailure struct {
	URL    string `json:"url"`
	Reason string `json:"reason"`
}

// RunResult is the contract returned to every caller. It is created once
// per pipeline invocation and read-only afterwards. Attempted always equals
// Succeeded plus the number of failures.
type RunResult struct {
	Attempted int           `json:"attempted"`
	Succeeded int           `json:"succeeded"`
	Failed    []PageFailure `json:"failed,omitempty"`
	Artifact  *Artifact     `json:"artifact,omitempty"`
}
