package scrapedown

import "context"

// Sink serializes a finished artifact. Output formats (JSON dataset, merged
// document, spreadsheet upload) live behind this boundary; the pipeline
// itself only produces the format-neutral Artifact.
//
// A sink failure is surfaced to the caller but never discards the in-memory
// artifact, which remains inspectable and re-exportable.
type Sink interface {
	// Write serializes the artifact and returns the destination
	// (typically a file path).
	Write(ctx context.Context, artifact *Artifact) (string, error)
}
