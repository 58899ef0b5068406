package main

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/scrapedown/scrapedown"
)

// fileSearcher implements scrapedown.LeadSearcher over a local JSON file of
// business records, standing in for the external listing-search
// collaborator. The file is an exported listing snapshot: a JSON array of
// {name, address, phone, website, rating, serviceBusiness} objects.
type fileSearcher struct {
	records []scrapedown.BusinessRecord
}

// newFileSearcher loads the listing snapshot at path.
func newFileSearcher(path string) (*fileSearcher, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, scrapedown.Errorf(scrapedown.EINVALID, "reading listings file: %v", err)
	}

	var records []scrapedown.BusinessRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, scrapedown.Errorf(scrapedown.EINVALID, "parsing listings file %s: %v", path, err)
	}

	return &fileSearcher{records: records}, nil
}

// Search returns up to limit records whose name or address mentions the
// query or location. Snapshots exported for a specific search typically
// match everything; the filter only matters for mixed files.
func (s *fileSearcher) Search(ctx context.Context, query, location string, limit int) ([]scrapedown.BusinessRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []scrapedown.BusinessRecord
	for _, rec := range s.records {
		if len(out) >= limit {
			break
		}
		if matchesListing(rec, query) || matchesListing(rec, location) || (query == "" && location == "") {
			out = append(out, rec)
		}
	}

	// A snapshot that names nothing matching is still the user's chosen
	// input; fall back to the whole file rather than returning nothing.
	if len(out) == 0 {
		for _, rec := range s.records {
			if len(out) >= limit {
				break
			}
			out = append(out, rec)
		}
	}

	return out, nil
}

func matchesListing(rec scrapedown.BusinessRecord, term string) bool {
	if term == "" {
		return false
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(rec.Name), term) ||
		strings.Contains(strings.ToLower(rec.Address), term)
}
