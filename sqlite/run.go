package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/scrapedown/scrapedown"
)

// Compile-time interface verification.
var _ scrapedown.RunService = (*RunService)(nil)

// RunService implements scrapedown.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun stores a run and its page records in one transaction.
func (s *RunService) CreateRun(ctx context.Context, run *scrapedown.Run, pages []*scrapedown.PageRecord) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.CreatedAt = time.Now().UTC()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, kind, seed, location, attempted, succeeded, failed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, string(run.Kind), run.Seed, run.Location, run.Attempted, run.Succeeded, run.Failed,
		run.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	for i, page := range pages {
		if err := page.Validate(); err != nil {
			return err
		}

		sections, err := json.Marshal(page.Sections)
		if err != nil {
			return err
		}
		metadata, err := json.Marshal(page.Metadata)
		if err != nil {
			return err
		}

		paywall := 0
		if page.PaywallDetected {
			paywall = 1
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO pages (id, run_id, url, title, content_html, sections, metadata, paywall, content_hash, position, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), run.ID, page.URL, page.Title, page.ContentHTML,
			string(sections), string(metadata), paywall, page.ContentHash, i,
			page.FetchedAt.UTC().Format(time.RFC3339))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*scrapedown.Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, kind, seed, location, attempted, succeeded, failed, created_at
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row.Scan)
	if err == sql.ErrNoRows {
		return nil, scrapedown.Errorf(scrapedown.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter scrapedown.RunFilter) ([]*scrapedown.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, kind, seed, location, attempted, succeeded, failed, created_at FROM runs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Kind != nil {
		query.WriteString(" AND kind = ?")
		args = append(args, *filter.Kind)
	}

	query.WriteString(" ORDER BY created_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*scrapedown.Run
	for rows.Next() {
		run, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// FindPagesByRun retrieves a run's page records in stored order.
func (s *RunService) FindPagesByRun(ctx context.Context, runID string) ([]*scrapedown.PageRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT url, title, content_html, sections, metadata, paywall, content_hash, fetched_at
		FROM pages
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*scrapedown.PageRecord
	for rows.Next() {
		var page scrapedown.PageRecord
		var sections, metadata, fetchedAt string
		var paywall int

		if err := rows.Scan(&page.URL, &page.Title, &page.ContentHTML, &sections, &metadata,
			&paywall, &page.ContentHash, &fetchedAt); err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(sections), &page.Sections); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(metadata), &page.Metadata); err != nil {
			return nil, err
		}
		page.PaywallDetected = paywall != 0

		page.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
		if err != nil {
			return nil, err
		}

		pages = append(pages, &page)
	}

	return pages, rows.Err()
}

// DeleteRun permanently removes a run and its page records.
func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return scrapedown.Errorf(scrapedown.ENOTFOUND, "run not found")
	}
	return nil
}

// scanRun reads one runs row via the given scan function.
func scanRun(scan func(dest ...any) error) (*scrapedown.Run, error) {
	var run scrapedown.Run
	var kind, createdAt string

	if err := scan(&run.ID, &kind, &run.Seed, &run.Location, &run.Attempted, &run.Succeeded,
		&run.Failed, &createdAt); err != nil {
		return nil, err
	}

	run.Kind = scrapedown.SeedKind(kind)

	var err error
	run.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &run, nil
}
