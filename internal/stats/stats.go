// Package stats records page views when the viewer has opted in
// (browser.gatherUsageStats). With the opt-in off the server gets a Nop
// recorder and nothing is ever written anywhere.
package stats

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/31Joojo/portfolio/internal/logging"
	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed schema.sql
var schemaFS embed.FS

// Recorder accepts page-view events.
type Recorder interface {
	// Record stores one page view. viewer may be empty.
	Record(ctx context.Context, pageID, viewer string) error

	Close() error
}

// Nop is the recorder used when usage stats are disabled.
type Nop struct{}

func (Nop) Record(context.Context, string, string) error { return nil }
func (Nop) Close() error                                 { return nil }

// SQLite persists page views in a database under the configured data path.
type SQLite struct {
	db     *sql.DB
	logger logging.Logger
}

// Open creates (if needed) and opens the usage database in dataPath.
func Open(dataPath string, logger logging.Logger) (*SQLite, error) {
	if err := os.MkdirAll(dataPath, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataPath, "usage.db"))
	if err != nil {
		return nil, fmt.Errorf("opening usage database: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db, logger: logger}, nil
}

func applySchema(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := db.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Record implements Recorder.
func (s *SQLite) Record(ctx context.Context, pageID, viewer string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO page_views (id, page, viewer, viewed_at) VALUES (?, ?, ?, ?)`,
		uuid.New().String(), pageID, viewer, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("recording page view: %w", err)
	}
	if s.logger != nil {
		s.logger.Debug("recorded page view", logging.Field{Key: "page", Value: pageID})
	}
	return nil
}

// PageViews returns the view count per page id.
func (s *SQLite) PageViews(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT page, COUNT(*) FROM page_views GROUP BY page`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var page string
		var n int
		if err := rows.Scan(&page, &n); err != nil {
			return nil, err
		}
		out[page] = n
	}
	return out, rows.Err()
}

// Total returns the total number of recorded views.
func (s *SQLite) Total(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM page_views`).Scan(&n)
	return n, err
}

func (s *SQLite) Close() error { return s.db.Close() }
