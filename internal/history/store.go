// Package history persists scoring runs in SQLite so that scores can be
// compared across runs.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/idlab-discover/TrustScore-cli/internal/category"
	"github.com/idlab-discover/TrustScore-cli/internal/scoring"
)

// Run is one invocation of the scorer over a URL list.
type Run struct {
	ID            string    `db:"id" json:"id"`
	StartedAt     time.Time `db:"started_at" json:"started_at"`
	URLCount      int       `db:"url_count" json:"url_count"`
	Analyzed      int       `db:"analyzed" json:"analyzed"`
	AvgPercentage float64   `db:"avg_percentage" json:"avg_percentage"`
	Level         string    `db:"level" json:"level"`
}

// Entry is a stored result row.
type Entry struct {
	ID        int64               `db:"id" json:"-"`
	RunID     string              `db:"run_id" json:"run_id"`
	Position  int                 `db:"position" json:"position"`
	URL       string              `db:"url" json:"url"`
	Name      string              `db:"name" json:"name"`
	Category  string              `db:"category" json:"category"`
	Score     float64             `db:"score" json:"score"`
	MaxScore  float64             `db:"max_score" json:"max_score"`
	NetScore  float64             `db:"net_score" json:"net_score"`
	Fallback  bool                `db:"fallback" json:"fallback"`
	Error     string              `db:"error" json:"error,omitempty"`
	SizeMB    float64             `db:"size_mb" json:"size_mb"`
	SizeJSON  string              `db:"size_json" json:"-"`
	SizeScore scoring.SizeFitness `db:"-" json:"size_score,omitempty"`
}

// Store is the persistence interface.
type Store interface {
	RecordRun(ctx context.Context, startedAt time.Time, results []scoring.Result) (*Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	ListResults(ctx context.Context, runID string) ([]Entry, error)
	URLHistory(ctx context.Context, url string, limit int) ([]Entry, error)
	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// Open opens (creating if needed) the SQLite database at path and runs
// migrations.
func Open(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// DefaultPath is the history database location under the user's home.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".trustscore-cli", "history.db")
	}
	return filepath.Join(home, ".trustscore-cli", "history.db")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// RecordRun stores results as a new run in a single transaction.
func (s *SQLiteStore) RecordRun(ctx context.Context, startedAt time.Time, results []scoring.Result) (*Run, error) {
	sum := scoring.Summarize(results)
	run := &Run{
		ID:            uuid.New().String(),
		StartedAt:     startedAt.UTC(),
		URLCount:      len(results),
		Analyzed:      sum.Analyzed,
		AvgPercentage: sum.AveragePercentage(),
		Level:         string(sum.Level),
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin run: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.NamedExecContext(ctx, `
		INSERT INTO runs (id, started_at, url_count, analyzed, avg_percentage, level)
		VALUES (:id, :started_at, :url_count, :analyzed, :avg_percentage, :level)
	`, run); err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}

	for i, r := range results {
		sizeJSON := []byte("{}")
		if r.Details.SizeScore != nil {
			sizeJSON, err = json.Marshal(r.Details.SizeScore)
			if err != nil {
				return nil, fmt.Errorf("encode size score %s: %w", r.URL, err)
			}
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO results (run_id, position, url, name, category, score, max_score, net_score, fallback, error, size_mb, size_json)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, run.ID, i, r.URL, r.Details.Name, r.Category.String(), r.Score, r.MaxScore,
			r.NetScore(), r.Details.Fallback, r.Details.Error, r.Details.SizeMB, string(sizeJSON)); err != nil {
			return nil, fmt.Errorf("insert result %s: %w", r.URL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs first.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []Run
	if err := s.db.SelectContext(ctx, &runs,
		"SELECT * FROM runs ORDER BY started_at DESC LIMIT ?", limit); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// ListResults returns the results of runID in input order.
func (s *SQLiteStore) ListResults(ctx context.Context, runID string) ([]Entry, error) {
	var entries []Entry
	if err := s.db.SelectContext(ctx, &entries,
		"SELECT * FROM results WHERE run_id = ? ORDER BY position", runID); err != nil {
		return nil, fmt.Errorf("list results %s: %w", runID, err)
	}
	if err := decodeSizes(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// URLHistory returns the stored results for url, newest run first.
func (s *SQLiteStore) URLHistory(ctx context.Context, url string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	var entries []Entry
	if err := s.db.SelectContext(ctx, &entries, `
		SELECT results.* FROM results
		JOIN runs ON runs.id = results.run_id
		WHERE results.url = ?
		ORDER BY runs.started_at DESC
		LIMIT ?
	`, url, limit); err != nil {
		return nil, fmt.Errorf("url history %s: %w", url, err)
	}
	if err := decodeSizes(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func decodeSizes(entries []Entry) error {
	for i := range entries {
		if entries[i].SizeJSON == "" {
			continue
		}
		if err := json.Unmarshal([]byte(entries[i].SizeJSON), &entries[i].SizeScore); err != nil {
			return fmt.Errorf("decode size score of result %d: %w", entries[i].ID, err)
		}
	}
	return nil
}

// ParsedCategory parses the stored category tag.
func (e Entry) ParsedCategory() category.Category {
	c, _ := category.Parse(e.Category)
	return c
}
