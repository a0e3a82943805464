// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive persists completed runs to a SQLite database so past
// reports can be listed and re-read without re-querying the indexes.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paper-radar/pkg/types"
)

// ErrRunNotFound is returned by ShowRun for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

// Store manages the run archive SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the archive database at path, creating the
// parent directory and schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening archive database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			base_date TEXT NOT NULL,
			months_back INTEGER NOT NULL,
			max_papers INTEGER NOT NULL,
			fields TEXT NOT NULL,
			team_authors INTEGER NOT NULL,
			total_time REAL,
			papers_found INTEGER,
			papers_processed INTEGER,
			errors INTEGER,
			report TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS papers (
			run_id TEXT NOT NULL REFERENCES runs(id),
			month TEXT NOT NULL,
			rank INTEGER NOT NULL,
			link TEXT,
			title TEXT,
			first_author TEXT,
			total_score REAL,
			PRIMARY KEY (run_id, month, rank)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_run_id ON papers(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record persists one completed run and returns its generated ID. The
// full report document is stored as JSON alongside the queryable
// per-paper rows.
func (s *Store) Record(ctx context.Context, params types.RunParams, report *types.Report) (string, error) {
	doc, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}
	fieldsJSON, err := json.Marshal(params.Fields)
	if err != nil {
		return "", fmt.Errorf("encoding fields: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	runID := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, base_date, months_back, max_papers,
			fields, team_authors, total_time, papers_found, papers_processed, errors, report)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		time.Now().UTC().Format(time.RFC3339),
		params.BaseDate.UTC().Format(time.RFC3339),
		params.MonthsBack,
		params.MaxPapersPerMonth,
		string(fieldsJSON),
		params.TeamAuthors,
		report.Performance.TotalTime,
		report.Performance.PapersFound,
		report.Performance.PapersProcessed,
		report.Performance.Errors,
		string(doc),
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO papers (run_id, month, rank, link, title, first_author, total_score)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing paper insert: %w", err)
	}
	defer stmt.Close()

	for _, bucket := range report.Buckets {
		for rank, paper := range bucket.Papers {
			_, err := stmt.ExecContext(ctx,
				runID, bucket.Key, rank+1,
				paper.Link, paper.Title, paper.FirstAuthor, paper.Total,
			)
			if err != nil {
				return "", fmt.Errorf("inserting paper %s/%d: %w", bucket.Key, rank+1, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// RunSummary is one line of the archive listing.
type RunSummary struct {
	ID              string
	CreatedAt       time.Time
	BaseDate        time.Time
	MonthsBack      int
	Fields          []string
	PapersProcessed int
	Errors          int
	TotalTime       float64
}

// ListRuns returns all archived runs, most recent first.
func (s *Store) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, base_date, months_back, fields,
			COALESCE(papers_processed, 0), COALESCE(errors, 0), COALESCE(total_time, 0)
		 FROM runs ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var (
			r                  RunSummary
			createdAt, baseDat string
			fieldsJSON         string
		)
		if err := rows.Scan(&r.ID, &createdAt, &baseDat, &r.MonthsBack,
			&fieldsJSON, &r.PapersProcessed, &r.Errors, &r.TotalTime); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		r.BaseDate, _ = time.Parse(time.RFC3339, baseDat)
		if err := json.Unmarshal([]byte(fieldsJSON), &r.Fields); err != nil {
			return nil, fmt.Errorf("decoding fields for run %s: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ShowRun returns the stored report document for the given run ID. A
// unique ID prefix is accepted.
func (s *Store) ShowRun(ctx context.Context, id string) (json.RawMessage, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT report FROM runs WHERE id = ? OR id LIKE ? ORDER BY created_at DESC LIMIT 1`,
		id, strings.ReplaceAll(id, "%", "")+"%",
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying run %s: %w", id, err)
	}
	return json.RawMessage(doc), nil
}
