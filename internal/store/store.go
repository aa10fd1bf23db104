// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists analysis results in a SQLite database with an
// FTS5 index over subsection text, so past runs can be listed and
// searched without re-analyzing the PDFs.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/docsight/pkg/types"
)

const defaultMaxResults = 20

// Store manages the results database.
type Store struct {
	db         *sql.DB
	maxResults int

	// ftsEnabled records whether the FTS5 index is available. The driver
	// only includes FTS5 under the sqlite_fts5 build tag; without it,
	// search falls back to substring matching.
	ftsEnabled bool
}

// Open opens or creates the results database at cfg.Path, creating the
// schema if needed.
func Open(cfg types.StoreConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = "docsight.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
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
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp TEXT NOT NULL,
			persona TEXT NOT NULL,
			task TEXT NOT NULL,
			documents TEXT NOT NULL,
			sections_extracted INTEGER,
			subsections_generated INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS run_sections (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			document TEXT NOT NULL,
			title TEXT NOT NULL,
			page INTEGER,
			rank INTEGER,
			score REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_sections_run ON run_sections(run_id)`,
		`CREATE TABLE IF NOT EXISTS run_chunks (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			document TEXT NOT NULL,
			section_title TEXT,
			text TEXT NOT NULL,
			page INTEGER,
			rank INTEGER,
			score REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_chunks_run ON run_chunks(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='run_chunks_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists > 0 {
		s.ftsEnabled = true
		return nil
	}

	ftsStatements := []string{
		`CREATE VIRTUAL TABLE run_chunks_fts USING fts5(text, content=run_chunks, content_rowid=rowid)`,
		`CREATE TRIGGER run_chunks_ai AFTER INSERT ON run_chunks BEGIN
			INSERT INTO run_chunks_fts(rowid, text) VALUES (new.rowid, new.text);
		END`,
		`CREATE TRIGGER run_chunks_ad AFTER DELETE ON run_chunks BEGIN
			INSERT INTO run_chunks_fts(run_chunks_fts, rowid, text) VALUES('delete', old.rowid, old.text);
		END`,
	}
	for i, stmt := range ftsStatements {
		if _, err := s.db.Exec(stmt); err != nil {
			// A driver built without the sqlite_fts5 tag has no fts5
			// module. Run without the index rather than failing Open;
			// search degrades to substring matching.
			if i == 0 && strings.Contains(err.Error(), "fts5") {
				return nil
			}
			return fmt.Errorf("creating FTS infrastructure: %w", err)
		}
	}
	s.ftsEnabled = true

	return nil
}

// SaveResult stores one analysis result and returns the run ID.
func (s *Store) SaveResult(ctx context.Context, result *types.Result) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	docsJSON, _ := json.Marshal(result.Metadata.InputDocuments)

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (timestamp, persona, task, documents, sections_extracted, subsections_generated)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		result.Metadata.ProcessingTimestamp, result.Metadata.Persona,
		result.Metadata.JobToBeDone, string(docsJSON),
		result.Metadata.SectionsExtracted, result.Metadata.SubsectionsGenerated,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	secStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_sections (run_id, document, title, page, rank, score)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing section insert: %w", err)
	}
	defer secStmt.Close()

	for _, sec := range result.ExtractedSections {
		if _, err := secStmt.ExecContext(ctx,
			runID, sec.Document, sec.SectionTitle, sec.PageNumber,
			sec.ImportanceRank, sec.RelevanceScore,
		); err != nil {
			return 0, fmt.Errorf("inserting section %q: %w", sec.SectionTitle, err)
		}
	}

	chunkStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_chunks (run_id, document, section_title, text, page, rank, score)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing chunk insert: %w", err)
	}
	defer chunkStmt.Close()

	for _, c := range result.SubsectionAnalysis {
		if _, err := chunkStmt.ExecContext(ctx,
			runID, c.Document, c.SectionTitle, c.RefinedText, c.PageNumber,
			c.Rank, c.RelevanceScore,
		); err != nil {
			return 0, fmt.Errorf("inserting chunk (rank %d): %w", c.Rank, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}
