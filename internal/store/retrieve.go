// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// RunInfo summarizes one stored analysis run.
type RunInfo struct {
	ID                   int64    `json:"id"`
	Timestamp            string   `json:"timestamp"`
	Persona              string   `json:"persona"`
	Task                 string   `json:"task"`
	Documents            []string `json:"documents"`
	SectionsExtracted    int      `json:"sections_extracted"`
	SubsectionsGenerated int      `json:"subsections_generated"`
}

// Runs lists stored runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]RunInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, timestamp, persona, task, documents, sections_extracted, subsections_generated
		 FROM runs ORDER BY id DESC LIMIT ?`, s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		var r RunInfo
		var docsJSON string
		if err := rows.Scan(&r.ID, &r.Timestamp, &r.Persona, &r.Task,
			&docsJSON, &r.SectionsExtracted, &r.SubsectionsGenerated); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if err := json.Unmarshal([]byte(docsJSON), &r.Documents); err != nil {
			return nil, fmt.Errorf("decoding document list for run %d: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ChunkHit is one full-text search match over stored subsection text.
type ChunkHit struct {
	RunID        int64   `json:"run_id"`
	Persona      string  `json:"persona"`
	Document     string  `json:"document"`
	SectionTitle string  `json:"section_title"`
	Text         string  `json:"text"`
	Page         int     `json:"page"`
	Score        float64 `json:"score"`
}

// SearchChunks searches stored subsection text across all runs, most
// relevant matches first. With the FTS5 index available the query is a
// full-text MATCH; otherwise it degrades to case-insensitive substring
// matching ordered by relevance score.
func (s *Store) SearchChunks(ctx context.Context, query string, limit int) ([]ChunkHit, error) {
	if query == "" {
		return nil, fmt.Errorf("search query is empty")
	}
	if limit <= 0 {
		limit = s.maxResults
	}

	var (
		rows *sql.Rows
		err  error
	)
	if s.ftsEnabled {
		rows, err = s.db.QueryContext(ctx,
			`SELECT c.run_id, r.persona, c.document, c.section_title, c.text, c.page, c.score
			 FROM run_chunks_fts
			 JOIN run_chunks c ON c.rowid = run_chunks_fts.rowid
			 JOIN runs r ON r.id = c.run_id
			 WHERE run_chunks_fts MATCH ?
			 ORDER BY run_chunks_fts.rank
			 LIMIT ?`, query, limit)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT c.run_id, r.persona, c.document, c.section_title, c.text, c.page, c.score
			 FROM run_chunks c
			 JOIN runs r ON r.id = c.run_id
			 WHERE c.text LIKE '%' || ? || '%'
			 ORDER BY c.score DESC
			 LIMIT ?`, query, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("searching chunks: %w", err)
	}
	defer rows.Close()

	var hits []ChunkHit
	for rows.Next() {
		var h ChunkHit
		if err := rows.Scan(&h.RunID, &h.Persona, &h.Document,
			&h.SectionTitle, &h.Text, &h.Page, &h.Score); err != nil {
			return nil, fmt.Errorf("scanning chunk hit: %w", err)
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}
