// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists parsed reference lists and builds a retrieval
// index over them.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pi-test-apps/refchecker-app/pkg/types"
)

const (
	parsedDir = "parsed"
	indexDir  = "index"
	dbFile    = "runs.db"
)

// Store manages the parse-run SQLite database.
type Store struct {
	db         *sql.DB
	dataDir    string
	maxResults int
}

// NewStore opens or creates the SQLite database at dataDir/index/runs.db,
// creating the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.DataDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		dataDir:    cfg.DataDir,
		maxResults: maxResults,
	}

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
		`CREATE TABLE IF NOT EXISTS manuscripts (
			id TEXT PRIMARY KEY,
			format TEXT,
			quality_score REAL,
			citation_count INTEGER,
			reference_count INTEGER,
			parsed_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS refs (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			manuscript_id TEXT NOT NULL REFERENCES manuscripts(id),
			entry_number INTEGER,
			citation_key TEXT,
			title TEXT,
			authors TEXT,
			year INTEGER,
			venue TEXT,
			doi TEXT,
			url TEXT,
			arxiv_id TEXT,
			raw_text TEXT,
			source_format TEXT,
			ref_type TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_refs_manuscript_id ON refs(manuscript_id)`,
		`CREATE INDEX IF NOT EXISTS idx_refs_doi ON refs(doi)`,
		`CREATE TABLE IF NOT EXISTS indexing_status (
			manuscript_id TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='refs_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE refs_fts USING fts5(title, authors, venue, content=refs, content_rowid=rowid)`,
			`CREATE TRIGGER refs_ai AFTER INSERT ON refs BEGIN
				INSERT INTO refs_fts(rowid, title, authors, venue) VALUES (new.rowid, new.title, new.authors, new.venue);
			END`,
			`CREATE TRIGGER refs_ad AFTER DELETE ON refs BEGIN
				INSERT INTO refs_fts(refs_fts, rowid, title, authors, venue) VALUES('delete', old.rowid, old.title, old.authors, old.venue);
			END`,
			`CREATE TRIGGER refs_au AFTER UPDATE ON refs BEGIN
				INSERT INTO refs_fts(refs_fts, rowid, title, authors, venue) VALUES('delete', old.rowid, old.title, old.authors, old.venue);
				INSERT INTO refs_fts(rowid, title, authors, venue) VALUES (new.rowid, new.title, new.authors, new.venue);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from an indexing run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of manuscripts processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest reads parse result YAML files from dataDir/parsed/ and populates
// the database. It detects new, changed, and unchanged files for
// incremental updates. On success it writes export.yaml.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	resultDir := filepath.Join(s.dataDir, parsedDir)

	entries, err := os.ReadDir(resultDir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading results directory %s: %w", resultDir, err)
	}

	var summary IngestSummary

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "-refs.yaml") {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		id := strings.TrimSuffix(entry.Name(), "-refs.yaml")
		filePath := filepath.Join(resultDir, entry.Name())

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", id, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM indexing_status WHERE manuscript_id = ?`, id,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", id)
			summary.Skipped++
			continue
		}

		isUpdate := err == nil

		data, err := os.ReadFile(filePath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", id, err)
			summary.Failed++
			continue
		}

		var result types.ParseResult
		if err := yaml.Unmarshal(data, &result); err != nil {
			fmt.Fprintf(w, "failed  %s: parse error: %v\n", id, err)
			summary.Failed++
			continue
		}

		if err := s.SaveResult(ctx, id, &result, modTime, isUpdate); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", id, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d references)\n", id, len(result.References))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexing %s (%d references)\n", id, len(result.References))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	if summary.Indexed > 0 || summary.Updated > 0 {
		if err := s.ExportYAML(ctx, QueryOptions{}); err != nil {
			fmt.Fprintf(w, "warning: export.yaml write failed: %v\n", err)
		}
	}

	return summary, nil
}

// SaveResult writes one manuscript's parse result into the database,
// replacing any previous run for the same manuscript.
func (s *Store) SaveResult(ctx context.Context, id string, result *types.ParseResult, modTime string, isUpdate bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if isUpdate {
		if _, err := tx.ExecContext(ctx, `DELETE FROM refs WHERE manuscript_id = ?`, id); err != nil {
			return fmt.Errorf("deleting old references: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO manuscripts (id, format, quality_score, citation_count, reference_count, parsed_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			format=excluded.format, quality_score=excluded.quality_score,
			citation_count=excluded.citation_count,
			reference_count=excluded.reference_count, parsed_at=excluded.parsed_at`,
		id, string(result.Format), result.Quality.Score,
		len(result.Citations), len(result.References),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting manuscript: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO refs (manuscript_id, entry_number, citation_key, title, authors,
			year, venue, doi, url, arxiv_id, raw_text, source_format, ref_type)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i := range result.References {
		ref := &result.References[i]
		authorsJSON, _ := json.Marshal(ref.Authors)
		var year any
		if ref.Year != nil {
			year = *ref.Year
		}
		_, err := stmt.ExecContext(ctx,
			id, ref.EntryNumber, ref.CitationKey, ref.Title, string(authorsJSON),
			year, ref.Venue, ref.DOI, ref.URL, ref.ArxivID,
			ref.RawText, string(ref.SourceFormat), string(ref.Type),
		)
		if err != nil {
			return fmt.Errorf("inserting reference %q: %w", ref.Title, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO indexing_status (manuscript_id, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(manuscript_id) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		id, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating indexing status: %w", err)
	}

	return tx.Commit()
}
