// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pi-test-apps/refchecker-app/pkg/types"
)

// QueryOptions holds parameters for reference queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over title, authors, venue.
	Query string

	// ManuscriptID filters by manuscript.
	ManuscriptID string

	// Format filters by the grammar that parsed the entry.
	Format types.SourceFormat

	// Type filters by reference type.
	Type types.ReferenceType

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.ManuscriptID == "" && q.Format == "" && q.Type == ""
}

// QueryResult is a Reference with its manuscript of origin.
type QueryResult struct {
	types.Reference
	ManuscriptID string `json:"manuscript_id" yaml:"manuscript_id"`
}

// Retrieve queries stored references with optional full-text search and
// structured filters. Full-text results are ranked by relevance,
// structured-only results sorted by manuscript and entry number.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT r.manuscript_id, r.entry_number, r.citation_key, r.title,
				r.authors, r.year, r.venue, r.doi, r.url, r.arxiv_id,
				r.raw_text, r.source_format, r.ref_type
			FROM refs_fts
			JOIN refs r ON r.rowid = refs_fts.rowid
			WHERE refs_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT r.manuscript_id, r.entry_number, r.citation_key, r.title,
				r.authors, r.year, r.venue, r.doi, r.url, r.arxiv_id,
				r.raw_text, r.source_format, r.ref_type
			FROM refs r
			WHERE 1=1`)
	}

	if opts.ManuscriptID != "" {
		qb.WriteString(` AND r.manuscript_id = ?`)
		args = append(args, opts.ManuscriptID)
	}

	if opts.Format != "" {
		qb.WriteString(` AND r.source_format = ?`)
		args = append(args, string(opts.Format))
	}

	if opts.Type != "" {
		qb.WriteString(` AND r.ref_type = ?`)
		args = append(args, string(opts.Type))
	}

	if useFTS {
		qb.WriteString(` ORDER BY refs_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY r.manuscript_id, r.entry_number`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying references: %w", err)
	}
	defer rows.Close()
	return scanResults(rows)
}

// LookupByDOI returns every stored reference carrying the given DOI.
func (s *Store) LookupByDOI(ctx context.Context, doi string) ([]QueryResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.manuscript_id, r.entry_number, r.citation_key, r.title,
			r.authors, r.year, r.venue, r.doi, r.url, r.arxiv_id,
			r.raw_text, r.source_format, r.ref_type
		FROM refs r WHERE r.doi = ? ORDER BY r.manuscript_id, r.entry_number`, doi)
	if err != nil {
		return nil, fmt.Errorf("querying by doi: %w", err)
	}
	defer rows.Close()
	return scanResults(rows)
}

func scanResults(rows *sql.Rows) ([]QueryResult, error) {
	var results []QueryResult
	for rows.Next() {
		var (
			qr          QueryResult
			authorsJSON sql.NullString
			year        sql.NullInt64
			format      string
			refType     string
		)
		if err := rows.Scan(
			&qr.ManuscriptID, &qr.EntryNumber, &qr.CitationKey, &qr.Title,
			&authorsJSON, &year, &qr.Venue, &qr.DOI, &qr.URL, &qr.ArxivID,
			&qr.RawText, &format, &refType,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if authorsJSON.Valid && authorsJSON.String != "" {
			if err := json.Unmarshal([]byte(authorsJSON.String), &qr.Authors); err != nil {
				return nil, fmt.Errorf("decoding authors for %s entry %d: %w",
					qr.ManuscriptID, qr.EntryNumber, err)
			}
		}
		if year.Valid {
			qr.Year = types.YearOf(int(year.Int64))
		}
		qr.SourceFormat = types.SourceFormat(format)
		qr.Type = types.ReferenceType(refType)
		results = append(results, qr)
	}
	return results, rows.Err()
}
