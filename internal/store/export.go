// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// ExportEntry holds one reference with its manuscript of origin.
type ExportEntry struct {
	ManuscriptID string   `json:"manuscript_id" yaml:"manuscript_id"`
	EntryNumber  int      `json:"entry_number,omitempty" yaml:"entry_number,omitempty"`
	CitationKey  string   `json:"citation_key,omitempty" yaml:"citation_key,omitempty"`
	Title        string   `json:"title" yaml:"title"`
	Authors      []string `json:"authors" yaml:"authors"`
	Year         *int     `json:"year,omitempty" yaml:"year,omitempty"`
	Venue        string   `json:"venue,omitempty" yaml:"venue,omitempty"`
	DOI          string   `json:"doi,omitempty" yaml:"doi,omitempty"`
	URL          string   `json:"url,omitempty" yaml:"url,omitempty"`
	ArxivID      string   `json:"arxiv_id,omitempty" yaml:"arxiv_id,omitempty"`
	Type         string   `json:"type" yaml:"type"`
}

const exportLimit = 100000

// ExportYAML writes the stored references to dataDir/index/export.yaml.
// It supports the same filters as Retrieve.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) error {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return err
	}

	path := filepath.Join(s.dataDir, indexDir, "export.yaml")
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the stored references to dataDir/index/export.json.
// It supports the same filters as Retrieve.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) error {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return err
	}

	path := filepath.Join(s.dataDir, indexDir, "export.json")
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) exportEntries(ctx context.Context, opts QueryOptions) ([]ExportEntry, error) {
	// An unlimited export means everything, not the Retrieve default; a
	// caller-supplied limit still wins.
	if opts.MaxResults <= 0 {
		opts.MaxResults = exportLimit
	}
	results, err := s.Retrieve(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	entries := make([]ExportEntry, len(results))
	for i, r := range results {
		entries[i] = ExportEntry{
			ManuscriptID: r.ManuscriptID,
			EntryNumber:  r.EntryNumber,
			CitationKey:  r.CitationKey,
			Title:        r.Title,
			Authors:      r.Authors,
			Year:         r.Year,
			Venue:        r.Venue,
			DOI:          r.DOI,
			URL:          r.URL,
			ArxivID:      r.ArxivID,
			Type:         string(r.Type),
		}
	}

	return entries, nil
}
