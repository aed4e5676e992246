// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns manuscript text into structured references. It
// locates the bibliography, classifies its grammar, segments it into
// entries, and parses each entry into a typed Reference.
package extract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pi-test-apps/refchecker-app/internal/normalize"
	"github.com/pi-test-apps/refchecker-app/pkg/types"
)

const resultsDir = "parsed"

// Parse runs the full pipeline over one manuscript: normalize, locate the
// bibliography, classify its grammar, segment, parse, deduplicate, score,
// and cross-check citations against the reference list.
func Parse(text string, cfg types.ParseConfig) *types.ParseResult {
	normalized := normalize.Text(text)

	result := &types.ParseResult{}
	result.Segment = Locate(normalized)
	if result.Segment.Empty() {
		result.Citations = ExtractCitations(normalized, result.Segment)
		result.Quality = types.QualityReport{Issues: []string{"no bibliography section found"}}
		return result
	}

	format, ok := Classify(result.Segment)
	if !ok {
		result.Citations = ExtractCitations(normalized, result.Segment)
		result.Quality = types.QualityReport{Issues: []string{"unrecognized bibliography format"}}
		return result
	}
	result.Format = format

	refs := parseSegment(result.Segment.Text, format, cfg)
	quality := AssessQuality(refs)

	// A batch that fails its quality gate is re-parsed under the other
	// line-based grammar; the better-scoring batch wins.
	if !valid(quality, cfg) {
		if alt, altFormat, ok := fallbackParse(result.Segment.Text, format, cfg); ok {
			if altQuality := AssessQuality(alt); altQuality.Score > quality.Score {
				refs, quality, result.Format = alt, altQuality, altFormat
			}
		}
	}

	result.References = Deduplicate(refs)
	result.Quality = quality
	result.Citations = ExtractCitations(normalized, result.Segment)
	result.CrossCheck = BuildCrossCheck(result.Citations, result.References)
	return result
}

// parseSegment applies the per-format entry parser to every segment.
func parseSegment(text string, format types.SourceFormat, cfg types.ParseConfig) []types.Reference {
	entries := SplitEntries(text, format, cfg)
	refs := make([]types.Reference, 0, len(entries))
	for _, entry := range entries {
		var ref types.Reference
		var ok bool
		switch format {
		case types.FormatKeyedFields:
			ref, ok = parseKeyedEntry(entry)
		case types.FormatNumbered:
			ref, ok = parseNumberedEntry(entry)
		case types.FormatAuthorYear:
			ref, ok = parseAuthorYearEntry(entry)
		}
		if ok {
			refs = append(refs, ref)
		}
	}
	return refs
}

// fallbackParse picks the alternative grammar for a failed batch. Keyed
// entries have no plausible alternative; the two line-based grammars fall
// back to each other.
func fallbackParse(text string, format types.SourceFormat, cfg types.ParseConfig) ([]types.Reference, types.SourceFormat, bool) {
	var alt types.SourceFormat
	switch format {
	case types.FormatNumbered:
		alt = types.FormatAuthorYear
	case types.FormatAuthorYear:
		alt = types.FormatNumbered
	default:
		return nil, "", false
	}
	return parseSegment(text, alt, cfg), alt, true
}

func valid(q types.QualityReport, cfg types.ParseConfig) bool {
	if cfg.MinQualityScore > 0 {
		return q.Score > cfg.MinQualityScore
	}
	return q.Valid()
}

// BatchSummary holds counts from a batch parse run.
type BatchSummary struct {
	Parsed  int
	Skipped int
	Failed  int
}

// Total returns the number of manuscripts processed.
func (s BatchSummary) Total() int {
	return s.Parsed + s.Skipped + s.Failed
}

// HasFailures reports whether any manuscripts failed.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// ParseAll processes every manuscript file in inDir and writes one YAML
// result per manuscript to outDir/parsed/. Unchanged manuscripts are
// skipped, changed ones re-parsed.
func ParseAll(inDir, outDir string, cfg types.ParseConfig, w io.Writer) (BatchSummary, error) {
	resultDir := filepath.Join(outDir, resultsDir)
	if err := os.MkdirAll(resultDir, 0o755); err != nil {
		return BatchSummary{}, fmt.Errorf("creating output directory: %w", err)
	}

	entries, err := os.ReadDir(inDir)
	if err != nil {
		return BatchSummary{}, fmt.Errorf("reading manuscript directory %s: %w", inDir, err)
	}

	var summary BatchSummary
	for _, entry := range entries {
		if entry.IsDir() || !manuscriptFile(entry.Name()) {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		inPath := filepath.Join(inDir, entry.Name())
		outPath := filepath.Join(resultDir, id+"-refs.yaml")

		changed, err := hasChanged(inPath, outPath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", id, err)
			summary.Failed++
			continue
		}
		if !changed {
			fmt.Fprintf(w, "skipped %s\n", id)
			summary.Skipped++
			continue
		}

		content, err := os.ReadFile(inPath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", id, err)
			summary.Failed++
			continue
		}

		result := Parse(string(content), cfg)
		if err := writeResult(outPath, result); err != nil {
			fmt.Fprintf(w, "failed  %s: write error: %v\n", id, err)
			summary.Failed++
			continue
		}

		fmt.Fprintf(w, "parsed  %s (%d references, %d citations)\n",
			id, len(result.References), len(result.Citations))
		summary.Parsed++
	}

	return summary, nil
}

func manuscriptFile(name string) bool {
	switch filepath.Ext(name) {
	case ".md", ".txt", ".tex":
		return true
	}
	return false
}

// hasChanged reports whether the manuscript is newer than its result file.
func hasChanged(inPath, outPath string) (bool, error) {
	inInfo, err := os.Stat(inPath)
	if err != nil {
		return false, fmt.Errorf("stat manuscript %s: %w", inPath, err)
	}

	outInfo, err := os.Stat(outPath)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat result %s: %w", outPath, err)
	}

	return inInfo.ModTime().After(outInfo.ModTime()), nil
}

// writeResult marshals the ParseResult to a YAML file.
func writeResult(path string, result *types.ParseResult) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
