// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// classify.go selects one of the entry grammars for a located segment.
package extract

import (
	"regexp"

	"github.com/pi-test-apps/refchecker-app/pkg/types"
)

var (
	keyedEntryRe = regexp.MustCompile(`(?m)^\s*@[A-Za-z]+\s*\{`)

	numberedEntryRe = regexp.MustCompile(`(?m)^\s*\[\d+\]\s+\S`)

	// authorYearEntryRe matches an entry line that opens with a
	// capitalized name and carries a year, either parenthesized or as a
	// period-delimited token ("... Penn. 2024a. Title ...").
	authorYearEntryRe = regexp.MustCompile(`(?m)^[A-Z][\p{L}'.-]+.*(?:\(\d{4}[a-z]?\)|(?:^|\s)\d{4}[a-z]?\.\s)`)

	// authorYearLabelRe matches bracket citation labels like
	// [Smith, 2020] or [Smith et al., 2019].
	authorYearLabelRe = regexp.MustCompile(`\[[A-Z][a-z]+(?:\s+et\s+al\.?)?,\s*\d{4}[a-z]?\]`)
)

// Classify inspects a bibliography segment and selects the entry grammar,
// in priority order: keyed-field records, numbered bracket lists, then
// author-year lists. The second result is false when no grammar matches;
// the caller falls back to the external extractor.
func Classify(segment types.Segment) (types.SourceFormat, bool) {
	if segment.Empty() {
		return "", false
	}
	switch {
	case keyedEntryRe.MatchString(segment.Text):
		return types.FormatKeyedFields, true
	case numberedEntryRe.MatchString(segment.Text):
		return types.FormatNumbered, true
	case authorYearEntryRe.MatchString(segment.Text) || authorYearLabelRe.MatchString(segment.Text):
		return types.FormatAuthorYear, true
	default:
		return "", false
	}
}
