// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns raw manuscript text into structured reference
// records: it locates the bibliography, classifies its grammar, splits it
// into entries, parses each entry, and scores the result.
// locate.go finds the start and end offsets of the reference list.
package extract

import (
	"regexp"
	"strings"

	"github.com/pi-test-apps/refchecker-app/pkg/types"
)

// bibliographyHeadings are the whole-line headings (case-insensitive)
// that open a reference list.
var bibliographyHeadings = map[string]bool{
	"references":     true,
	"reference list": true,
	"bibliography":   true,
}

var (
	// appendixHeadingRe matches a top-level appendix heading: a single
	// capital letter followed by a capitalized multi-word phrase, e.g.
	// "C Evaluation Details" or "A LRE Dataset".
	appendixHeadingRe = regexp.MustCompile(`^[A-Z]\s+(?:[A-Z][a-z]+|[A-Z]{2,})(?:\s+\S+)*$`)

	// entryStartRe matches a reference-shaped line: a bracketed index or
	// an author-year entry opening.
	entryStartRe = regexp.MustCompile(`^\s*(?:\[\d+\]|[A-Z][\p{L}'.-]+,\s)`)

	// tableLineRe matches column-header or template junk that sometimes
	// trails a reference list before the appendix heading proper.
	tableLineRe = regexp.MustCompile(`\s#\s|\{\}`)

	sentenceEndRe = regexp.MustCompile(`[.,;:]$`)
)

// stripHeadingMarkup removes Markdown heading prefixes and a trailing
// colon so "## References:" still matches.
func stripHeadingMarkup(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "#")
	line = strings.TrimSuffix(strings.TrimSpace(line), ":")
	return strings.TrimSpace(line)
}

// isBibliographyHeading reports whether the whole line is a reference-list
// heading. Mentions of "references" inside running text do not match.
func isBibliographyHeading(line string) bool {
	return bibliographyHeadings[strings.ToLower(stripHeadingMarkup(line))]
}

// isAppendixHeading reports whether the line at index i ends the
// bibliography. The candidate must be heading-shaped (short, title-cased,
// no trailing sentence punctuation) and be immediately followed by prose
// rather than another reference-shaped line, so a reference ending
// mid-sentence can never truncate the segment.
func isAppendixHeading(lines []string, i int) bool {
	line := strings.TrimSpace(lines[i])
	if line == "" || len(line) > 60 {
		return false
	}
	if sentenceEndRe.MatchString(line) {
		return false
	}
	if !appendixHeadingRe.MatchString(line) {
		return false
	}
	if entryStartRe.MatchString(line) {
		return false
	}
	// Peek at the next non-empty line.
	for j := i + 1; j < len(lines); j++ {
		next := strings.TrimSpace(lines[j])
		if next == "" {
			continue
		}
		return !entryStartRe.MatchString(next)
	}
	return true
}

// Locate finds the bibliography segment inside full manuscript text. Only
// the last matching heading is used, because a document may mention
// "References" earlier in running prose. When no heading is found the
// returned segment is empty and the caller signals "no bibliography".
func Locate(text string) types.Segment {
	lines := strings.Split(text, "\n")

	headingIdx := -1
	for i, line := range lines {
		if isBibliographyHeading(line) {
			headingIdx = i
		}
	}
	if headingIdx < 0 {
		return types.Segment{}
	}

	endIdx := len(lines)
	for i := headingIdx + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if isAppendixHeading(lines, i) {
			endIdx = i
			break
		}
		// Table junk starting its own block also ends the list.
		if trimmed != "" && tableLineRe.MatchString(trimmed) && startsBlock(lines, i) {
			endIdx = i
			break
		}
	}

	start := 0
	for i := 0; i <= headingIdx; i++ {
		start += len(lines[i]) + 1
	}
	if start > len(text) {
		start = len(text)
	}
	end := start
	for i := headingIdx + 1; i < endIdx; i++ {
		end += len(lines[i])
		if i < len(lines)-1 {
			end++ // newline
		}
	}
	if end > len(text) {
		end = len(text)
	}

	segment := strings.TrimRight(text[start:end], " \t\n")
	return types.Segment{Start: start, End: start + len(segment), Text: segment}
}

// startsBlock reports whether line i opens a new blank-line-separated
// block, so inline junk inside an entry never ends the segment.
func startsBlock(lines []string, i int) bool {
	for j := i - 1; j >= 0; j-- {
		prev := strings.TrimSpace(lines[j])
		if prev == "" {
			return true
		}
		return false
	}
	return true
}
