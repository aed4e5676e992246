// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// segment.go splits a bibliography segment into one raw string per entry.
// Line-based formats run through an explicit {seeking, accumulating}
// state machine; keyed-field records follow brace and quote nesting
// depth instead of line boundaries.
package extract

import (
	"regexp"
	"strings"

	"github.com/pi-test-apps/refchecker-app/pkg/types"
)

var (
	// numberedBoundaryRe anchors a new numbered entry at start of line.
	numberedBoundaryRe = regexp.MustCompile(`^\s*\[\d+\]\s+`)

	// authorYearBoundaryRe anchors a new author-year entry: one or two
	// capitalized name words followed by a comma or "and", starting their
	// own line. Inline bracket citations inside running prose never match
	// because they do not start a line.
	authorYearBoundaryRe = regexp.MustCompile(`^(?:[A-Z][\p{L}'.-]+\s+){0,2}[A-Z][\p{L}'.-]+(?:,\s|\s+and\s|\s+et\s+al)`)

	// syllablePrefixes are closed-class prefixes: a line-break hyphen
	// after one of these joins the fragments. Everything else keeps its
	// hyphen, biasing ambiguous breaks toward preservation.
	syllablePrefixes = map[string]bool{
		"con": true, "com": true, "de": true, "dis": true, "ex": true,
		"in": true, "inter": true, "pre": true, "pro": true, "re": true,
		"sub": true, "trans": true, "under": true, "over": true,
	}

	// syllableEndings are word-final syllable fragments commonly produced
	// by justified line breaks mid-word.
	syllableEndingRe = regexp.MustCompile(`(?:[bcdfghjklmnpqrstvwxz][aeiouy]|rea|classi|infor|lan|pro)$`)

	trailingHyphenRe = regexp.MustCompile(`(\p{L}+)-$`)
)

type segmenterState int

const (
	seeking segmenterState = iota
	accumulating
)

// SplitEntries splits the segment text into raw per-entry strings for the
// given line-based format. Continuation lines are concatenated into a
// single logical entry; blank lines flush the current entry. The config's
// KeepHyphens setting controls how ambiguous line-break hyphens resolve.
func SplitEntries(text string, format types.SourceFormat, cfg types.ParseConfig) []string {
	if format == types.FormatKeyedFields {
		return splitKeyedEntries(text)
	}

	boundary := numberedBoundaryRe
	if format == types.FormatAuthorYear {
		boundary = authorYearBoundaryRe
	}

	var entries []string
	var current strings.Builder
	state := seeking

	flush := func() {
		entry := strings.TrimSpace(current.String())
		if entry != "" {
			entries = append(entries, entry)
		}
		current.Reset()
		state = seeking
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}

		if boundary.MatchString(line) && state == accumulating {
			// An author-year name list can itself wrap across lines, so a
			// name-shaped line only opens a new entry once the previous one
			// reads as complete.
			if format != types.FormatAuthorYear || entryComplete(current.String()) {
				flush()
			}
		}
		if state == seeking && format == types.FormatNumbered && !boundary.MatchString(line) {
			// Prose before the first numbered entry is not an entry.
			continue
		}
		state = accumulating
		appendLine(&current, trimmed, cfg.KeepHyphens)
	}
	flush()
	return entries
}

// entryComplete reports whether accumulated text reads as a finished
// entry. A name list wrapped mid-stream ends with a comma or "and", while
// finished entries end with sentence punctuation or a page range.
func entryComplete(accumulated string) bool {
	s := strings.TrimSpace(accumulated)
	if s == "" {
		return false
	}
	switch c := s[len(s)-1]; {
	case c == '.' || c == ')' || c == ']':
		return true
	case c >= '0' && c <= '9':
		return true
	}
	return false
}

// appendLine joins a continuation line onto the accumulated entry,
// resolving a trailing line-break hyphen: syllable breaks are removed and
// the fragments joined. Ambiguous hyphens are preserved when keepHyphens
// is set and joined away otherwise.
func appendLine(current *strings.Builder, line string, keepHyphens bool) {
	existing := current.String()
	if existing == "" {
		current.WriteString(line)
		return
	}
	if m := trailingHyphenRe.FindStringSubmatch(existing); m != nil && startsLower(line) {
		if isSyllableBreak(m[1]) || !keepHyphens {
			current.Reset()
			current.WriteString(existing[:len(existing)-1])
			current.WriteString(line)
			return
		}
		// Keep the hyphen but join without a space.
		current.WriteString(line)
		return
	}
	current.WriteString(" ")
	current.WriteString(line)
}

// isSyllableBreak decides whether the fragment before a line-break hyphen
// was cut mid-word. Closed-class prefixes and common word-final syllable
// shapes join; anything ambiguous keeps its hyphen.
func isSyllableBreak(fragment string) bool {
	lower := strings.ToLower(fragment)
	if syllablePrefixes[lower] {
		return true
	}
	return syllableEndingRe.MatchString(lower)
}

func startsLower(line string) bool {
	if line == "" {
		return false
	}
	r := rune(line[0])
	return r >= 'a' && r <= 'z'
}

// splitKeyedEntries segments keyed-field records by brace and quote
// nesting depth. @string macro definitions are recognized and excluded
// from the entry list; @comment and @preamble blocks are skipped too.
func splitKeyedEntries(text string) []string {
	var entries []string
	i := 0
	for i < len(text) {
		at := strings.IndexByte(text[i:], '@')
		if at < 0 {
			break
		}
		start := i + at
		end, ok := scanBalanced(text, start)
		if !ok {
			break
		}
		entry := strings.TrimSpace(text[start:end])
		lower := strings.ToLower(entry)
		if !strings.HasPrefix(lower, "@string") &&
			!strings.HasPrefix(lower, "@comment") &&
			!strings.HasPrefix(lower, "@preamble") {
			entries = append(entries, entry)
		}
		i = end
	}
	return entries
}

// scanBalanced walks from the @ sign past the matching closing brace,
// respecting nested braces and double-quoted values.
func scanBalanced(text string, start int) (int, bool) {
	open := strings.IndexByte(text[start:], '{')
	if open < 0 {
		return 0, false
	}
	depth := 0
	inQuote := false
	for i := start + open; i < len(text); i++ {
		switch text[i] {
		case '"':
			if depth == 1 {
				inQuote = !inQuote
			}
		case '{':
			if !inQuote {
				depth++
			}
		case '}':
			if !inQuote {
				depth--
				if depth == 0 {
					return i + 1, true
				}
			}
		}
	}
	return 0, false
}
