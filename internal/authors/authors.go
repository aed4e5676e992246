// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package authors splits raw author fields into ordered, cleaned author
// tokens. It understands "and"-joined BibTeX lists, semicolon lists,
// comma-separated surname/initial lists, organizational authors, and the
// "et al." continuation marker.
package authors

import (
	"regexp"
	"strings"

	"github.com/pi-test-apps/refchecker-app/internal/normalize"
	"github.com/pi-test-apps/refchecker-app/pkg/types"
)

var (
	// honorificRe matches a leading standalone honorific. The word
	// boundary keeps given names like "Mrinmaya" intact.
	honorificRe = regexp.MustCompile(`^(?:Mr|Ms|Mrs|Dr|Prof|Professor|Sir)\.?\s+`)

	// spacedPeriodRe matches an initial followed by a stray space before
	// its period, as in "Y . Li".
	spacedPeriodRe = regexp.MustCompile(`\b([A-Z])\s+\.`)

	// initialsTokenRe matches a token made only of initials: "J", "J.",
	// "G. G", "D. B.", "A B".
	initialsTokenRe = regexp.MustCompile(`^(?:[A-Z]\.?\s*)+$`)

	// surnameTokenRe matches a bare surname word, including hyphenated
	// and apostrophe-bearing forms.
	surnameTokenRe = regexp.MustCompile(`^[A-Z][\p{L}'\x60-]*$`)

	// trailingInitialRe matches a final single-letter initial with its
	// period, which must keep the period when trailing dots are trimmed.
	trailingInitialRe = regexp.MustCompile(`(?:^|[\s.])[A-Z]\.$`)

	etAlRe = regexp.MustCompile(`(?i)^(?:and\s+)?(?:et\s+al\.?|others)$`)
)

// Clean canonicalizes one author name: markup and escaped accents are
// normalized, stray spaces before periods are repaired, asterisk footnote
// markers and leading honorifics are dropped, and a spurious trailing
// period is removed. A lone final initial such as "A." keeps its period.
func Clean(name string) string {
	name = normalize.StripCommands(name)
	name = normalize.Apostrophes(name)
	name = strings.ReplaceAll(name, "*", "")
	name = spacedPeriodRe.ReplaceAllString(name, "$1.")
	name = normalize.CollapseSpaces(name)
	name = honorificRe.ReplaceAllString(name, "")
	if strings.HasSuffix(name, ".") && !trailingInitialRe.MatchString(name) {
		name = strings.TrimSuffix(name, ".")
	}
	return strings.TrimSpace(name)
}

// Parse splits an author field into ordered author tokens. A trailing
// "et al" or "and others" (any case) becomes the canonical types.EtAl
// token, appended at most once and only in the final position.
func Parse(field string) []string {
	field = normalize.StripCommands(field)
	field = normalize.CollapseSpaces(field)
	if field == "" {
		return nil
	}

	var parts []string
	switch {
	case strings.Contains(field, ";"):
		parts = splitSemicolons(field)
	case containsAnd(field):
		parts = splitAnd(field)
	case strings.Contains(field, ","):
		parts = splitCommaList(field)
	default:
		parts = []string{field}
	}

	var out []string
	sawEtAl := false
	for _, p := range parts {
		p = strings.Trim(p, " ,")
		if p == "" {
			continue
		}
		if etAlRe.MatchString(p) {
			sawEtAl = true
			continue
		}
		out = append(out, Clean(p))
	}
	if sawEtAl && len(out) > 0 {
		out = append(out, types.EtAl)
	}
	return out
}

// IsOrganization reports whether a full author field names a single
// organizational author: a proper-noun phrase with no list separator and
// no comma, such as "Intel Corporation" or "OpenAI".
func IsOrganization(field string) bool {
	field = normalize.CollapseSpaces(field)
	if field == "" || strings.ContainsAny(field, ",;") || containsAnd(field) {
		return false
	}
	words := strings.Fields(field)
	for _, w := range words {
		r := rune(w[0])
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return len(words) >= 1
}

func containsAnd(s string) bool {
	return strings.Contains(s, " and ") || strings.Contains(s, " & ")
}

func splitSemicolons(field string) []string {
	raw := strings.Split(field, ";")
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		p = strings.TrimPrefix(p, "and ")
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func splitAnd(field string) []string {
	field = strings.ReplaceAll(field, " & ", " and ")
	raw := strings.Split(field, " and ")
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.Trim(strings.TrimSpace(p), ",")
		if p != "" {
			parts = append(parts, expandCommaGroups(p)...)
		}
	}
	return parts
}

// expandCommaGroups splits an "and"-joined part that itself carries a
// comma-separated run of full names, as in "A B, C D, and E F". Pairs in
// "Surname, Given" form stay intact: a one-word piece or a pure-initials
// piece keeps the whole part together.
func expandCommaGroups(part string) []string {
	if !strings.Contains(part, ",") {
		return []string{part}
	}
	pieces := strings.Split(part, ",")
	for i := range pieces {
		pieces[i] = strings.TrimSpace(pieces[i])
	}
	for _, p := range pieces {
		if p == "" || len(strings.Fields(p)) < 2 || initialsTokenRe.MatchString(p) {
			return []string{part}
		}
	}
	return pieces
}

// splitCommaList handles comma-separated lists where a surname and its
// initials (or given name) are themselves comma-separated, as in
// "Jiang, J, Xia, G. G, Carlton, D. B". Tokens that already carry an
// internal space ("A. Smith", "B. C. Jones") stand alone.
func splitCommaList(field string) []string {
	tokens := strings.Split(field, ",")
	for i := range tokens {
		tokens[i] = strings.TrimSpace(tokens[i])
	}

	var parts []string
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok == "" {
			continue
		}
		if etAlRe.MatchString(tok) {
			parts = append(parts, tok)
			continue
		}
		if surnameTokenRe.MatchString(tok) && i+1 < len(tokens) && isGivenPart(tokens[i+1]) {
			parts = append(parts, tok+", "+tokens[i+1])
			i++
			continue
		}
		parts = append(parts, tok)
	}
	return parts
}

// isGivenPart reports whether a token looks like the given-name side of a
// "Surname, Given" pair: pure initials ("J", "G. G") or a given name with
// an optional trailing initial ("David R", "John", "Marcy H").
func isGivenPart(tok string) bool {
	if tok == "" || etAlRe.MatchString(tok) {
		return false
	}
	if initialsTokenRe.MatchString(tok) {
		return true
	}
	words := strings.Fields(tok)
	if len(words) == 0 || len(words) > 3 {
		return false
	}
	// First word must be a capitalized given name, not a bare surname
	// starting its own pair; remaining words may be names or initials.
	for _, w := range words {
		if !surnameTokenRe.MatchString(w) && !initialsTokenRe.MatchString(w) {
			return false
		}
	}
	// A multi-word token such as "David R" is given-name-like; a single
	// capitalized word is ambiguous and treated as a given name only when
	// it ends the pairing ("Smith, John").
	return true
}

// Display renders an author token for human-readable messages:
// "Surname, Given" order is flipped to "Given Surname" and footnote
// asterisks are dropped.
func Display(name string) string {
	name = strings.ReplaceAll(name, "*", "")
	name = normalize.CollapseSpaces(name)
	if name == types.EtAl {
		return name
	}
	if i := strings.Index(name, ","); i >= 0 {
		surname := strings.TrimSpace(name[:i])
		given := strings.TrimSpace(name[i+1:])
		if surname != "" && given != "" {
			return given + " " + surname
		}
	}
	return name
}

// DisplayList renders a comma-joined author list for diagnostics.
func DisplayList(names []string) string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if d := Display(n); d != "" {
			out = append(out, d)
		}
	}
	return strings.Join(out, ", ")
}
