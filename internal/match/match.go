// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match provides the pairwise comparison primitives shared by the
// deduplicator and the downstream verification layer: author name
// equality, title similarity, venue equivalence, year difference, and
// identifier equivalence. All comparators are pure; name matching is
// symmetric and returns a tri-state verdict so callers can tell "known
// different" from "insufficient information".
package match

import (
	"regexp"
	"strings"

	"github.com/pi-test-apps/refchecker-app/internal/authors"
	"github.com/pi-test-apps/refchecker-app/internal/normalize"
)

// Verdict is the tri-state result of a comparison.
type Verdict int

const (
	Inconclusive Verdict = iota
	Match
	Mismatch
)

func (v Verdict) String() string {
	switch v {
	case Match:
		return "match"
	case Mismatch:
		return "mismatch"
	default:
		return "inconclusive"
	}
}

// consecutiveInitialsRe matches a run of 2-4 capital letters written
// without separators, as in "GV Abramkin".
var consecutiveInitialsRe = regexp.MustCompile(`^[A-Z]{2,4}$`)

// nonNameRe drops punctuation from name tokens; apostrophes are removed
// so "O'Connor" and "OConnor" compare equal.
var nonNameRe = regexp.MustCompile(`[^a-z0-9-]`)

// nameTokens splits a display-ordered name into lowercase tokens,
// expanding consecutive initials ("GV" becomes "g", "v") and dropping
// periods. Detection of initial runs happens before case folding.
func nameTokens(name string) []string {
	name = authors.Clean(name)
	name = authors.Display(name)
	var toks []string
	for _, w := range strings.Fields(name) {
		bare := strings.ReplaceAll(w, ".", "")
		if consecutiveInitialsRe.MatchString(bare) {
			for _, r := range bare {
				toks = append(toks, strings.ToLower(string(r)))
			}
			continue
		}
		t := strings.ToLower(normalize.Diacritics(bare))
		t = nonNameRe.ReplaceAllString(t, "")
		if t != "" {
			toks = append(toks, t)
		}
	}
	return toks
}

// surnameKey folds a surname for comparison: diacritics and apostrophes
// removed, lowercased. "Wawrzy'nski", "Wawrzyński" and "Wawrzynski" all
// produce the same key.
func surnameKey(s string) string {
	s = strings.ToLower(normalize.Diacritics(s))
	return strings.NewReplacer("'", "", "-", " ").Replace(s)
}

// SurnameSimilar reports whether two surnames denote the same family
// name modulo diacritic and apostrophe variation.
func SurnameSimilar(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return surnameKey(a) == surnameKey(b)
}

// tokenMatches reports whether two given-name tokens agree: equal, or
// one is an initial of the other.
func tokenMatches(a, b string) bool {
	if a == b {
		return true
	}
	if len(a) == 1 {
		return strings.HasPrefix(b, a)
	}
	if len(b) == 1 {
		return strings.HasPrefix(a, b)
	}
	return false
}

// Names compares two author names. It tolerates initials versus full
// given names, "Surname, Given" versus "Given Surname" ordering, omitted
// middle names, consecutive versus spaced initials, and diacritic or
// apostrophe surname variants. The comparison is symmetric.
func Names(a, b string) Verdict {
	ta, tb := nameTokens(a), nameTokens(b)
	if len(ta) == 0 || len(tb) == 0 {
		return Inconclusive
	}

	// Single-token names compare as bare surnames.
	if len(ta) == 1 && len(tb) == 1 {
		if ta[0] == tb[0] {
			return Match
		}
		return Mismatch
	}
	if len(ta) == 1 || len(tb) == 1 {
		// A lone surname matches a full name bearing it.
		lone, full := ta, tb
		if len(tb) == 1 {
			lone, full = tb, ta
		}
		if len(lone[0]) > 1 && lone[0] == full[len(full)-1] {
			return Match
		}
		return Mismatch
	}

	if !surnamesAgree(ta[len(ta)-1], tb[len(tb)-1]) {
		return Mismatch
	}
	if givenNamesAgree(ta[:len(ta)-1], tb[:len(tb)-1]) {
		return Match
	}
	return Mismatch
}

func surnamesAgree(a, b string) bool {
	return a == b
}

// givenNamesAgree aligns two given-name sequences, allowing either side
// to omit middle names or initials. The first given name must agree;
// later tokens may be skipped only on the longer side.
func givenNamesAgree(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return true
	}
	if !tokenMatches(a[0], b[0]) {
		return false
	}
	i, j := 1, 1
	for i < len(a) && j < len(b) {
		if tokenMatches(a[i], b[j]) {
			i++
			j++
			continue
		}
		// Skip an unmatched middle token on the longer remaining side.
		if len(a)-i > len(b)-j {
			i++
		} else if len(b)-j > len(a)-i {
			j++
		} else {
			return false
		}
	}
	return true
}

// NamesEqual is the boolean convenience form of Names.
func NamesEqual(a, b string) bool { return Names(a, b) == Match }

// TitleSimilarity scores two titles in [0,1] using token overlap after
// normalization. Trailing years and publication-type markers are ignored.
func TitleSimilarity(a, b string) float64 {
	ka, kb := normalize.TitleKey(a), normalize.TitleKey(b)
	if ka == "" || kb == "" {
		return 0
	}
	if ka == kb {
		return 1
	}
	ta, tb := titleTokens(ka), titleTokens(kb)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	counts := make(map[string]int, len(ta))
	for _, t := range ta {
		counts[t]++
	}
	common := 0
	for _, t := range tb {
		if counts[t] > 0 {
			counts[t]--
			common++
		}
	}
	return 2 * float64(common) / float64(len(ta)+len(tb))
}

var titleTokenRe = regexp.MustCompile(`[a-z0-9]+`)

func titleTokens(s string) []string {
	return titleTokenRe.FindAllString(s, -1)
}

// Titles compares two titles, treating a similarity of 0.9 or higher as
// the same work.
func Titles(a, b string) Verdict {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return Inconclusive
	}
	if TitleSimilarity(a, b) >= 0.9 {
		return Match
	}
	return Mismatch
}

// Venues compares two venue strings after normalization. Abbreviations
// expand to canonical full names; one venue containing the other counts
// as equivalent.
func Venues(a, b string) Verdict {
	ka, kb := normalize.VenueKey(a), normalize.VenueKey(b)
	if ka == "" || kb == "" {
		return Inconclusive
	}
	if ka == kb {
		return Match
	}
	if len(ka) >= 4 && len(kb) >= 4 &&
		(strings.Contains(ka, kb) || strings.Contains(kb, ka)) {
		return Match
	}
	return Mismatch
}

// Years compares two publication years. Any difference is a mismatch,
// never silently ignored; a missing year on either side is inconclusive.
func Years(cited, correct *int) Verdict {
	if cited == nil || correct == nil {
		return Inconclusive
	}
	if *cited == *correct {
		return Match
	}
	return Mismatch
}

// DOIs compares two identifiers after normalization: doi:/URL prefix
// strip, case fold, trailing punctuation, fragment and query suffixes.
func DOIs(a, b string) Verdict {
	na, nb := normalize.DOI(a), normalize.DOI(b)
	if na == "" || nb == "" {
		return Inconclusive
	}
	if na == nb {
		return Match
	}
	return Mismatch
}

// DOIsEqual is the boolean convenience form of DOIs.
func DOIsEqual(a, b string) bool { return DOIs(a, b) == Match }

// URLs compares two URLs after cleaning markdown wrappers and trailing
// punctuation.
func URLs(a, b string) Verdict {
	na := strings.TrimRight(normalize.URL(a), "/.")
	nb := strings.TrimRight(normalize.URL(b), "/.")
	if na == "" || nb == "" {
		return Inconclusive
	}
	if strings.EqualFold(na, nb) {
		return Match
	}
	return Mismatch
}
