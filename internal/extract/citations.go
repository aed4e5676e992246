// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pi-test-apps/refchecker-app/pkg/types"
)

var (
	// parentheticalRe matches "(Smith, 2020)", "(Smith & Jones, 2020)",
	// and "(Smith et al., 2020a)".
	parentheticalRe = regexp.MustCompile(`\(([A-Z][A-Za-z'\-\s&.]+?),\s*(\d{4}[a-z]?)\)`)

	// narrativeRe matches "Smith (2020)", "Smith & Jones (2020)", and
	// "Smith et al. (2020a)".
	narrativeRe = regexp.MustCompile(`\b([A-Z][A-Za-z'\-]+(?:\s+et al\.?|(?:\s*&\s*|\s+)[A-Z][A-Za-z'\-]+)?)\s*\(\s*(\d{4}[a-z]?)\s*\)`)

	// latexCiteRe matches \cite, \citep, \citet and friends with one or
	// more comma-separated keys.
	latexCiteRe = regexp.MustCompile(`\\[Cc]ite[a-z]*\*?(?:\[[^\]]*\])*\{([^}]*)\}`)

	// bracketCiteRe matches numeric citations "[3]" and lists "[1,2,5]".
	bracketCiteRe = regexp.MustCompile(`\[(\d+(?:\s*[,\x{2013}-]\s*\d+)*)\]`)

	keyCleanRe    = regexp.MustCompile(`[^a-z0-9]+`)
	keyCollapseRe = regexp.MustCompile(`_+`)
)

// ExtractCitations returns the in-text citations of the manuscript body,
// unique by key, in order of first occurrence. The bibliography segment is
// excluded so reference entries do not count as citations of themselves.
func ExtractCitations(text string, bib types.Segment) []types.Citation {
	body := text
	if !bib.Empty() && bib.Start <= len(body) {
		body = body[:bib.Start]
	}

	seen := make(map[string]bool)
	var out []types.Citation
	add := func(key, raw string) {
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, types.Citation{Key: key, Raw: raw})
	}

	for _, m := range latexCiteRe.FindAllStringSubmatch(body, -1) {
		for _, key := range strings.Split(m[1], ",") {
			add(strings.TrimSpace(key), m[0])
		}
	}
	for _, m := range parentheticalRe.FindAllStringSubmatch(body, -1) {
		add(CitationKey(m[1], m[2]), m[0])
	}
	for _, m := range narrativeRe.FindAllStringSubmatch(body, -1) {
		add(CitationKey(m[1], m[2]), m[0])
	}
	for _, m := range bracketCiteRe.FindAllStringSubmatch(body, -1) {
		for _, n := range splitNumberList(m[1]) {
			add("ref_"+strconv.Itoa(n), m[0])
		}
	}
	return out
}

// CitationKey builds the normalized key for an author-year citation:
// lowercase, non-alphanumerics collapsed to underscores, "et al" folded to
// an _et_al suffix on the first author, "&" joining both surnames.
func CitationKey(authors, year string) string {
	year = strings.ToLower(strings.TrimSpace(year))
	lower := strings.ToLower(authors)

	var authorPart string
	switch {
	case strings.Contains(lower, "et al"):
		first := strings.Fields(authors)[0]
		authorPart = normalizeKeyPart(first) + "_et_al"
	case strings.Contains(authors, "&"):
		var parts []string
		for _, p := range strings.Split(authors, "&") {
			if n := normalizeKeyPart(p); n != "" {
				parts = append(parts, n)
			}
		}
		authorPart = strings.Join(parts, "_")
	default:
		authorPart = normalizeKeyPart(authors)
	}
	return authorPart + "_" + year
}

func normalizeKeyPart(s string) string {
	cleaned := keyCleanRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "_")
	return strings.Trim(keyCollapseRe.ReplaceAllString(cleaned, "_"), "_")
}

// splitNumberList expands "1, 3" and "2-5" bracket lists into entry
// numbers. Wide ranges are rejected as page spans rather than citations.
func splitNumberList(s string) []int {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if lo, hi, ok := splitRange(part); ok {
			if hi-lo > 30 {
				continue
			}
			for n := lo; n <= hi; n++ {
				out = append(out, n)
			}
			continue
		}
		if n, err := strconv.Atoi(part); err == nil {
			out = append(out, n)
		}
	}
	return out
}

func splitRange(s string) (lo, hi int, ok bool) {
	i := strings.IndexAny(s, "-–")
	if i < 0 {
		return 0, 0, false
	}
	lo, err1 := strconv.Atoi(strings.TrimSpace(s[:i]))
	hi, err2 := strconv.Atoi(strings.TrimLeft(s[i:], "-– "))
	if err1 != nil || err2 != nil || hi < lo {
		return 0, 0, false
	}
	return lo, hi, true
}

// ReferenceKey derives the citation key a reference would be cited under:
// first author surname plus year. Empty when either half is missing.
func ReferenceKey(ref *types.Reference) string {
	if ref.Year == nil || len(ref.Authors) == 0 {
		return ""
	}
	first := ref.Authors[0]
	if first == types.EtAl {
		return ""
	}
	surname := first
	if i := strings.IndexByte(first, ','); i >= 0 {
		surname = first[:i]
	} else if fields := strings.Fields(first); len(fields) > 0 {
		surname = fields[len(fields)-1]
	}
	return normalizeKeyPart(surname) + "_" + strconv.Itoa(*ref.Year)
}

// BuildCrossCheck relates in-text citation keys to the reference list.
// A citation with no matching reference is reported missing; a reference
// cited under none of its keys is reported unused.
func BuildCrossCheck(citations []types.Citation, refs []types.Reference) types.CrossCheckReport {
	report := types.CrossCheckReport{
		TotalCitations:  len(citations),
		TotalReferences: len(refs),
	}

	refKeys := make(map[string]bool)
	for i := range refs {
		for _, k := range keysOf(&refs[i]) {
			refKeys[k] = true
		}
	}

	cited := make(map[string]bool)
	for _, c := range citations {
		cited[c.Key] = true
		if !refKeys[c.Key] {
			report.MissingInReferences = append(report.MissingInReferences, c.Key)
		}
	}

	for i := range refs {
		keys := keysOf(&refs[i])
		if len(keys) == 0 {
			continue
		}
		used := false
		for _, k := range keys {
			if cited[k] {
				used = true
				break
			}
		}
		if !used {
			report.UnusedInText = append(report.UnusedInText, keys[0])
		}
	}
	return report
}

// keysOf lists every key a reference answers to: its derived author-year
// key, its BibTeX key, and its numbered-entry key.
func keysOf(ref *types.Reference) []string {
	var keys []string
	if k := ReferenceKey(ref); k != "" {
		keys = append(keys, k)
	}
	if ref.CitationKey != "" {
		keys = append(keys, ref.CitationKey)
	}
	if ref.EntryNumber > 0 {
		keys = append(keys, "ref_"+strconv.Itoa(ref.EntryNumber))
	}
	return keys
}
