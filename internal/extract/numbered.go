// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pi-test-apps/refchecker-app/internal/authors"
	"github.com/pi-test-apps/refchecker-app/internal/normalize"
	"github.com/pi-test-apps/refchecker-app/pkg/types"
)

var (
	entryMarkerRe = regexp.MustCompile(`^\s*\[(\d+)\]\s*`)

	// quotedTitleRe matches a quoted title in straight or typographic
	// quotes, with trailing punctuation inside or outside the quotes.
	quotedTitleRe = regexp.MustCompile(`["\x{201C}]([^"\x{201C}\x{201D}]+?)[,.]?["\x{201D}]`)

	// authorTitleBoundaryRe finds the seam between an author list and a
	// title. A period after a lowercase letter followed by a capital marks
	// it even when the joining space was lost, while initials such as
	// "J. L." never trigger a split.
	authorTitleBoundaryRe = regexp.MustCompile(`(\p{Ll})\.\s*(\p{Lu})`)

	titleEndRe = regexp.MustCompile(`\.\s+`)

	parenYearRe  = regexp.MustCompile(`\((\d{4})[a-z]?\)`)
	bareYearRe   = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
	arxivTailRe  = regexp.MustCompile(`(?i)arxiv[:\s]*(\d{4}\.\d{4,5})(v\d+)?(\s*\[[^\]]*\])?`)
	doiInlineRe  = regexp.MustCompile(`(?i)\b(?:doi[:\s]*|https?://(?:dx\.)?doi\.org/)(10\.\d{4,9}/\S+)`)
	urlInlineRe  = regexp.MustCompile(`https?://\S+`)
	venueInRe    = regexp.MustCompile(`(?i)^in:?\s+`)
	pageNumberRe = regexp.MustCompile(`(?i)^(?:pp?\.|pages?)\s`)
	pageTrailRe  = regexp.MustCompile(`(?i),\s*(?:pp?\.|pages?|vol(?:ume)?\.?)\s.*$`)
)

// parseNumberedEntry extracts one "[N] Authors. Title. Venue, year."
// entry. The title takes the earliest author boundary so damaged entries
// keep their full title rather than a truncated tail.
func parseNumberedEntry(raw string) (types.Reference, bool) {
	ref := types.Reference{RawText: raw, SourceFormat: types.FormatNumbered}

	body := raw
	if m := entryMarkerRe.FindStringSubmatch(raw); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			ref.EntryNumber = n
		}
		body = raw[len(m[0]):]
	}
	body = normalize.Text(body)

	authorPart, titlePart, rest := splitAuthorTitle(body)
	if titlePart == "" && authorPart == "" {
		return ref, false
	}

	ref.Authors = authors.Parse(authorPart)
	ref.Title = normalize.Title(titlePart)
	fillFromTail(&ref, rest)
	ref.Type = classifyReference(&ref, "")
	return ref, true
}

// splitAuthorTitle divides an entry body into author list, title, and the
// trailing venue/year material.
func splitAuthorTitle(body string) (authorPart, titlePart, rest string) {
	if m := quotedTitleRe.FindStringSubmatchIndex(body); m != nil {
		authorPart = strings.TrimRight(strings.TrimSpace(body[:m[0]]), ".,")
		titlePart = body[m[2]:m[3]]
		rest = strings.TrimLeft(body[m[1]:], ".,; ")
		return
	}

	if m := authorTitleBoundaryRe.FindStringSubmatchIndex(body); m != nil {
		authorPart = body[:m[3]]
		after := body[m[4]:]
		titlePart, rest = splitTitleTail(after)
		return
	}

	// No boundary at all: a bare title line.
	titlePart, rest = splitTitleTail(body)
	return
}

// splitTitleTail separates the title sentence from whatever follows. The
// title runs to the last period before venue or year material begins, so
// titles with internal abbreviations survive intact.
func splitTitleTail(s string) (title, rest string) {
	locs := titleEndRe.FindAllStringIndex(s, -1)
	for _, loc := range locs {
		tail := s[loc[1]:]
		if tailIsMetadata(tail) {
			return strings.TrimSuffix(strings.TrimSpace(s[:loc[0]]), "."), tail
		}
	}
	if len(locs) > 0 {
		loc := locs[0]
		return strings.TrimSuffix(strings.TrimSpace(s[:loc[0]]), "."), s[loc[1]:]
	}
	return strings.TrimSuffix(strings.TrimSpace(s), "."), ""
}

// tailIsMetadata reports whether text after a sentence break looks like
// venue or identifier material rather than a continuation of the title.
func tailIsMetadata(tail string) bool {
	tail = strings.TrimSpace(tail)
	switch {
	case tail == "":
		return false
	case bareYearRe.MatchString(firstWord(tail)):
		return true
	case venueInRe.MatchString(tail):
		return true
	case arxivTailRe.MatchString(tail):
		return true
	case doiInlineRe.MatchString(tail) || urlInlineRe.MatchString(tail):
		return true
	case pageNumberRe.MatchString(tail):
		return true
	}
	return false
}

func firstWord(s string) string {
	if i := strings.IndexAny(s, " ,;"); i >= 0 {
		return s[:i]
	}
	return s
}

// fillFromTail pulls year, identifiers, and venue from the material after
// the title. Identifiers are cut out before the bare-year search so digits
// inside an arXiv id or DOI are never mistaken for a year.
func fillFromTail(ref *types.Reference, tail string) {
	if m := arxivTailRe.FindStringSubmatch(tail); m != nil {
		ref.ArxivID = m[1]
	}
	if m := doiInlineRe.FindStringSubmatch(tail); m != nil {
		ref.DOI = normalize.DOI(m[1])
	}
	if m := urlInlineRe.FindString(tail); m != "" && !strings.Contains(m, "doi.org") {
		ref.URL = normalize.URL(strings.TrimRight(m, ".,;"))
		if ref.ArxivID == "" {
			ref.ArxivID = normalize.ArxivIDFromURL(ref.URL)
		}
	}

	// Parenthesized years outrank bare ones.
	if m := parenYearRe.FindStringSubmatch(tail); m != nil && ref.Year == nil {
		if y, err := strconv.Atoi(m[1]); err == nil {
			ref.Year = types.YearOf(y)
		}
	}

	scrubbed := arxivTailRe.ReplaceAllString(tail, "")
	scrubbed = doiInlineRe.ReplaceAllString(scrubbed, "")
	scrubbed = urlInlineRe.ReplaceAllString(scrubbed, "")
	if ref.Year == nil {
		if m := bareYearRe.FindString(scrubbed); m != "" {
			if y, err := strconv.Atoi(m); err == nil {
				ref.Year = types.YearOf(y)
			}
		}
	}

	ref.Venue = venueFromTail(scrubbed)
}

// venueFromTail finds the first sentence of the tail that reads as a
// venue: not a lone year, not page numbers, not leftover punctuation.
func venueFromTail(tail string) string {
	for _, sentence := range strings.Split(tail, ". ") {
		s := strings.TrimSpace(strings.Trim(sentence, ".,; "))
		s = venueInRe.ReplaceAllString(s, "")
		if s == "" || pageNumberRe.MatchString(s) {
			continue
		}
		// Page spans and everything after them are trailing matter.
		s = strings.TrimSpace(pageTrailRe.ReplaceAllString(s, ""))
		// Drop trailing ", 2020" and page spans from the candidate.
		if i := strings.LastIndexByte(s, ','); i >= 0 {
			trailer := strings.TrimSpace(s[i+1:])
			if bareYearRe.MatchString(trailer) || pageNumberRe.MatchString(trailer) {
				s = strings.TrimSpace(s[:i])
			}
		}
		if bareYearRe.MatchString(s) && len(s) <= 5 {
			continue
		}
		if !containsLetter(s) {
			continue
		}
		return normalize.Venue(s)
	}
	return ""
}

func containsLetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}
