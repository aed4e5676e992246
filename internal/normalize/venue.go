// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"regexp"
	"strings"
)

// venueAbbreviations maps common journal and conference short forms to
// their canonical full names. Keys and values are compared lowercase.
var venueAbbreviations = map[string]string{
	"phys. rev. lett.":       "physical review letters",
	"phys. rev. a":           "physical review a",
	"phys. rev. b":           "physical review b",
	"phys. rev. c":           "physical review c",
	"phys. rev. d":           "physical review d",
	"phys. rev. e":           "physical review e",
	"phys. lett. a":          "physics letters a",
	"phys. lett. b":          "physics letters b",
	"j. phys.":               "journal of physics",
	"ann. phys.":             "annals of physics",
	"nucl. phys. a":          "nuclear physics a",
	"nucl. phys. b":          "nuclear physics b",
	"nature phys.":           "nature physics",
	"sci. adv.":              "science advances",
	"proc. natl. acad. sci.": "proceedings of the national academy of sciences",
	"pnas":                   "proceedings of the national academy of sciences",
	"neurips":                "neural information processing systems",
	"nips":                   "neural information processing systems",
	"jmlr":                   "journal of machine learning research",
	"tacl":                   "transactions of the association for computational linguistics",
	"corr":                   "computing research repository",
}

var (
	// editorCreditRe matches a leading editor credit such as
	// "M. Moens, X. Huang, and S. Yih, editors," or "A. Smith, eds.,".
	editorCreditRe = regexp.MustCompile(`(?i)^.*?\b(?:editors?|eds?\.)\s*,\s*`)

	// proceedingsRe matches the "Proceedings of (the)" prefix.
	proceedingsRe = regexp.MustCompile(`(?i)^proceedings\s+of\s+(?:the\s+)?`)

	// ordinalRe matches an ordinal token like "29th", "1st", "42nd", "61st".
	ordinalRe = regexp.MustCompile(`^\d+(?:st|nd|rd|th)$`)

	// acronymRe matches an organization acronym token (ACM, SIGOPS, IEEE).
	acronymRe = regexp.MustCompile(`^[A-Z][A-Z0-9]+$`)

	venueYearRe = regexp.MustCompile(`[,\s]*\b(19|20)\d{2}\b`)
)

// Venue reduces a venue string to its substantive series name for display:
// editor credits and "Proceedings of the <ORG...> <ordinal>" prefixes are
// stripped. When nothing substantive remains the result is empty, never a
// dangling "Proceedings of the".
func Venue(s string) string {
	s = StripCommands(s)
	s = CollapseSpaces(s)
	s = editorCreditRe.ReplaceAllString(s, "")
	if loc := proceedingsRe.FindStringIndex(s); loc != nil {
		rest := s[loc[1]:]
		words := strings.Fields(rest)
		i := 0
		for i < len(words) && (acronymRe.MatchString(words[i]) || ordinalRe.MatchString(words[i])) {
			i++
		}
		s = strings.Join(words[i:], " ")
	}
	return strings.TrimSpace(s)
}

// VenueKey reduces a venue to its comparison form: display-normalized,
// lowercased, with years and trailing punctuation dropped and standard
// abbreviations expanded to their canonical full names.
func VenueKey(s string) string {
	s = Venue(s)
	s = venueYearRe.ReplaceAllString(s, "")
	s = strings.TrimRight(strings.TrimSpace(s), ".,;")
	key := strings.ToLower(CollapseSpaces(s))
	if full, ok := venueAbbreviations[key]; ok {
		return full
	}
	// Retry with a trailing period, so "Phys. Rev. Lett" still expands.
	if full, ok := venueAbbreviations[key+"."]; ok {
		return full
	}
	return key
}
