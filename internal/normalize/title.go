// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"regexp"
	"strings"
)

// pubTypeRe matches a trailing BibTeX publication-type marker such as
// "[J]" (journal), "[C]" (conference), "[D]", "[M]", "[P]", "[R]".
// Only a marker that terminates the string is removed.
var pubTypeRe = regexp.MustCompile(`\s*\[[JCDMPR]\]\s*$`)

// trailingYearRe matches a dangling ", 2024" style suffix.
var trailingYearRe = regexp.MustCompile(`[,.]?\s*\(?\b(19|20)\d{2}\)?\s*$`)

// Title cleans a stored title: whitespace is collapsed and a terminating
// publication-type marker is dropped. Brackets elsewhere are preserved.
func Title(s string) string {
	s = CollapseSpaces(s)
	s = pubTypeRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// TitleKey reduces a title to its comparison form: cleaned, lowercased,
// with any dangling year suffix trimmed. Used for similarity scoring and
// deduplication, never for storage.
func TitleKey(s string) string {
	s = Title(s)
	s = trailingYearRe.ReplaceAllString(s, "")
	s = strings.TrimRight(s, " .,:;")
	return strings.ToLower(s)
}
