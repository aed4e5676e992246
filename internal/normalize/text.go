// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize canonicalizes manuscript text and reference fields
// before structural parsing and comparison. All functions are pure and
// idempotent: re-normalizing normalized text is a no-op.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// latexAccents maps escaped-accent sequences to their Unicode letters.
// Both the braced ({\'e}) and bare (\'e) forms are handled.
var latexAccents = map[string]string{
	`\'a`: "á", `\'e`: "é", `\'i`: "í", `\'o`: "ó", `\'u`: "ú",
	`\'A`: "Á", `\'E`: "É", `\'I`: "Í", `\'O`: "Ó", `\'U`: "Ú",
	`\'c`: "ć", `\'n`: "ń", `\'s`: "ś", `\'y`: "ý", `\'z`: "ź",
	"\\`a": "à", "\\`e": "è", "\\`i": "ì", "\\`o": "ò", "\\`u": "ù",
	`\"a`: "ä", `\"e`: "ë", `\"i`: "ï", `\"o`: "ö", `\"u`: "ü",
	`\"A`: "Ä", `\"O`: "Ö", `\"U`: "Ü",
	`\^a`: "â", `\^e`: "ê", `\^i`: "î", `\^o`: "ô", `\^u`: "û",
	`\~a`: "ã", `\~n`: "ñ", `\~o`: "õ",
	`\c c`: "ç", `\cc`: "ç",
	`\ss`: "ß", `\o`: "ø", `\O`: "Ø", `\l`: "ł", `\L`: "Ł",
	`\aa`: "å", `\AA`: "Å", `\ae`: "æ", `\AE`: "Æ",
}

var (
	// bracedAccentRe matches {\'e}, {\"u} and similar braced accent groups.
	bracedAccentRe = regexp.MustCompile(`\{(\\[''"\x60^~][a-zA-Z])\}`)

	// penaltyRe matches \penalty commands with their numeric argument.
	penaltyRe = regexp.MustCompile(`\\penalty\s*\d+\s*`)

	// commandArgRe matches single-argument commands like \textbf{...},
	// \emph{...}, \mbox{...}, keeping the argument text.
	commandArgRe = regexp.MustCompile(`\\(?:textbf|textit|textsc|texttt|emph|mbox|hbox|text|uline|underline)\{([^{}]*)\}`)

	// bareCommandRe matches remaining argumentless commands (\newblock,
	// \natexlab, ...), not accent escapes.
	bareCommandRe = regexp.MustCompile(`\\[a-zA-Z]+\s*`)

	// commentRe matches a LaTeX comment: % preceded by start-of-line or
	// whitespace, through end of line. URL escapes like %20 are glued to
	// the preceding word and never match.
	commentRe = regexp.MustCompile(`(?m)(^|\s)%[^\n]*`)

	spacesRe = regexp.MustCompile(`[ \t]+`)
)

// Text canonicalizes whitespace, escaped accents, non-breaking-space
// markers, and Unicode composition. Line structure is preserved so the
// bibliography locator can still scan line-by-line.
func Text(s string) string {
	s = ConvertAccents(s)
	s = strings.ReplaceAll(s, "~", " ")
	s = strings.ReplaceAll(s, " ", " ")
	s = spacesRe.ReplaceAllString(s, " ")
	return norm.NFC.String(s)
}

// ConvertAccents rewrites escaped-accent sequences to their Unicode letters.
func ConvertAccents(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	s = bracedAccentRe.ReplaceAllString(s, "$1")
	for seq, letter := range latexAccents {
		s = strings.ReplaceAll(s, seq, letter)
	}
	return s
}

// StripCommands removes inline markup commands while preserving their
// argument text, drops \penalty directives and comments, and unwraps one
// layer of grouping braces. URL percent-escapes survive comment removal.
func StripCommands(s string) string {
	s = ConvertAccents(s)
	s = commentRe.ReplaceAllString(s, "")
	s = penaltyRe.ReplaceAllString(s, "")
	for {
		next := commandArgRe.ReplaceAllString(s, "$1")
		if next == s {
			break
		}
		s = next
	}
	s = bareCommandRe.ReplaceAllString(s, "")
	s = strings.NewReplacer("{", "", "}", "", "~", " ").Replace(s)
	s = spacesRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Apostrophes folds the Unicode single-quote variants to the ASCII
// apostrophe so surname comparisons see one form.
func Apostrophes(s string) string {
	return strings.NewReplacer("‘", "'", "’", "'", "ʼ", "'").Replace(s)
}

// Diacritics strips accent marks, producing an ASCII-comparable form:
// "García" becomes "Garcia", "Wawrzy'nski" becomes "Wawrzynski". A
// malformed standalone diaeresis glued to the following letter ("Gl¨ uck")
// is repaired rather than left as a mid-word space.
func Diacritics(s string) string {
	s = Apostrophes(s)
	s = strings.ReplaceAll(s, "¨ ", "")
	s = strings.ReplaceAll(s, "¨", "")
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		switch r {
		case 'ß':
			b.WriteString("ss")
		case 'ø':
			b.WriteRune('o')
		case 'Ø':
			b.WriteRune('O')
		case 'ł':
			b.WriteRune('l')
		case 'Ł':
			b.WriteRune('L')
		case 'æ':
			b.WriteString("ae")
		case 'Æ':
			b.WriteString("AE")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CollapseSpaces trims and squeezes runs of whitespace to single spaces.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
