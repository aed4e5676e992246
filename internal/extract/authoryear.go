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
	// apaYearRe splits "Authors. (2020)." style entries. The author-side
	// period stays with the author part so a final initial keeps its dot.
	apaYearRe = regexp.MustCompile(`\s*\(\s*(\d{4})[a-z]?\s*\)\.?\s*`)

	// aclYearRe splits "Authors. 2024a. Title..." style entries, where the
	// year stands as its own sentence after the author list.
	aclYearRe = regexp.MustCompile(`\.\s+(\d{4})([a-z])?\.\s+`)

	// finalInitialRe matches a trailing one-letter initial whose period
	// belongs to the name, not the sentence.
	finalInitialRe = regexp.MustCompile(`(?:^|[\s.])[A-Z]\.$`)
)

// parseAuthorYearEntry extracts one APA or ACL style entry, where the
// year sits between the author list and the title.
func parseAuthorYearEntry(raw string) (types.Reference, bool) {
	ref := types.Reference{RawText: raw, SourceFormat: types.FormatAuthorYear}
	body := normalize.Text(raw)

	var authorPart, rest string
	if m := apaYearRe.FindStringSubmatchIndex(body); m != nil {
		authorPart = body[:m[0]]
		rest = body[m[1]:]
		if y, err := strconv.Atoi(body[m[2]:m[3]]); err == nil {
			ref.Year = types.YearOf(y)
		}
	} else if m := aclYearRe.FindStringSubmatchIndex(body); m != nil {
		authorPart = body[:m[0]]
		rest = body[m[1]:]
		if y, err := strconv.Atoi(body[m[2]:m[3]]); err == nil {
			ref.Year = types.YearOf(y)
		}
	} else {
		// No year sentence. Fall back to the author/title seam used for
		// numbered entries.
		var titlePart string
		authorPart, titlePart, rest = splitAuthorTitle(body)
		ref.Authors = authors.Parse(authorPart)
		ref.Title = normalize.Title(titlePart)
		fillFromTail(&ref, rest)
		ref.Type = classifyReference(&ref, "")
		return ref, ref.Title != "" || len(ref.Authors) > 0
	}

	authorPart = strings.TrimSpace(authorPart)
	if !finalInitialRe.MatchString(authorPart) {
		authorPart = strings.TrimSuffix(authorPart, ".")
	}
	ref.Authors = authors.Parse(authorPart)

	titlePart, tail := splitTitleTail(rest)
	ref.Title = normalize.Title(titlePart)
	fillFromTail(&ref, tail)
	ref.Type = classifyReference(&ref, "")
	return ref, ref.Title != "" || len(ref.Authors) > 0
}
