// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// diag.go constructs the uniform Error/Warning records consumed by the
// verification and reporting layers. Each kind carries a fixed set of
// structured fields alongside the rendered message.
package match

import (
	"fmt"
	"strings"

	"github.com/pi-test-apps/refchecker-app/internal/authors"
	"github.com/pi-test-apps/refchecker-app/pkg/types"
)

// ThreeLineMismatch renders the standard mismatch message: a header line,
// a "cited:" line, and an "actual:" line. The extra space after "cited:"
// keeps the quoted values column-aligned.
func ThreeLineMismatch(header, cited, actual string) string {
	return fmt.Sprintf("%s:\ncited:  '%s'\nactual: '%s'", header, cited, actual)
}

// FormatYearMismatch renders the year mismatch message.
func FormatYearMismatch(cited, correct int) string {
	return ThreeLineMismatch("Year mismatch", fmt.Sprint(cited), fmt.Sprint(correct))
}

// FormatAuthorMismatch renders a positional author mismatch. Both names
// are shown in "Given Surname" display order.
func FormatAuthorMismatch(position int, cited, correct string) string {
	header := fmt.Sprintf("Author %d mismatch", position)
	return ThreeLineMismatch(header, authors.Display(cited), authors.Display(correct))
}

// FormatFirstAuthorMismatch renders a first-author mismatch.
func FormatFirstAuthorMismatch(cited, correct string) string {
	return ThreeLineMismatch("First author mismatch", authors.Display(cited), authors.Display(correct))
}

// NewAuthorError builds an author discrepancy record carrying the
// authoritative author list.
func NewAuthorError(details string, correct []string) types.Diagnostic {
	return types.Diagnostic{
		Severity:       types.SeverityError,
		Kind:           types.DiagAuthor,
		Details:        details,
		CorrectAuthors: strings.Join(correct, ", "),
	}
}

// NewYearWarning builds a year discrepancy record. Year differences are
// always warnings, never errors.
func NewYearWarning(cited, correct int) types.Diagnostic {
	return types.Diagnostic{
		Severity:    types.SeverityWarning,
		Kind:        types.DiagYear,
		Details:     FormatYearMismatch(cited, correct),
		CorrectYear: correct,
	}
}

// NewDOIError builds a DOI discrepancy record. A mismatch whose only
// difference is normalization noise such as a trailing period is
// suppressed: the return is nil and no discrepancy is reported.
func NewDOIError(cited, correct string) *types.Diagnostic {
	if DOIsEqual(cited, correct) {
		return nil
	}
	d := types.Diagnostic{
		Severity:   types.SeverityError,
		Kind:       types.DiagDOI,
		Details:    ThreeLineMismatch("DOI mismatch", cited, correct),
		CorrectDOI: correct,
	}
	return &d
}

// NewTitleError builds a title discrepancy record.
func NewTitleError(details, correct string) types.Diagnostic {
	return types.Diagnostic{
		Severity:     types.SeverityError,
		Kind:         types.DiagTitle,
		Details:      details,
		CorrectTitle: correct,
	}
}

// NewVenueWarning builds a venue discrepancy record. Venue differences
// are warnings: abbreviation noise is common enough that a hard error
// would drown real problems.
func NewVenueWarning(cited, correct string) types.Diagnostic {
	return types.Diagnostic{
		Severity:     types.SeverityWarning,
		Kind:         types.DiagVenue,
		Details:      ThreeLineMismatch("Venue mismatch", cited, correct),
		CorrectVenue: correct,
	}
}

// NewURLError builds a URL discrepancy record; correct may be empty when
// no authoritative URL is known.
func NewURLError(details, correct string) types.Diagnostic {
	return types.Diagnostic{
		Severity:   types.SeverityError,
		Kind:       types.DiagURL,
		Details:    details,
		CorrectURL: correct,
	}
}

// NewArxivIDError builds an arXiv identifier discrepancy record.
func NewArxivIDError(cited, correct string) types.Diagnostic {
	return types.Diagnostic{
		Severity:       types.SeverityError,
		Kind:           types.DiagArxivID,
		Details:        ThreeLineMismatch("arXiv ID mismatch", cited, correct),
		CorrectArxivID: correct,
	}
}

// NewUnverified builds the record emitted when no backend could confirm
// a reference.
func NewUnverified(details string) types.Diagnostic {
	return types.Diagnostic{
		Severity: types.SeverityWarning,
		Kind:     types.DiagUnverified,
		Details:  details,
	}
}

// NewGenericError builds an error of arbitrary kind with extra fields.
func NewGenericError(kind types.DiagnosticKind, details string, extra map[string]string) types.Diagnostic {
	return types.Diagnostic{
		Severity: types.SeverityError,
		Kind:     kind,
		Details:  details,
		Extra:    extra,
	}
}

// NewGenericWarning builds a warning of arbitrary kind with extra fields.
func NewGenericWarning(kind types.DiagnosticKind, details string, extra map[string]string) types.Diagnostic {
	return types.Diagnostic{
		Severity: types.SeverityWarning,
		Kind:     kind,
		Details:  details,
		Extra:    extra,
	}
}

// CompareAuthors checks a cited author list against an authoritative one
// and returns a verdict plus a rendered explanation. A trailing et-al
// token lets the cited list stop early; duplicate authoritative names are
// collapsed before counting.
func CompareAuthors(cited, correct []string) (Verdict, string) {
	correct = dedupeNames(correct)
	if len(cited) == 0 || len(correct) == 0 {
		return Inconclusive, "insufficient author information"
	}

	hasEtAl := cited[len(cited)-1] == types.EtAl
	if hasEtAl {
		cited = cited[:len(cited)-1]
	}

	if !hasEtAl && len(cited) != len(correct) {
		return Mismatch, fmt.Sprintf("Author count mismatch: cited %d, actual %d (%s)",
			len(cited), len(correct), authors.DisplayList(correct))
	}

	for i, c := range cited {
		if i >= len(correct) {
			break
		}
		if Names(c, correct[i]) == Match {
			continue
		}
		// With et al the cited names need not be positional; accept a
		// name found anywhere in the authoritative list.
		if hasEtAl && foundAnywhere(c, correct) {
			continue
		}
		if hasEtAl {
			return Mismatch, fmt.Sprintf("'%s' not found in author list: %s",
				authors.Display(c), authors.DisplayList(correct))
		}
		if i == 0 {
			return Mismatch, FormatFirstAuthorMismatch(c, correct[0])
		}
		return Mismatch, FormatAuthorMismatch(i+1, c, correct[i])
	}
	return Match, "Authors match"
}

func foundAnywhere(name string, list []string) bool {
	for _, c := range list {
		if Names(name, c) == Match {
			return true
		}
	}
	return false
}

func dedupeNames(list []string) []string {
	seen := make(map[string]bool, len(list))
	var out []string
	for _, n := range list {
		key := strings.ToLower(authors.Display(n))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}
