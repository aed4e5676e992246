// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"fmt"

	"github.com/pi-test-apps/refchecker-app/pkg/types"
)

// Compare checks a cited reference against the verified record of the
// same work and returns one diagnostic per disagreeing field. Fields
// absent on either side are skipped rather than reported, so a sparse
// record never produces false mismatches. A comparison where no field
// could be checked at all yields a single unverified diagnostic.
func Compare(cited, actual *types.Reference) []types.Diagnostic {
	var diags []types.Diagnostic
	compared := 0

	if len(cited.Authors) > 0 && len(actual.Authors) > 0 {
		compared++
		if verdict, details := CompareAuthors(cited.Authors, actual.Authors); verdict == Mismatch {
			diags = append(diags, NewAuthorError(details, actual.Authors))
		}
	}

	if cited.Title != "" && actual.Title != "" {
		compared++
		if Titles(cited.Title, actual.Title) == Mismatch {
			details := ThreeLineMismatch("Title mismatch", cited.Title, actual.Title)
			diags = append(diags, NewTitleError(details, actual.Title))
		}
	}

	if Years(cited.Year, actual.Year) != Inconclusive {
		compared++
		if Years(cited.Year, actual.Year) == Mismatch {
			diags = append(diags, NewYearWarning(*cited.Year, *actual.Year))
		}
	}

	if cited.Venue != "" && actual.Venue != "" {
		compared++
		if Venues(cited.Venue, actual.Venue) == Mismatch {
			diags = append(diags, NewVenueWarning(cited.Venue, actual.Venue))
		}
	}

	if cited.DOI != "" && actual.DOI != "" {
		compared++
		if d := NewDOIError(cited.DOI, actual.DOI); d != nil {
			diags = append(diags, *d)
		}
	}

	if cited.ArxivID != "" && actual.ArxivID != "" {
		compared++
		if cited.ArxivID != actual.ArxivID {
			diags = append(diags, NewArxivIDError(cited.ArxivID, actual.ArxivID))
		}
	}

	if cited.URL != "" && actual.URL != "" {
		compared++
		if URLs(cited.URL, actual.URL) == Mismatch {
			details := ThreeLineMismatch("URL mismatch", cited.URL, actual.URL)
			diags = append(diags, NewURLError(details, actual.URL))
		}
	}

	if compared == 0 {
		diags = append(diags, NewUnverified(
			fmt.Sprintf("no comparable fields for %q", cited.Title)))
	}
	return diags
}

// Same reports whether cited and actual plausibly describe the same work:
// an identifier agrees, or title and first author both agree. Used to pair
// cited entries with verified records before field comparison.
func Same(cited, actual *types.Reference) bool {
	if cited.DOI != "" && actual.DOI != "" && DOIsEqual(cited.DOI, actual.DOI) {
		return true
	}
	if cited.ArxivID != "" && actual.ArxivID != "" && cited.ArxivID == actual.ArxivID {
		return true
	}
	if Titles(cited.Title, actual.Title) != Match {
		return false
	}
	if len(cited.Authors) == 0 || len(actual.Authors) == 0 {
		return true
	}
	first := cited.Authors[0]
	if first == types.EtAl {
		return true
	}
	return Names(first, actual.Authors[0]) != Mismatch
}
