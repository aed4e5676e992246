// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"strings"
	"testing"

	"github.com/pi-test-apps/refchecker-app/pkg/types"
)

// --- message rendering ---

func TestThreeLineMismatch(t *testing.T) {
	got := ThreeLineMismatch("Title mismatch", "Cited Title", "Actual Title")
	want := "Title mismatch:\ncited:  'Cited Title'\nactual: 'Actual Title'"
	if got != want {
		t.Errorf("ThreeLineMismatch = %q, want %q", got, want)
	}
}

func TestFormatYearMismatch(t *testing.T) {
	got := FormatYearMismatch(2020, 2021)
	if !strings.Contains(got, "cited:  '2020'") || !strings.Contains(got, "actual: '2021'") {
		t.Errorf("FormatYearMismatch = %q", got)
	}
}

func TestFormatAuthorMismatchDisplayOrder(t *testing.T) {
	got := FormatAuthorMismatch(2, "Smith, John", "Doe, Alice")
	if !strings.Contains(got, "Author 2 mismatch") {
		t.Errorf("missing header: %q", got)
	}
	if !strings.Contains(got, "'John Smith'") || !strings.Contains(got, "'Alice Doe'") {
		t.Errorf("names not in display order: %q", got)
	}
}

// --- diagnostic constructors ---

func TestNewDOIErrorSuppressesNormalizationNoise(t *testing.T) {
	if d := NewDOIError("10.1000/abc.", "10.1000/abc"); d != nil {
		t.Errorf("trailing-period difference reported: %+v", d)
	}
	if d := NewDOIError("https://doi.org/10.1000/ABC", "10.1000/abc"); d != nil {
		t.Errorf("prefix and case difference reported: %+v", d)
	}

	d := NewDOIError("10.1000/abc", "10.1000/xyz")
	if d == nil {
		t.Fatal("real DOI mismatch not reported")
	}
	if d.Severity != types.SeverityError || d.Kind != types.DiagDOI {
		t.Errorf("severity/kind = %s/%s", d.Severity, d.Kind)
	}
	if d.CorrectDOI != "10.1000/xyz" {
		t.Errorf("CorrectDOI = %q", d.CorrectDOI)
	}
}

func TestNewYearWarningIsWarning(t *testing.T) {
	d := NewYearWarning(2020, 2021)
	if d.Severity != types.SeverityWarning {
		t.Errorf("year mismatch severity = %s, want warning", d.Severity)
	}
	if d.CorrectYear != 2021 {
		t.Errorf("CorrectYear = %d, want 2021", d.CorrectYear)
	}
}

func TestNewVenueWarningIsWarning(t *testing.T) {
	d := NewVenueWarning("NeurIPS", "ICML")
	if d.Severity != types.SeverityWarning || d.Kind != types.DiagVenue {
		t.Errorf("severity/kind = %s/%s", d.Severity, d.Kind)
	}
}

// --- CompareAuthors ---

func TestCompareAuthors(t *testing.T) {
	tests := []struct {
		name        string
		cited       []string
		correct     []string
		want        Verdict
		wantMessage string
	}{
		{
			"exact match",
			[]string{"Smith, J.", "Doe, A."},
			[]string{"John Smith", "Alice Doe"},
			Match, "Authors match",
		},
		{
			"count mismatch",
			[]string{"Smith, J."},
			[]string{"John Smith", "Alice Doe"},
			Mismatch, "Author count mismatch: cited 1, actual 2",
		},
		{
			"first author mismatch",
			[]string{"Jane Jones", "Alice Doe"},
			[]string{"John Smith", "Alice Doe"},
			Mismatch, "First author mismatch",
		},
		{
			"positional mismatch",
			[]string{"John Smith", "Bob Brown"},
			[]string{"John Smith", "Alice Doe"},
			Mismatch, "Author 2 mismatch",
		},
		{
			"et al stops early",
			[]string{"Smith, J.", types.EtAl},
			[]string{"John Smith", "Alice Doe", "Bob Brown", "Carol White"},
			Match, "Authors match",
		},
		{
			"et al names may be non-positional",
			[]string{"Doe, A.", types.EtAl},
			[]string{"John Smith", "Alice Doe", "Bob Brown"},
			Match, "Authors match",
		},
		{
			"et al name absent entirely",
			[]string{"Nobody, X.", types.EtAl},
			[]string{"John Smith", "Alice Doe"},
			Mismatch, "not found in author list",
		},
		{
			"empty cited inconclusive",
			nil,
			[]string{"John Smith"},
			Inconclusive, "insufficient author information",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, msg := CompareAuthors(tt.cited, tt.correct)
			if verdict != tt.want {
				t.Errorf("verdict = %v, want %v (msg %q)", verdict, tt.want, msg)
			}
			if !strings.Contains(msg, tt.wantMessage) {
				t.Errorf("message %q does not contain %q", msg, tt.wantMessage)
			}
		})
	}
}

func TestCompareAuthorsDeduplicatesCorrectList(t *testing.T) {
	verdict, msg := CompareAuthors(
		[]string{"John Smith"},
		[]string{"Smith, John", "John Smith"},
	)
	if verdict != Match {
		t.Errorf("verdict = %v, want Match (msg %q)", verdict, msg)
	}
}

// --- Compare ---

func TestCompareMatchingRecordsYieldNoDiagnostics(t *testing.T) {
	cited := &types.Reference{
		Title:   "Attention Is All You Need",
		Authors: []string{"Vaswani, A.", types.EtAl},
		Year:    types.YearOf(2017),
		Venue:   "NeurIPS",
		DOI:     "10.5555/3295222",
	}
	actual := &types.Reference{
		Title:   "Attention is all you need",
		Authors: []string{"Ashish Vaswani", "Noam Shazeer"},
		Year:    types.YearOf(2017),
		Venue:   "Advances in Neural Information Processing Systems",
		DOI:     "https://doi.org/10.5555/3295222",
	}
	if diags := Compare(cited, actual); len(diags) != 0 {
		t.Errorf("got %d diagnostics, want 0: %+v", len(diags), diags)
	}
}

func TestCompareReportsPerFieldDiagnostics(t *testing.T) {
	cited := &types.Reference{
		Title:   "Attention Is All You Need",
		Authors: []string{"Ashish Vaswani"},
		Year:    types.YearOf(2016),
		Venue:   "ICML",
	}
	actual := &types.Reference{
		Title:   "Attention Is All You Need",
		Authors: []string{"Ashish Vaswani"},
		Year:    types.YearOf(2017),
		Venue:   "Advances in Neural Information Processing Systems",
	}
	diags := Compare(cited, actual)
	if len(diags) != 2 {
		t.Fatalf("got %d diagnostics, want 2: %+v", len(diags), diags)
	}
	kinds := map[types.DiagnosticKind]bool{}
	for _, d := range diags {
		kinds[d.Kind] = true
		if d.Severity != types.SeverityWarning {
			t.Errorf("%s severity = %s, want warning", d.Kind, d.Severity)
		}
	}
	if !kinds[types.DiagYear] || !kinds[types.DiagVenue] {
		t.Errorf("kinds = %v, want year and venue", kinds)
	}
}

func TestCompareSkipsAbsentFields(t *testing.T) {
	cited := &types.Reference{Title: "Some Paper", Year: types.YearOf(2020)}
	actual := &types.Reference{
		Title:   "Some Paper",
		Authors: []string{"John Smith"},
		Venue:   "Journal of Testing",
	}
	// Authors and venue are absent on the cited side, year on the actual
	// side; the only shared field, the title, agrees.
	if diags := Compare(cited, actual); len(diags) != 0 {
		t.Errorf("got %d diagnostics, want 0: %+v", len(diags), diags)
	}
}

func TestCompareNoComparableFields(t *testing.T) {
	cited := &types.Reference{Title: "Only Cited Has This"}
	actual := &types.Reference{Authors: []string{"John Smith"}}
	diags := Compare(cited, actual)
	if len(diags) != 1 || diags[0].Kind != types.DiagUnverified {
		t.Fatalf("diags = %+v, want a single unverified warning", diags)
	}
}

// --- Same ---

func TestSame(t *testing.T) {
	tests := []struct {
		name   string
		cited  types.Reference
		actual types.Reference
		want   bool
	}{
		{
			"doi agreement overrides title difference",
			types.Reference{Title: "Wrong Title", DOI: "10.1000/abc"},
			types.Reference{Title: "Right Title", DOI: "https://doi.org/10.1000/abc"},
			true,
		},
		{
			"arxiv id agreement",
			types.Reference{Title: "Wrong Title", ArxivID: "2310.12815"},
			types.Reference{Title: "Right Title", ArxivID: "2310.12815"},
			true,
		},
		{
			"title and first author agree",
			types.Reference{Title: "Deep Learning Basics", Authors: []string{"Smith, J."}},
			types.Reference{Title: "Deep learning basics", Authors: []string{"John Smith", "Alice Doe"}},
			true,
		},
		{
			"title agrees but first author differs",
			types.Reference{Title: "Deep Learning Basics", Authors: []string{"Jane Jones"}},
			types.Reference{Title: "Deep Learning Basics", Authors: []string{"John Smith"}},
			false,
		},
		{
			"titles differ",
			types.Reference{Title: "Deep Learning Basics", Authors: []string{"John Smith"}},
			types.Reference{Title: "A Study of Fish Migration", Authors: []string{"John Smith"}},
			false,
		},
		{
			"missing authors fall back to title",
			types.Reference{Title: "Deep Learning Basics"},
			types.Reference{Title: "Deep Learning Basics", Authors: []string{"John Smith"}},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Same(&tt.cited, &tt.actual); got != tt.want {
				t.Errorf("Same = %v, want %v", got, tt.want)
			}
		})
	}
}
