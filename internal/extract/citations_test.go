// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"reflect"
	"testing"

	"github.com/pi-test-apps/refchecker-app/pkg/types"
)

// --- CitationKey ---

func TestCitationKey(t *testing.T) {
	tests := []struct {
		name    string
		authors string
		year    string
		want    string
	}{
		{"single author", "Smith", "2020", "smith_2020"},
		{"lowercased", "SMITH", "2020", "smith_2020"},
		{"et al folds to suffix", "Smith et al.", "2019", "smith_et_al_2019"},
		{"ampersand joins both surnames", "Smith & Jones", "2020", "smith_jones_2020"},
		{"year suffix letter kept", "Smith", "2020a", "smith_2020a"},
		{"punctuation collapses to underscores", "O'Brien-Lee", "2021", "o_brien_lee_2021"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CitationKey(tt.authors, tt.year); got != tt.want {
				t.Errorf("CitationKey(%q, %q) = %q, want %q", tt.authors, tt.year, got, tt.want)
			}
		})
	}
}

// --- ExtractCitations ---

func TestExtractCitations(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			"parenthetical",
			"Prior work (Smith, 2020) showed this.",
			[]string{"smith_2020"},
		},
		{
			"parenthetical with ampersand",
			"As argued (Smith & Jones, 2020).",
			[]string{"smith_jones_2020"},
		},
		{
			"narrative et al",
			"Jones et al. (2021) extended the result.",
			[]string{"jones_et_al_2021"},
		},
		{
			"latex cite with multiple keys",
			`We build on \citep{vaswani2017,devlin2019}.`,
			[]string{"vaswani2017", "devlin2019"},
		},
		{
			"bracket list and range",
			"Earlier systems [1, 3] and [5-7] apply.",
			[]string{"ref_1", "ref_3", "ref_5", "ref_6", "ref_7"},
		},
		{
			"wide range rejected as page span",
			"See pages [100-400] for details.",
			nil,
		},
		{
			"duplicates collapse to first occurrence",
			"(Smith, 2020) and again (Smith, 2020).",
			[]string{"smith_2020"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractCitations(tt.text, types.Segment{})
			keys := make([]string, 0, len(got))
			for _, c := range got {
				keys = append(keys, c.Key)
			}
			if len(keys) == 0 {
				keys = nil
			}
			if !reflect.DeepEqual(keys, tt.want) {
				t.Errorf("keys = %v, want %v", keys, tt.want)
			}
		})
	}
}

func TestExtractCitationsExcludesBibliography(t *testing.T) {
	body := "Intro citing (Smith, 2020).\n\nReferences\n"
	bib := "Smith, J. (2020). A Paper. Journal of Testing.\nDoe, A. (2021). Another. Journal."
	text := body + bib

	citations := ExtractCitations(text, types.Segment{
		Start: len(body),
		End:   len(text),
		Text:  bib,
	})

	for _, c := range citations {
		if c.Key == "doe_2021" {
			t.Errorf("bibliography entry counted as citation: %+v", c)
		}
	}
	if len(citations) != 1 || citations[0].Key != "smith_2020" {
		t.Errorf("citations = %+v, want only smith_2020", citations)
	}
}

// --- ReferenceKey ---

func TestReferenceKey(t *testing.T) {
	tests := []struct {
		name string
		ref  types.Reference
		want string
	}{
		{
			"surname comma form",
			types.Reference{Authors: []string{"Smith, J."}, Year: types.YearOf(2020)},
			"smith_2020",
		},
		{
			"display order takes last word",
			types.Reference{Authors: []string{"John Smith"}, Year: types.YearOf(2020)},
			"smith_2020",
		},
		{"missing year", types.Reference{Authors: []string{"Smith, J."}}, ""},
		{"missing authors", types.Reference{Year: types.YearOf(2020)}, ""},
		{
			"et al only author",
			types.Reference{Authors: []string{types.EtAl}, Year: types.YearOf(2020)},
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReferenceKey(&tt.ref); got != tt.want {
				t.Errorf("ReferenceKey = %q, want %q", got, tt.want)
			}
		})
	}
}

// --- BuildCrossCheck ---

func TestBuildCrossCheck(t *testing.T) {
	citations := []types.Citation{
		{Key: "smith_2020", Raw: "(Smith, 2020)"},
		{Key: "ref_2", Raw: "[2]"},
		{Key: "ghost_1999", Raw: "(Ghost, 1999)"},
	}
	refs := []types.Reference{
		{Authors: []string{"Smith, J."}, Year: types.YearOf(2020), Title: "A Paper"},
		{EntryNumber: 2, Title: "Second Paper"},
		{Authors: []string{"Uncited, U."}, Year: types.YearOf(2018), Title: "Never Cited"},
	}

	report := BuildCrossCheck(citations, refs)
	if report.TotalCitations != 3 || report.TotalReferences != 3 {
		t.Errorf("totals = %d/%d, want 3/3", report.TotalCitations, report.TotalReferences)
	}
	if !reflect.DeepEqual(report.MissingInReferences, []string{"ghost_1999"}) {
		t.Errorf("MissingInReferences = %v, want [ghost_1999]", report.MissingInReferences)
	}
	if !reflect.DeepEqual(report.UnusedInText, []string{"uncited_2018"}) {
		t.Errorf("UnusedInText = %v, want [uncited_2018]", report.UnusedInText)
	}
}

func TestBuildCrossCheckKeylessReferenceNeverUnused(t *testing.T) {
	refs := []types.Reference{{Title: "No Key Material"}}
	report := BuildCrossCheck(nil, refs)
	if len(report.UnusedInText) != 0 {
		t.Errorf("UnusedInText = %v, want empty", report.UnusedInText)
	}
}
