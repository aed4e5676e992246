// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"reflect"
	"testing"

	"github.com/pi-test-apps/refchecker-app/pkg/types"
)

func TestParseNumberedEntryGluedAuthorTitleBoundary(t *testing.T) {
	// The space after the final author's period is missing; the boundary
	// sits at the lowercase-period-capital seam and the full title
	// survives.
	raw := "[34] Yupei Liu, Yuqi Jia, Runpeng Geng, Jinyuan Jia, and Neil Zhenqiang Gong.Formalizing and Benchmarking Prompt Injection Attacks and Defenses. 2023. arXiv: 2310.12815 [cs.CR]."

	ref, ok := parseNumberedEntry(raw)
	if !ok {
		t.Fatal("entry not parsed")
	}
	if ref.EntryNumber != 34 {
		t.Errorf("EntryNumber = %d, want 34", ref.EntryNumber)
	}
	wantAuthors := []string{"Yupei Liu", "Yuqi Jia", "Runpeng Geng", "Jinyuan Jia", "Neil Zhenqiang Gong"}
	if !reflect.DeepEqual(ref.Authors, wantAuthors) {
		t.Errorf("Authors = %v, want %v", ref.Authors, wantAuthors)
	}
	if want := "Formalizing and Benchmarking Prompt Injection Attacks and Defenses"; ref.Title != want {
		t.Errorf("Title = %q, want %q", ref.Title, want)
	}
	if ref.Year == nil || *ref.Year != 2023 {
		t.Errorf("Year = %v, want 2023", ref.Year)
	}
	if ref.ArxivID != "2310.12815" {
		t.Errorf("ArxivID = %q, want 2310.12815", ref.ArxivID)
	}
	if ref.Type != types.TypeArxiv {
		t.Errorf("Type = %s, want %s", ref.Type, types.TypeArxiv)
	}
}

func TestParseNumberedEntryQuotedTitle(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantTitle string
	}{
		{
			"straight quotes without space",
			`[1] Alice Smith."Quoted Title Without Space". 2024.`,
			"Quoted Title Without Space",
		},
		{
			"typographic quotes",
			"[2] Bob Brown. “Smart Quoted Title.” 2023.",
			"Smart Quoted Title",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, ok := parseNumberedEntry(tt.raw)
			if !ok {
				t.Fatal("entry not parsed")
			}
			if ref.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", ref.Title, tt.wantTitle)
			}
			if ref.Year == nil {
				t.Error("Year missing")
			}
		})
	}
}

func TestParseNumberedEntryInitialsNeverSplit(t *testing.T) {
	raw := "[2] J. L. Smith. Understanding Deep Learning. MIT Press, 2022."
	ref, ok := parseNumberedEntry(raw)
	if !ok {
		t.Fatal("entry not parsed")
	}
	wantAuthors := []string{"J. L. Smith"}
	if !reflect.DeepEqual(ref.Authors, wantAuthors) {
		t.Errorf("Authors = %v, want %v", ref.Authors, wantAuthors)
	}
	if want := "Understanding Deep Learning"; ref.Title != want {
		t.Errorf("Title = %q, want %q", ref.Title, want)
	}
	if ref.Venue != "MIT Press" {
		t.Errorf("Venue = %q, want MIT Press", ref.Venue)
	}
	if ref.Year == nil || *ref.Year != 2022 {
		t.Errorf("Year = %v, want 2022", ref.Year)
	}
}

func TestParseNumberedEntryParenthesizedYearBeatsIdentifierDigits(t *testing.T) {
	raw := "[4] Bob Author. Paper Title. arXiv:2403.06833 (2024)."
	ref, ok := parseNumberedEntry(raw)
	if !ok {
		t.Fatal("entry not parsed")
	}
	if ref.Year == nil || *ref.Year != 2024 {
		t.Errorf("Year = %v, want 2024 (not the identifier prefix)", ref.Year)
	}
	if ref.ArxivID != "2403.06833" {
		t.Errorf("ArxivID = %q, want 2403.06833", ref.ArxivID)
	}
}

func TestParseNumberedEntryIdentifiersScrubbedBeforeYearSearch(t *testing.T) {
	// Without a parenthesized year, the digits of the identifier must not
	// be read as a publication year.
	raw := "[5] Carol White. Another Paper. arXiv: 2005.14165."
	ref, ok := parseNumberedEntry(raw)
	if !ok {
		t.Fatal("entry not parsed")
	}
	if ref.Year != nil {
		t.Errorf("Year = %d, want nil (identifier digits are not a year)", *ref.Year)
	}
	if ref.ArxivID != "2005.14165" {
		t.Errorf("ArxivID = %q, want 2005.14165", ref.ArxivID)
	}
	if want := "https://arxiv.org/abs/2005.14165"; ref.URL != want {
		t.Errorf("URL = %q, want synthesized %q", ref.URL, want)
	}
}

func TestParseNumberedEntryDOIAndURL(t *testing.T) {
	raw := "[6] Dana Green. A Journal Paper. Journal of Testing, 2021. https://doi.org/10.1000/ABC.DEF."
	ref, ok := parseNumberedEntry(raw)
	if !ok {
		t.Fatal("entry not parsed")
	}
	if ref.DOI != "10.1000/abc.def" {
		t.Errorf("DOI = %q, want 10.1000/abc.def", ref.DOI)
	}
	if ref.Year == nil || *ref.Year != 2021 {
		t.Errorf("Year = %v, want 2021", ref.Year)
	}
	if ref.Type != types.TypeIdentifier {
		t.Errorf("Type = %s, want %s", ref.Type, types.TypeIdentifier)
	}
}

func TestParseNumberedEntryVenueAfterIn(t *testing.T) {
	raw := "[7] Erin Black. Some Conference Paper. In Proceedings of the 10th Conference on Examples, pages 1-10, 2020."
	ref, ok := parseNumberedEntry(raw)
	if !ok {
		t.Fatal("entry not parsed")
	}
	if want := "Some Conference Paper"; ref.Title != want {
		t.Errorf("Title = %q, want %q", ref.Title, want)
	}
	if ref.Venue != "Conference on Examples" {
		t.Errorf("Venue = %q, want Conference on Examples", ref.Venue)
	}
	if ref.Year == nil || *ref.Year != 2020 {
		t.Errorf("Year = %v, want 2020", ref.Year)
	}
}

func TestParseNumberedEntryRawTextPreserved(t *testing.T) {
	raw := "[1] John Smith. A Paper. 2020."
	ref, _ := parseNumberedEntry(raw)
	if ref.RawText != raw {
		t.Errorf("RawText = %q, want %q", ref.RawText, raw)
	}
	if ref.SourceFormat != types.FormatNumbered {
		t.Errorf("SourceFormat = %s", ref.SourceFormat)
	}
}
