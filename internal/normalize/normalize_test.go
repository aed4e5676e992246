// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import "testing"

// --- Text / ConvertAccents / StripCommands ---

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text unchanged", "Deep Learning Basics", "Deep Learning Basics"},
		{"tilde becomes space", "Smith~et~al.", "Smith et al."},
		{"runs of spaces collapse", "a  \t b", "a b"},
		{"newlines survive", "line one\nline two", "line one\nline two"},
		{"braced accent", `G{\"u}nther`, "Günther"},
		{"bare accent", `Garc\'ia`, "García"},
		{"idempotent", "Günther García", "Günther García"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.in); got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripCommands(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"textbf keeps argument", `\textbf{Deep} Learning`, "Deep Learning"},
		{"emph keeps argument", `An \emph{important} result`, "An important result"},
		{"nested commands", `\mbox{\textit{nested}}`, "nested"},
		{"bare command dropped", `\newblock Title here`, "Title here"},
		{"penalty dropped", `word\penalty0 break`, "wordbreak"},
		{"comment dropped", "kept %discarded", "kept"},
		{"url escape survives comment removal", "https://x.org/a%20b", "https://x.org/a%20b"},
		{"grouping braces unwrapped", "The {BERT} Model", "The BERT Model"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCommands(tt.in); got != tt.want {
				t.Errorf("StripCommands(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// --- Diacritics / Apostrophes ---

func TestDiacritics(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"García", "Garcia"},
		{"Wawrzyński", "Wawrzynski"},
		{"Gl¨ uck", "Gluck"},
		{"Møller", "Moller"},
		{"Strauß", "Strauss"},
		{"Łukasz", "Lukasz"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := Diacritics(tt.in); got != tt.want {
			t.Errorf("Diacritics(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestApostrophes(t *testing.T) {
	if got := Apostrophes("O’Connor"); got != "O'Connor" {
		t.Errorf("Apostrophes = %q, want O'Connor", got)
	}
}

// --- identifiers ---

func TestDOI(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare doi lowercased", "10.1000/ABC", "10.1000/abc"},
		{"https prefix stripped", "https://doi.org/10.1000/abc", "10.1000/abc"},
		{"dx prefix stripped", "http://dx.doi.org/10.1000/abc", "10.1000/abc"},
		{"doi scheme stripped", "doi:10.1000/abc", "10.1000/abc"},
		{"trailing period dropped", "10.1000/abc.", "10.1000/abc"},
		{"fragment dropped", "10.1000/abc#sec2", "10.1000/abc"},
		{"query dropped", "10.1000/abc?utm=1", "10.1000/abc"},
		{"empty stays empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DOI(tt.in); got != tt.want {
				t.Errorf("DOI(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsDOI(t *testing.T) {
	if !IsDOI("https://doi.org/10.18653/v1/2023.acl-long.1") {
		t.Error("IsDOI rejected a valid DOI URL")
	}
	if IsDOI("not a doi") {
		t.Error("IsDOI accepted junk")
	}
}

func TestURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain url passes", "https://example.org/x", "https://example.org/x"},
		{"markdown link unwrapped", "[site](https://example.org/x)", "https://example.org/x"},
		{"malformed markdown passes through", "[site](https://example.org/x", "[site](https://example.org/x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := URL(tt.in); got != tt.want {
				t.Errorf("URL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestArxivIDFromURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://arxiv.org/abs/2310.12815", "2310.12815"},
		{"https://arxiv.org/pdf/2310.12815v2", "2310.12815"},
		{"https://arxiv.org/html/2403.06833", "2403.06833"},
		{"https://example.org/2310.12815", ""},
	}
	for _, tt := range tests {
		if got := ArxivIDFromURL(tt.in); got != tt.want {
			t.Errorf("ArxivIDFromURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestArxivID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"arXiv: 2310.12815 [cs.CR]", "2310.12815"},
		{"arXiv:2403.06833v1", "2403.06833"},
		{"no identifier here", ""},
	}
	for _, tt := range tests {
		if got := ArxivID(tt.in); got != tt.want {
			t.Errorf("ArxivID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// --- titles ---

func TestTitle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"pub type marker dropped", "Attention Is All You Need [J]", "Attention Is All You Need"},
		{"conference marker dropped", "Some Paper [C]", "Some Paper"},
		{"internal brackets kept", "Results on [MASK] tokens", "Results on [MASK] tokens"},
		{"whitespace collapsed", "  Two   Words ", "Two Words"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Title(tt.in); got != tt.want {
				t.Errorf("Title(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTitleKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercased", "Deep Learning", "deep learning"},
		{"trailing year dropped", "Deep Learning, 2016", "deep learning"},
		{"parenthesized year dropped", "Attention (2017)", "attention"},
		{"trailing punctuation dropped", "A Title.", "a title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TitleKey(tt.in); got != tt.want {
				t.Errorf("TitleKey(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// --- venues ---

func TestVenue(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"proceedings and ordinals stripped",
			"Proceedings of the 29th ACM SIGOPS Symposium on Operating Systems Principles",
			"Symposium on Operating Systems Principles",
		},
		{
			"editor credit stripped",
			"A. Smith and B. Jones, editors, Proceedings of the 61st Annual Meeting of the Association for Computational Linguistics",
			"Annual Meeting of the Association for Computational Linguistics",
		},
		{"plain journal unchanged", "Journal of Machine Learning Research", "Journal of Machine Learning Research"},
		{"bare proceedings yields empty", "Proceedings of the 10th", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Venue(tt.in); got != tt.want {
				t.Errorf("Venue(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestVenueKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"neurips expands", "NeurIPS", "neural information processing systems"},
		{"nips expands to same", "NIPS", "neural information processing systems"},
		{"abbreviation without final period", "Phys. Rev. Lett", "physical review letters"},
		{"year dropped", "Journal of Testing, 2020", "journal of testing"},
		{"unknown venue lowercased", "Workshop on Things", "workshop on things"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VenueKey(tt.in); got != tt.want {
				t.Errorf("VenueKey(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestVenueKeyEquivalence(t *testing.T) {
	if VenueKey("NeurIPS") != VenueKey("NIPS") {
		t.Error("NeurIPS and NIPS should reduce to the same key")
	}
}

func TestCollapseSpaces(t *testing.T) {
	if got := CollapseSpaces("  a \t b\n c  "); got != "a b c" {
		t.Errorf("CollapseSpaces = %q, want %q", got, "a b c")
	}
}
