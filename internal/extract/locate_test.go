// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"
	"testing"

	"github.com/pi-test-apps/refchecker-app/pkg/types"
)

// --- Locate ---

func TestLocate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantText string
		wantNone bool
	}{
		{
			name:     "markdown heading",
			text:     "# Intro\n\nBody text.\n\n## References\n\n[1] John Smith. A Paper. 2020.",
			wantText: "[1] John Smith. A Paper. 2020.",
		},
		{
			name:     "heading with colon",
			text:     "Body.\n\nReferences:\n[1] John Smith. A Paper. 2020.",
			wantText: "[1] John Smith. A Paper. 2020.",
		},
		{
			name:     "bibliography heading",
			text:     "Body.\n\nBibliography\n[1] John Smith. A Paper. 2020.",
			wantText: "[1] John Smith. A Paper. 2020.",
		},
		{
			name:     "mention in prose does not match",
			text:     "We list references below for context.\n\nNo heading follows.",
			wantNone: true,
		},
		{
			name: "last heading wins",
			text: "References\n\nSee section 5.\n\n## References\n\n[1] John Smith. A Paper. 2020.",
			// Only the material after the second heading is kept.
			wantText: "[1] John Smith. A Paper. 2020.",
		},
		{
			name:     "no heading at all",
			text:     "Just some body text with [1] inline.",
			wantNone: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seg := Locate(tt.text)
			if tt.wantNone {
				if !seg.Empty() {
					t.Fatalf("expected empty segment, got %q", seg.Text)
				}
				return
			}
			if seg.Empty() {
				t.Fatal("expected a segment, got none")
			}
			if strings.TrimSpace(seg.Text) != tt.wantText {
				t.Errorf("segment text = %q, want %q", seg.Text, tt.wantText)
			}
		})
	}
}

func TestLocateOffsetsAgreeWithText(t *testing.T) {
	text := "Intro.\n\n## References\n\n[1] John Smith. A Paper. 2020.\n[2] Alice Doe. Another. 2021."
	seg := Locate(text)
	if seg.Empty() {
		t.Fatal("no segment located")
	}
	if text[seg.Start:seg.End] != seg.Text {
		t.Errorf("text[%d:%d] = %q, want %q", seg.Start, seg.End, text[seg.Start:seg.End], seg.Text)
	}
}

func TestLocateStopsAtAppendixHeading(t *testing.T) {
	text := strings.Join([]string{
		"## References",
		"[1] John Smith. A Paper. 2020.",
		"[2] Alice Doe. Another Paper. 2021.",
		"",
		"A Appendix Details",
		"This appendix describes the experimental setup in prose.",
	}, "\n")

	seg := Locate(text)
	if seg.Empty() {
		t.Fatal("no segment located")
	}
	if strings.Contains(seg.Text, "Appendix Details") {
		t.Errorf("segment includes appendix heading: %q", seg.Text)
	}
	if !strings.Contains(seg.Text, "[2] Alice Doe") {
		t.Errorf("segment lost the last entry: %q", seg.Text)
	}
}

func TestLocateEntryShapedLineNeverEndsSegment(t *testing.T) {
	// "C Evaluation Details" is heading-shaped, but the next line is
	// another reference, so the list continues.
	text := strings.Join([]string{
		"## References",
		"[1] John Smith. A Paper. 2020.",
		"C Evaluation Details",
		"[2] Alice Doe. Another Paper. 2021.",
	}, "\n")

	seg := Locate(text)
	if !strings.Contains(seg.Text, "[2] Alice Doe") {
		t.Errorf("segment truncated at heading-shaped line: %q", seg.Text)
	}
}

// --- Classify ---

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		want     types.SourceFormat
		wantNone bool
	}{
		{
			name: "keyed fields",
			text: "@article{smith2020,\n  title = {A Paper},\n}",
			want: types.FormatKeyedFields,
		},
		{
			name: "numbered list",
			text: "[1] John Smith. A Paper. 2020.\n[2] Alice Doe. Another. 2021.",
			want: types.FormatNumbered,
		},
		{
			name: "author year with parenthesized year",
			text: "Smith, J. (2020). A Paper. Journal of Testing.",
			want: types.FormatAuthorYear,
		},
		{
			name: "author year with sentence year",
			text: "John Smith and Alice Doe. 2024. A Paper. Journal of Testing.",
			want: types.FormatAuthorYear,
		},
		{
			name: "keyed outranks numbered",
			text: "@misc{x,\n url = {https://example.org},\n}\n[1] John Smith. A Paper. 2020.",
			want: types.FormatKeyedFields,
		},
		{
			name:     "prose only",
			text:     "no entries of any recognizable shape here",
			wantNone: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, ok := Classify(types.Segment{Text: tt.text, End: len(tt.text)})
			if tt.wantNone {
				if ok {
					t.Fatalf("expected no format, got %s", format)
				}
				return
			}
			if !ok {
				t.Fatal("expected a format, got none")
			}
			if format != tt.want {
				t.Errorf("format = %s, want %s", format, tt.want)
			}
		})
	}
}

func TestClassifyEmptySegment(t *testing.T) {
	if _, ok := Classify(types.Segment{}); ok {
		t.Error("empty segment classified")
	}
}
