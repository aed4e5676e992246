// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SourceFormat identifies which bibliography grammar produced a Reference.
type SourceFormat string

const (
	FormatKeyedFields SourceFormat = "keyed_fields"
	FormatNumbered    SourceFormat = "numbered_list"
	FormatAuthorYear  SourceFormat = "author_year_list"
)

// ReferenceType classifies a reference by the identifier it carries.
type ReferenceType string

const (
	TypeArxiv      ReferenceType = "arxiv"
	TypeIdentifier ReferenceType = "identifier"
	TypeOther      ReferenceType = "other"
)

// EtAl is the distinguished author token marking a truncated author list.
// It may only appear once, in the final position of Reference.Authors.
const EtAl = "et al"

// Reference is one parsed bibliography entry. Missing fields are the zero
// value: empty string, nil slice, or nil Year. Placeholder words such as
// "Unknown" are never stored, so comparators cannot match two absent values.
type Reference struct {
	// EntryNumber is the bracketed index for numbered entries, 0 when absent.
	EntryNumber int `json:"entry_number,omitempty" yaml:"entry_number,omitempty"`

	// CitationKey is the BibTeX key for keyed entries (e.g. "smith2020").
	CitationKey string `json:"citation_key,omitempty" yaml:"citation_key,omitempty"`

	// Title is the cited work's title.
	Title string `json:"title" yaml:"title"`

	// Authors lists author tokens in source order; the last may be EtAl.
	Authors []string `json:"authors" yaml:"authors"`

	// Year is the 4-digit publication year, nil when not found.
	Year *int `json:"year,omitempty" yaml:"year,omitempty"`

	// Venue is the journal, conference, or publisher.
	Venue string `json:"venue" yaml:"venue"`

	// DOI is the digital object identifier, empty when absent.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// URL points at the cited resource, empty when absent.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// ArxivID is the externally assigned preprint identifier (e.g. "2310.12815").
	ArxivID string `json:"arxiv_id,omitempty" yaml:"arxiv_id,omitempty"`

	// RawText is the entry exactly as it appeared in the manuscript.
	RawText string `json:"raw_text" yaml:"raw_text"`

	// SourceFormat records which grammar parsed this entry.
	SourceFormat SourceFormat `json:"source_format" yaml:"source_format"`

	// Type classifies the entry by its identifier.
	Type ReferenceType `json:"type" yaml:"type"`
}

// YearOf is a convenience constructor for Reference.Year literals.
func YearOf(y int) *int { return &y }

// Segment is the slice of manuscript text identified as the reference list.
// Immutable once produced; an empty Text means no bibliography was found.
type Segment struct {
	// Start is the byte offset of the segment within the full text.
	Start int `json:"start" yaml:"start"`

	// End is the byte offset just past the segment.
	End int `json:"end" yaml:"end"`

	// Text is the raw segment content.
	Text string `json:"text" yaml:"text"`
}

// Empty reports whether no bibliography section was located.
func (s Segment) Empty() bool { return s.Text == "" }

// QualityReport scores a parsed batch of references.
type QualityReport struct {
	// Score is the fraction of entries with no detected pathology.
	Score float64 `json:"score" yaml:"score"`

	// Issues describes each flagged entry.
	Issues []string `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// Valid reports whether the batch is trustworthy enough to keep. The
// threshold is strictly greater-than: a score of exactly 0.70 fails and
// the caller must re-route to the fallback extractor.
func (q QualityReport) Valid() bool { return q.Score > 0.70 }

// Citation is one in-text citation occurrence.
type Citation struct {
	// Key is the normalized citation key (e.g. "smith_2020" or a \cite key).
	Key string `json:"key" yaml:"key"`

	// Raw is the citation text as matched in the manuscript.
	Raw string `json:"raw" yaml:"raw"`
}

// CrossCheckReport relates in-text citation keys to bibliography keys.
type CrossCheckReport struct {
	TotalCitations      int      `json:"total_citations" yaml:"total_citations"`
	TotalReferences     int      `json:"total_references" yaml:"total_references"`
	MissingInReferences []string `json:"missing_in_references" yaml:"missing_in_references"`
	UnusedInText        []string `json:"unused_in_text" yaml:"unused_in_text"`
}

// ParseResult is the complete output of one parse pass over a manuscript.
type ParseResult struct {
	// Segment is the located bibliography slice.
	Segment Segment `json:"segment" yaml:"segment"`

	// Format is the grammar the classifier selected, empty when none matched.
	Format SourceFormat `json:"format,omitempty" yaml:"format,omitempty"`

	// References are the parsed, normalized, deduplicated entries.
	References []Reference `json:"references" yaml:"references"`

	// Citations are the in-text citation keys, in order of first occurrence.
	Citations []Citation `json:"citations" yaml:"citations"`

	// Quality scores the reference batch.
	Quality QualityReport `json:"quality" yaml:"quality"`

	// CrossCheck relates citations to references.
	CrossCheck CrossCheckReport `json:"cross_check" yaml:"cross_check"`
}
