// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DiagnosticKind is the closed set of discrepancy categories.
type DiagnosticKind string

const (
	DiagAuthor     DiagnosticKind = "author"
	DiagYear       DiagnosticKind = "year"
	DiagDOI        DiagnosticKind = "doi"
	DiagTitle      DiagnosticKind = "title"
	DiagVenue      DiagnosticKind = "venue"
	DiagURL        DiagnosticKind = "url"
	DiagArxivID    DiagnosticKind = "arxiv_id"
	DiagUnverified DiagnosticKind = "unverified"
	DiagGeneric    DiagnosticKind = "generic"
)

// DiagnosticSeverity separates hard discrepancies from advisory ones.
type DiagnosticSeverity string

const (
	SeverityError   DiagnosticSeverity = "error"
	SeverityWarning DiagnosticSeverity = "warning"
)

// Diagnostic is a structured Error or Warning describing one discrepancy
// found by a comparator. Each kind carries a fixed set of the optional
// fields below; Details always holds the rendered human-readable message.
type Diagnostic struct {
	Severity DiagnosticSeverity `json:"severity" yaml:"severity"`
	Kind     DiagnosticKind     `json:"kind" yaml:"kind"`

	// Details is the human-readable message. Mismatch kinds render a
	// three-line form: header, "cited:" line, "actual:" line.
	Details string `json:"details" yaml:"details"`

	// CorrectAuthors is set for author diagnostics: the authoritative
	// author list, comma-joined in display order.
	CorrectAuthors string `json:"correct_authors,omitempty" yaml:"correct_authors,omitempty"`

	// CorrectYear is set for year diagnostics.
	CorrectYear int `json:"correct_year,omitempty" yaml:"correct_year,omitempty"`

	// CorrectDOI is set for doi diagnostics.
	CorrectDOI string `json:"correct_doi,omitempty" yaml:"correct_doi,omitempty"`

	// CorrectTitle is set for title diagnostics.
	CorrectTitle string `json:"correct_title,omitempty" yaml:"correct_title,omitempty"`

	// CorrectVenue is set for venue diagnostics.
	CorrectVenue string `json:"correct_venue,omitempty" yaml:"correct_venue,omitempty"`

	// CorrectURL is set for url diagnostics when a correct URL is known.
	CorrectURL string `json:"correct_url,omitempty" yaml:"correct_url,omitempty"`

	// CorrectArxivID is set for arxiv_id diagnostics.
	CorrectArxivID string `json:"correct_arxiv_id,omitempty" yaml:"correct_arxiv_id,omitempty"`

	// Extra carries kind-specific fields for generic diagnostics.
	Extra map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// IsError reports whether the diagnostic is a hard discrepancy.
func (d Diagnostic) IsError() bool { return d.Severity == SeverityError }
