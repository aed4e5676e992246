// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pi-test-apps/refchecker-app/pkg/types"
)

var (
	leftoverMarkupRe = regexp.MustCompile(`[\\{}]|\$[^$]*\$`)
	truncatedSpanRe  = regexp.MustCompile(`\d+[-\x{2013}]$`)
	anyDigitRe       = regexp.MustCompile(`\d`)
)

// AssessQuality scores how well a batch of references survived extraction.
// The score is the fraction of entries with no detected pathology; a batch
// must clear the validity threshold before its results are trusted.
func AssessQuality(refs []types.Reference) types.QualityReport {
	report := types.QualityReport{Score: 1}
	if len(refs) == 0 {
		report.Score = 0
		report.Issues = append(report.Issues, "no references extracted")
		return report
	}

	flagged := 0
	for i := range refs {
		issues := entryIssues(&refs[i])
		if len(issues) == 0 {
			continue
		}
		flagged++
		label := entryLabel(&refs[i], i)
		for _, issue := range issues {
			report.Issues = append(report.Issues, fmt.Sprintf("%s: %s", label, issue))
		}
	}
	report.Score = 1 - float64(flagged)/float64(len(refs))
	return report
}

// entryIssues lists the pathologies of a single parsed entry.
func entryIssues(ref *types.Reference) []string {
	var issues []string
	title := strings.TrimSpace(ref.Title)
	if title == "" {
		issues = append(issues, "missing title")
	}
	if len(ref.Authors) == 0 {
		issues = append(issues, "missing authors")
	}
	if leftoverMarkupRe.MatchString(ref.Title) {
		issues = append(issues, "markup residue in title")
	}
	for _, a := range ref.Authors {
		if leftoverMarkupRe.MatchString(a) {
			issues = append(issues, "markup residue in author "+a)
			break
		}
	}
	if truncatedSpanRe.MatchString(title) {
		issues = append(issues, "title ends mid numeric range")
	}
	if ref.DOI != "" && !anyDigitRe.MatchString(ref.DOI) {
		issues = append(issues, "digitless doi")
	}
	if ref.ArxivID != "" && !anyDigitRe.MatchString(ref.ArxivID) {
		issues = append(issues, "digitless arxiv id")
	}
	return issues
}

func entryLabel(ref *types.Reference, index int) string {
	switch {
	case ref.EntryNumber > 0:
		return fmt.Sprintf("entry [%d]", ref.EntryNumber)
	case ref.CitationKey != "":
		return "entry " + ref.CitationKey
	default:
		return fmt.Sprintf("entry %d", index+1)
	}
}
