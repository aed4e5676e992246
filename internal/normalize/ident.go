// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"regexp"
	"strings"
)

var (
	markdownLinkRe = regexp.MustCompile(`^\[[^\]]*\]\(([^)\s]+)\)$`)

	arxivURLRe = regexp.MustCompile(`arxiv\.org/(?:abs|pdf|html)/(\d{4}\.\d{4,5})(?:v\d+)?`)
	arxivIDRe  = regexp.MustCompile(`(\d{4}\.\d{4,5})`)
	doiRe      = regexp.MustCompile(`^10\.\d{4,9}/\S+$`)
)

// DOI canonicalizes a digital object identifier for comparison: the
// doi:/https prefix is removed, the identifier is case-folded, and
// trailing punctuation, fragment, and query suffixes are dropped.
// An empty input stays empty.
func DOI(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	lower := strings.ToLower(s)
	for _, prefix := range []string{"https://doi.org/", "http://doi.org/", "https://dx.doi.org/", "http://dx.doi.org/", "doi:"} {
		if strings.HasPrefix(lower, prefix) {
			s = s[len(prefix):]
			break
		}
	}
	if i := strings.IndexAny(s, "#?"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimRight(s, ".,;")
	return strings.ToLower(s)
}

// IsDOI reports whether s looks like a bare DOI after normalization.
func IsDOI(s string) bool {
	return doiRe.MatchString(DOI(s))
}

// URL cleans a URL field value. A markdown-style "[text](url)" wrapper is
// unwrapped to its parenthesized URL; anything else, including malformed
// or incomplete markdown, passes through unchanged.
func URL(s string) string {
	s = strings.TrimSpace(s)
	if m := markdownLinkRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

// ArxivIDFromURL extracts the preprint identifier from an arXiv URL
// (abs, pdf, or html form; a trailing version suffix is dropped). Returns
// an empty string when the URL is not an arXiv link.
func ArxivIDFromURL(url string) string {
	m := arxivURLRe.FindStringSubmatch(strings.ToLower(url))
	if m == nil {
		return ""
	}
	return m[1]
}

// ArxivID extracts a modern arXiv identifier (NNNN.NNNNN) from free text
// such as "arXiv: 2310.12815 [cs.CR]".
func ArxivID(s string) string {
	lower := strings.ToLower(s)
	i := strings.Index(lower, "arxiv")
	if i < 0 {
		return ""
	}
	m := arxivIDRe.FindStringSubmatch(s[i:])
	if m == nil {
		return ""
	}
	return m[1]
}

// ArxivAbsURL renders the canonical abstract URL for an arXiv identifier.
func ArxivAbsURL(id string) string {
	return "https://arxiv.org/abs/" + id
}
