// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pi-test-apps/refchecker-app/internal/authors"
	"github.com/pi-test-apps/refchecker-app/internal/normalize"
	"github.com/pi-test-apps/refchecker-app/pkg/types"
)

var (
	keyedHeaderRe = regexp.MustCompile(`^@([A-Za-z]+)\s*\{\s*([^,\s]*)\s*,?`)
	fieldNameRe   = regexp.MustCompile(`^\s*([A-Za-z][A-Za-z_-]*)\s*=\s*`)
	hostDOIRe     = regexp.MustCompile(`^10\.\d{4,9}/\S+$`)
	urlCommandRe  = regexp.MustCompile(`\\url\{([^}]*)\}`)
)

// parseKeyedEntry extracts one @type{key, name = value, ...} entry. It
// returns false for entries whose body cannot be read at all.
func parseKeyedEntry(raw string) (types.Reference, bool) {
	ref := types.Reference{RawText: raw, SourceFormat: types.FormatKeyedFields}

	m := keyedHeaderRe.FindStringSubmatchIndex(raw)
	if m == nil {
		return ref, false
	}
	entryType := strings.ToLower(raw[m[2]:m[3]])
	ref.CitationKey = raw[m[4]:m[5]]

	body := raw[m[1]:]
	if end := strings.LastIndexByte(body, '}'); end >= 0 {
		body = body[:end]
	}
	fields := parseKeyedFields(body)

	ref.Title = normalize.Title(normalize.StripCommands(unwrapValue(fields["title"])))
	if a := fields["author"]; a != "" {
		ref.Authors = authors.Parse(normalize.Text(unwrapValue(a)))
	}
	if y, ok := parseYearField(fields["year"]); ok {
		ref.Year = types.YearOf(y)
	}

	// journal wins over booktitle when both are present.
	venue := unwrapValue(fields["journal"])
	if venue == "" {
		venue = unwrapValue(fields["booktitle"])
	}
	ref.Venue = normalize.Venue(normalize.Text(venue))

	ref.DOI = normalize.DOI(unwrapValue(fields["doi"]))
	ref.URL = normalize.URL(unwrapValue(fields["url"]))

	if hp := unwrapValue(fields["howpublished"]); hp != "" {
		applyHowPublished(&ref, hp)
	}
	if ref.URL == "" {
		ref.URL = normalize.URL(unwrapValue(fields["note"]))
		if !strings.HasPrefix(ref.URL, "http") {
			ref.URL = ""
		}
	}

	if ep := unwrapValue(fields["eprint"]); ep != "" {
		ref.ArxivID = strings.TrimPrefix(strings.TrimSpace(ep), "arXiv:")
	}
	if ref.ArxivID == "" && ref.URL != "" {
		ref.ArxivID = normalize.ArxivIDFromURL(ref.URL)
	}

	ref.Type = classifyReference(&ref, entryType)

	if ref.Title == "" && len(ref.Authors) == 0 && ref.URL != "" {
		deriveWebResource(&ref)
	}
	return ref, true
}

// parseKeyedFields scans name = value pairs. Values are brace-balanced
// groups, quoted strings, or bare words; commas inside braces or quotes do
// not terminate a value.
func parseKeyedFields(body string) map[string]string {
	fields := make(map[string]string)
	rest := body
	for {
		rest = strings.TrimLeft(rest, ", \t\r\n")
		m := fieldNameRe.FindStringSubmatch(rest)
		if m == nil {
			return fields
		}
		name := strings.ToLower(m[1])
		rest = rest[len(m[0]):]

		value, next := scanFieldValue(rest)
		if _, seen := fields[name]; !seen {
			fields[name] = value
		}
		if next >= len(rest) {
			return fields
		}
		rest = rest[next:]
	}
}

// scanFieldValue consumes one field value and returns it with the offset
// of the first byte after it.
func scanFieldValue(s string) (string, int) {
	if s == "" {
		return "", 0
	}
	switch s[0] {
	case '{':
		depth := 0
		for i := 0; i < len(s); i++ {
			switch s[i] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return s[:i+1], i + 1
				}
			}
		}
		return s, len(s)
	case '"':
		for i := 1; i < len(s); i++ {
			if s[i] == '"' && s[i-1] != '\\' {
				return s[:i+1], i + 1
			}
		}
		return s, len(s)
	default:
		i := strings.IndexAny(s, ",\n}")
		if i < 0 {
			return strings.TrimSpace(s), len(s)
		}
		return strings.TrimSpace(s[:i]), i
	}
}

// unwrapValue strips one wrapping layer of braces or quotes and collapses
// internal whitespace. Inner braces protecting case are removed as markup
// by the text normalizer, so only the outermost layer is handled here.
func unwrapValue(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 2 {
		if (v[0] == '{' && v[len(v)-1] == '}') || (v[0] == '"' && v[len(v)-1] == '"') {
			v = v[1 : len(v)-1]
		}
	}
	return normalize.CollapseSpaces(strings.ReplaceAll(v, "\n", " "))
}

func parseYearField(v string) (int, bool) {
	v = strings.TrimSpace(unwrapValue(v))
	y, err := strconv.Atoi(v)
	if err != nil || y < 1000 || y > 2999 {
		return 0, false
	}
	return y, true
}

// applyHowPublished reads a howpublished field, which in practice holds a
// URL, a markdown link, or a \url command.
func applyHowPublished(ref *types.Reference, hp string) {
	hp = strings.TrimSpace(hp)
	if m := urlCommandRe.FindStringSubmatch(hp); m != nil {
		hp = m[1]
	}
	u := normalize.URL(hp)
	if strings.HasPrefix(u, "http") && ref.URL == "" {
		ref.URL = u
	}
}

func classifyReference(ref *types.Reference, entryType string) types.ReferenceType {
	// Link-less arXiv entries get the canonical abstract URL.
	if ref.ArxivID != "" && ref.URL == "" {
		ref.URL = normalize.ArxivAbsURL(ref.ArxivID)
	}
	switch {
	case ref.ArxivID != "" || strings.Contains(ref.URL, "arxiv.org"):
		return types.TypeArxiv
	case hostDOIRe.MatchString(ref.DOI):
		return types.TypeIdentifier
	case entryType == "misc" && ref.URL != "":
		return types.TypeOther
	default:
		return types.TypeOther
	}
}

// deriveWebResource fills author and title for link-only entries from the
// URL host so they survive quality assessment.
func deriveWebResource(ref *types.Reference) {
	host := ref.URL
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")
	host = strings.TrimPrefix(host, "www.")
	if i := strings.IndexByte(host, '/'); i >= 0 {
		host = host[:i]
	}
	name := "Web Resource"
	switch {
	case strings.HasSuffix(host, "huggingface.co"):
		name = "Hugging Face"
	case strings.HasSuffix(host, "github.com"):
		name = "GitHub"
	case host != "":
		if i := strings.IndexByte(host, '.'); i > 0 {
			name = strings.ToUpper(host[:1]) + host[1:i]
		}
	}
	ref.Authors = []string{name}
	if ref.Title == "" {
		ref.Title = ref.URL
	}
}
