// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"

	"github.com/pi-test-apps/refchecker-app/internal/normalize"
	"github.com/pi-test-apps/refchecker-app/pkg/types"
)

// Deduplicate removes later occurrences of references already seen. Two
// references are the same work when their title keys agree, or when their
// author lists overlap by at least half and their titles do not disagree.
// The first occurrence is kept, so entry numbers stay stable.
func Deduplicate(refs []types.Reference) []types.Reference {
	out := make([]types.Reference, 0, len(refs))
	for _, ref := range refs {
		dup := false
		for i := range out {
			if sameWork(&out[i], &ref) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, ref)
		}
	}
	return out
}

func sameWork(a, b *types.Reference) bool {
	at, bt := normalize.TitleKey(a.Title), normalize.TitleKey(b.Title)
	if at != "" && at == bt {
		return true
	}
	if !titlesCompatible(at, bt) {
		return false
	}
	return authorOverlap(a.Authors, b.Authors) >= 0.5
}

// titlesCompatible holds when the titles could describe the same work: one
// contains the other, or one side has no title at all. Distinct titles by
// the same authors stay separate entries.
func titlesCompatible(at, bt string) bool {
	if at == "" || bt == "" {
		return true
	}
	return strings.Contains(at, bt) || strings.Contains(bt, at)
}

// authorOverlap measures how much of the smaller author list reappears in
// the larger one, comparing case-folded name tokens by containment so
// initials still count toward their full names.
func authorOverlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	matched := 0
	for _, s := range small {
		sk := authorKey(s)
		if sk == "" {
			continue
		}
		for _, l := range large {
			lk := authorKey(l)
			if lk == "" {
				continue
			}
			if strings.Contains(lk, sk) || strings.Contains(sk, lk) || sharesSurname(sk, lk) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(small))
}

func authorKey(name string) string {
	return strings.ToLower(normalize.CollapseSpaces(strings.TrimSpace(name)))
}

// sharesSurname treats the final token of each key as the surname.
func sharesSurname(a, b string) bool {
	return lastToken(a) != "" && lastToken(a) == lastToken(b)
}

func lastToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[len(fields)-1], ".,")
}
