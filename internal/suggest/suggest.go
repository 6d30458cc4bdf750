// Package suggest proposes close matches for mistyped identifiers.
package suggest

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

const maxSuggestions = 3

// IDs returns up to three candidates close to input, best first. Candidates
// that contain input's characters in order win; otherwise candidates within a
// small edit distance are returned.
func IDs(input string, candidates []string) []string {
	if input == "" || len(candidates) == 0 {
		return nil
	}

	var out []string
	for _, m := range fuzzy.Find(input, candidates) {
		out = append(out, m.Str)
		if len(out) == maxSuggestions {
			return out
		}
	}
	if len(out) > 0 {
		return out
	}

	type scored struct {
		id   string
		dist int
	}
	threshold := max(2, len(input)/3)
	var hits []scored
	for _, c := range candidates {
		if d := levenshtein(input, c); d <= threshold {
			hits = append(hits, scored{c, d})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })

	for _, h := range hits {
		out = append(out, h.id)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

// Hint formats suggestions for an error message. It returns "" when there
// are none.
func Hint(suggestions []string) string {
	if len(suggestions) == 0 {
		return ""
	}
	return " (did you mean " + strings.Join(suggestions, ", ") + "?)"
}

// levenshtein returns the edit distance between a and b.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
