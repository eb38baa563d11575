// Package search scores file names against a typed query.
package search

import (
	"unicode"
)

// ExactScore is returned when the query equals the name, ranking it first.
const ExactScore = 1000.0

// MatchSpan represents the inclusive [Start, End] range of a match in rune indexes.
type MatchSpan struct {
	Start int
	End   int
}

// Match is a scored hit.
type Match struct {
	Score float64
	Spans []MatchSpan
}

// Matcher performs fuzzy pattern matching
// Scoring:
//   - every matched character: +charBonus
//   - character right after the previous match: +consecutiveBonus
//   - character at a word boundary (start, after separator, camelCase): +wordBoundaryBonus
//   - match starting at the first character: +prefixBonus
//   - each skipped character between matches: -gapPenalty
//
// Lowercase queries match case-insensitively; a query with an uppercase letter
// is matched as typed.
type Matcher struct {
	minScore          float64
	charBonus         float64
	consecutiveBonus  float64
	wordBoundaryBonus float64
	prefixBonus       float64
	gapPenalty        float64
}

// NewMatcher creates a matcher with default settings
func NewMatcher() *Matcher {
	return &Matcher{
		minScore:          2.0,
		charBonus:         1.2,
		consecutiveBonus:  1.2,
		wordBoundaryBonus: 0.6,
		prefixBonus:       2.4,
		gapPenalty:        0.18,
	}
}

// WithMinScore returns a copy that rejects matches scoring below min.
func (m *Matcher) WithMinScore(min float64) *Matcher {
	c := *m
	c.minScore = min
	return &c
}

// Match scores query against name. ok is false when some query character is
// missing or the score is below the minimum.
func (m *Matcher) Match(query, name string) (Match, bool) {
	if query == "" {
		return Match{Score: 0}, true
	}

	fold := !hasUppercase(query)
	pattern := toRunes(query, fold)
	text := toRunes(name, fold)

	if string(pattern) == string(text) {
		return Match{Score: ExactScore, Spans: []MatchSpan{{Start: 0, End: len(text) - 1}}}, true
	}

	if idx := indexRunes(text, pattern); idx >= 0 {
		score := float64(len(pattern))*m.charBonus + float64(len(pattern)-1)*m.consecutiveBonus
		if idx == 0 {
			score += m.prefixBonus
		}
		if isWordBoundary(text, idx) {
			score += m.wordBoundaryBonus
		}
		span := []MatchSpan{{Start: idx, End: idx + len(pattern) - 1}}
		return m.accept(Match{Score: score, Spans: span})
	}

	var (
		score float64
		spans []MatchSpan
		last  = -1
	)
	pi := 0
	for ti := 0; ti < len(text) && pi < len(pattern); ti++ {
		if text[ti] != pattern[pi] {
			continue
		}
		score += m.charBonus
		switch {
		case last == -1 && ti == 0:
			score += m.prefixBonus
		case last >= 0 && ti == last+1:
			score += m.consecutiveBonus
		case last >= 0:
			score -= float64(ti-last-1) * m.gapPenalty
		}
		if isWordBoundary(text, ti) {
			score += m.wordBoundaryBonus
		}
		spans = append(spans, MatchSpan{Start: ti, End: ti})
		last = ti
		pi++
	}
	if pi < len(pattern) {
		return Match{}, false
	}
	return m.accept(Match{Score: score, Spans: MergeMatchSpans(spans)})
}

func (m *Matcher) accept(match Match) (Match, bool) {
	if match.Score < m.minScore {
		return Match{}, false
	}
	return match, true
}

// MergeMatchSpans joins adjacent or overlapping spans. Input must be sorted.
func MergeMatchSpans(spans []MatchSpan) []MatchSpan {
	if len(spans) == 0 {
		return nil
	}
	merged := make([]MatchSpan, 0, len(spans))
	current := spans[0]
	for i := 1; i < len(spans); i++ {
		next := spans[i]
		if next.Start <= current.End+1 {
			if next.End > current.End {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	merged = append(merged, current)
	return merged
}

func hasUppercase(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func toRunes(s string, fold bool) []rune {
	out := []rune(s)
	if fold {
		for i, r := range out {
			out[i] = unicode.ToLower(r)
		}
	}
	return out
}

func indexRunes(haystack, needle []rune) int {
	n := len(needle)
	for i := 0; i+n <= len(haystack); i++ {
		match := true
		for j := 0; j < n; j++ {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func isWordBoundary(text []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	prev := text[idx-1]
	curr := text[idx]
	switch prev {
	case '/', '\\', '-', '_', ' ', '.', ':':
		return true
	}
	if !unicode.IsLetter(prev) && unicode.IsLetter(curr) {
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(curr)
}
