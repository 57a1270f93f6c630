package fuzzy

import (
	"strings"
	"unicode/utf8"
)

// matchAll returns every valid alignment of query inside candidate,
// each with its score. A nil return means no match.
func (m *Matcher) matchAll(query, candidate string) []Match {
	if query == "" {
		return nil
	}
	if !m.options.CaseSensitive {
		query = strings.ToLower(query)
		candidate = strings.ToLower(candidate)
	}

	if utf8.RuneCountInString(query) == 1 {
		qr, _ := utf8.DecodeRuneInString(query)
		return matchSingleRune(qr, []rune(candidate), m.mode)
	}

	candRunes := []rune(candidate)

	// Membership pre-check: every query rune must occur somewhere in
	// the candidate before the combinatorial search is worth starting.
	charSet := make(map[rune]struct{}, len(candRunes))
	for _, r := range candRunes {
		charSet[r] = struct{}{}
	}
	for _, r := range query {
		if _, ok := charSet[r]; !ok {
			return nil
		}
	}

	queryRunes := []rune(query)
	positions, ok := letterPositions(queryRunes, candRunes)
	if !ok {
		return nil
	}

	first := firstLetters(candRunes, m.mode)

	var matches []Match
	enumerate(positions, len(queryRunes), nil, 0, func(alignment []int) {
		matches = append(matches, Match{
			Score:     scorePositions(alignment, first),
			Positions: alignment,
		})
	})
	return matches
}

// letterPositions finds, for each query rune, the candidate indices at
// which it occurs. The search for rune i starts one past the first
// occurrence recorded for rune i-1, and stops once too few candidate
// runes remain to place the rest of the query. An empty list for any
// rune fails the whole match.
func letterPositions(queryRunes, candRunes []rune) ([][]int, bool) {
	positions := make([][]int, 0, len(queryRunes))
	cursor := 0
	for offset, qr := range queryRunes {
		lastIndex := len(candRunes) - offset
		var occ []int
		for i := cursor; i < len(candRunes); i++ {
			if candRunes[i] == qr {
				occ = append(occ, i)
				if i+1 >= lastIndex {
					break
				}
			}
		}
		if len(occ) == 0 {
			return nil, false
		}
		positions = append(positions, occ)
		cursor = occ[0] + 1
	}
	return positions, true
}

// enumerate emits every strictly-increasing choice of one index per
// position list. Exhaustive backtracking: combinatorial in the worst
// case, which is the accepted cost of comparing all alignments.
func enumerate(positions [][]int, queryLen int, prefix []int, depth int, emit func([]int)) {
	for _, off := range positions[depth] {
		if len(prefix) > 0 && off <= prefix[len(prefix)-1] {
			continue
		}
		next := make([]int, len(prefix)+1)
		copy(next, prefix)
		next[len(prefix)] = off
		if len(next) == queryLen {
			emit(next)
		} else {
			enumerate(positions, queryLen, next, depth+1, emit)
		}
	}
}

// bestMatch folds alignments down to the single highest score, keeping
// the first alignment encountered on ties so single-pair matching is
// deterministic.
func bestMatch(matches []Match) Match {
	var best Match
	for i, candidate := range matches {
		if i == 0 || candidate.Score > best.Score {
			best = candidate
		}
	}
	return best
}
