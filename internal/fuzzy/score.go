package fuzzy

import "unicode"

// firstLetters returns the set of candidate indices eligible for the
// first-letter scoring boost under the given mode.
func firstLetters(candRunes []rune, mode ScoringMode) map[int]struct{} {
	if mode == ModePath {
		return firstLettersPath(candRunes)
	}
	return firstLettersDefault(candRunes)
}

// firstLettersDefault marks the start of each maximal alphanumeric run.
func firstLettersDefault(candRunes []rune) map[int]struct{} {
	first := make(map[int]struct{})
	inWord := false
	for i, r := range candRunes {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			if !inWord {
				first[i] = struct{}{}
				inWord = true
			}
		} else {
			inWord = false
		}
	}
	return first
}

// firstLettersPath marks index 0 and every index following a '/'.
func firstLettersPath(candRunes []rune) map[int]struct{} {
	first := make(map[int]struct{})
	if len(candRunes) > 0 {
		first[0] = struct{}{}
	}
	for i := 1; i < len(candRunes); i++ {
		if candRunes[i-1] == '/' {
			first[i] = struct{}{}
		}
	}
	return first
}

// scorePositions scores one alignment. With m matched runes, f
// first-letter hits and g the contiguity ratio in (0, 1], the score is
// (m + f) * (1 + g*g): fully contiguous alignments double their base.
func scorePositions(positions []int, first map[int]struct{}) float64 {
	if len(positions) == 0 {
		return 0
	}

	matched := len(positions)
	boosted := 0
	for _, p := range positions {
		if _, ok := first[p]; ok {
			boosted++
		}
	}

	groups := 1
	for i := 1; i < len(positions); i++ {
		if positions[i] != positions[i-1]+1 {
			groups++
		}
	}

	contiguity := float64(matched-(groups-1)) / float64(matched)
	return float64(matched+boosted) * (1 + contiguity*contiguity)
}

// Single-rune queries score on a fixed scale, not the general formula:
// a boosted occurrence scores 4.0 where the formula would give 2.0.
// Consumers sort on these values; do not unify the two scales.
const (
	singleRuneScore        = 1.0
	singleRuneBoostedScore = 4.0
)

// matchSingleRune is the fast path for one-rune queries: every
// occurrence is its own single-position alignment.
func matchSingleRune(qr rune, candRunes []rune, mode ScoringMode) []Match {
	first := firstLetters(candRunes, mode)

	var matches []Match
	for i, r := range candRunes {
		if r != qr {
			continue
		}
		score := singleRuneScore
		if _, ok := first[i]; ok {
			score = singleRuneBoostedScore
		}
		matches = append(matches, Match{Score: score, Positions: []int{i}})
	}
	return matches
}
