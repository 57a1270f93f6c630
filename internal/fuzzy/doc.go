// Package fuzzy implements fuzzy subsequence matching with
// boundary-aware scoring.
//
// A query matches a candidate when every query rune appears in the
// candidate in order, not necessarily contiguously. Unlike greedy
// matchers, the engine enumerates every valid alignment of the query
// inside the candidate and keeps the best-scoring one, so a match
// broken across word boundaries never hides a better contiguous match
// later in the string.
//
// # Scoring
//
// An alignment of m runes with f first-letter hits and a contiguity
// ratio g in (0, 1] scores (m + f) * (1 + g*g). First-letter positions
// depend on the scoring mode: the start of each alphanumeric word in
// the default mode, or index 0 and each position after '/' in path
// mode. Single-rune queries take a fast path with its own fixed scale.
//
// # Usage
//
//	matcher := fuzzy.NewMatcher(fuzzy.Options{PathMode: true})
//	result := matcher.Match("fb", "src/foo_bar.go")
//	if result.Score > 0 {
//	    fmt.Println(result.Positions) // rune indices of the match
//	}
//
// Batches funnel through MatchBatch (index-aligned results) or
// MatchTopK (bounded-heap best-k selection). Both consult the
// matcher's memo cache and fan out across workers for large inputs.
// For repeated searches over a fixed path set, Index adds a trigram
// prefilter in front of MatchTopK.
//
// # Positions
//
// All positions are rune indices, never byte offsets, so multi-byte
// characters do not corrupt offsets.
//
// # Performance
//
// The alignment enumeration is a backtracking search that is
// combinatorial in the degree of letter repetition; pathological
// candidates can blow it up. The character-set pre-check and the
// top-K prefilters mitigate this but do not bound it.
package fuzzy
