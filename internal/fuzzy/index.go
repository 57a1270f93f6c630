package fuzzy

import (
	"sort"
	"strings"
	"sync"
	"unicode/utf8"
)

const (
	// shortQueryCap bounds the substring fallback used for one- and
	// two-rune queries.
	shortQueryCap = 100

	// trigramCandidateCap bounds how many candidates trigram selection
	// may hand to the full matching pipeline.
	trigramCandidateCap = 10000

	// minTrigramOverlap is the fraction of query trigrams a path must
	// share to survive preselection. The threshold trades recall
	// against how much work reaches the slower scoring stage.
	minTrigramOverlap = 0.3
)

// Index accelerates repeated top-K searches over a fixed path set by
// preselecting candidates with an inverted trigram index before the
// full matching pipeline runs. It is safe for concurrent use.
type Index struct {
	mu         sync.RWMutex
	matcher    *Matcher
	paths      []string
	normalized []string
	trigrams   map[string][]int
}

// NewIndex creates an index that ranks results with the given matcher.
// Panics if matcher is nil.
func NewIndex(matcher *Matcher) *Index {
	if matcher == nil {
		panic("fuzzy: NewIndex called with nil matcher")
	}
	return &Index{
		matcher:  matcher,
		trigrams: make(map[string][]int),
	}
}

// Update replaces the indexed paths and rebuilds the trigram index.
func (ix *Index) Update(paths []string) {
	stored := make([]string, len(paths))
	copy(stored, paths)

	normalized := make([]string, len(stored))
	for i, p := range stored {
		normalized[i] = strings.ToLower(p)
	}

	trigrams := make(map[string][]int)
	for i, p := range normalized {
		for t := range extractTrigrams(p) {
			trigrams[t] = append(trigrams[t], i)
		}
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.paths = stored
	ix.normalized = normalized
	ix.trigrams = trigrams
}

// Search returns the top k matches for the query among the indexed
// paths. Result indices refer to the path order passed to Update.
func (ix *Index) Search(query string, k int) []RankedMatch {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if len(ix.paths) == 0 || k <= 0 || query == "" {
		return nil
	}

	selected := ix.preselect(strings.ToLower(query))
	if len(selected) == 0 {
		return nil
	}

	candidates := make([]string, len(selected))
	for i, idx := range selected {
		candidates[i] = ix.paths[idx]
	}

	ranked := ix.matcher.MatchTopK(query, candidates, k)
	// Selected indices are ascending, so remapping preserves the
	// tie-break order MatchTopK guarantees.
	for i := range ranked {
		ranked[i].Index = selected[ranked[i].Index]
	}
	return ranked
}

// Count returns the number of indexed paths.
func (ix *Index) Count() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	return len(ix.paths)
}

// Clear removes all indexed paths.
func (ix *Index) Clear() {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.paths = nil
	ix.normalized = nil
	ix.trigrams = make(map[string][]int)
}

// preselect picks candidate indices worth full matching, in ascending
// order. Must be called with the read lock held.
func (ix *Index) preselect(queryNorm string) []int {
	runeCount := utf8.RuneCountInString(queryNorm)
	if runeCount <= 2 {
		return ix.preselectShort(queryNorm)
	}

	overlap := minTrigramOverlap
	if runeCount == 3 {
		// A three-rune query yields few trigrams; halve the bar so a
		// single shared trigram can still surface a path.
		overlap /= 2
	}

	queryTrigrams := extractTrigrams(queryNorm)
	counts := make(map[int]int)
	for t := range queryTrigrams {
		for _, idx := range ix.trigrams[t] {
			counts[idx]++
		}
	}

	minShared := float64(len(queryTrigrams)) * overlap
	selected := make([]int, 0, len(counts))
	for idx, count := range counts {
		if float64(count) >= minShared {
			selected = append(selected, idx)
		}
	}
	sort.Ints(selected)
	if len(selected) > trigramCandidateCap {
		selected = selected[:trigramCandidateCap]
	}
	return selected
}

// preselectShort handles queries too short to produce useful trigrams:
// prefix matches and path-segment starts first, then any substring hit.
func (ix *Index) preselectShort(queryNorm string) []int {
	slashQuery := "/" + queryNorm

	var selected []int
	for i, p := range ix.normalized {
		if strings.HasPrefix(p, queryNorm) || strings.Contains(p, slashQuery) {
			selected = append(selected, i)
			if len(selected) >= shortQueryCap {
				return selected
			}
		}
	}
	if len(selected) > 0 {
		return selected
	}

	for i, p := range ix.normalized {
		if strings.Contains(p, queryNorm) {
			selected = append(selected, i)
			if len(selected) >= shortQueryCap {
				break
			}
		}
	}
	return selected
}

// extractTrigrams returns every three-rune window of the padded text.
// Padding with spaces keeps prefixes and short strings represented.
func extractTrigrams(text string) map[string]struct{} {
	padded := []rune("  " + text + " ")
	trigrams := make(map[string]struct{}, len(padded))
	for i := 0; i+3 <= len(padded); i++ {
		trigrams[string(padded[i:i+3])] = struct{}{}
	}
	return trigrams
}
