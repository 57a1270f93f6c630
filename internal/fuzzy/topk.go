package fuzzy

import (
	"container/heap"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"
)

// MatchTopK returns at most k positive-scoring matches, sorted by
// descending score; equal scores keep ascending candidate order.
//
// Small batches and large k delegate to MatchBatch; otherwise a
// streaming pass prefilters candidates in parallel and a bounded
// min-heap keeps only the best k.
func (m *Matcher) MatchTopK(query string, candidates []string, k int) []RankedMatch {
	if len(candidates) == 0 || k <= 0 {
		return nil
	}

	if len(candidates) < parallelThreshold || k >= len(candidates)/2 {
		results := m.MatchBatch(query, candidates)
		ranked := make([]RankedMatch, 0, len(results))
		for i, r := range results {
			if r.Score > 0 {
				ranked = append(ranked, RankedMatch{Index: i, Score: r.Score, Positions: r.Positions})
			}
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Score > ranked[j].Score
		})
		if len(ranked) > k {
			ranked = ranked[:k]
		}
		return ranked
	}

	slots := m.screenCandidates(query, candidates)

	// Single-threaded reduction: the cache merge and every heap
	// mutation happen after the fan-out has joined, in input order, so
	// retention among equal scores is reproducible run to run.
	h := &rankedHeap{}
	heap.Init(h)
	for i := range slots {
		s := &slots[i]
		if !s.ok {
			continue
		}
		if s.fresh {
			m.cache.Set(query, candidates[i], Match{Score: s.score, Positions: s.positions})
		}
		r := RankedMatch{Index: i, Score: s.score, Positions: s.positions}
		if h.Len() < k {
			heap.Push(h, r)
		} else if r.Score > (*h)[0].Score {
			(*h)[0] = r
			heap.Fix(h, 0)
		}
	}

	ranked := h.toSlice()
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Index < ranked[j].Index
	})
	return ranked
}

// topKSlot is one candidate's outcome from the screening fan-out.
type topKSlot struct {
	ok        bool // positive-scoring result present
	fresh     bool // computed this pass, not served from the cache
	score     float64
	positions []int
}

// screenCandidates runs the prefiltered matching fan-out. Each worker
// writes only its own slice range; shared state is untouched until the
// caller's serial merge.
func (m *Matcher) screenCandidates(query string, candidates []string) []topKSlot {
	slots := make([]topKSlot, len(candidates))

	queryNorm := query
	if !m.options.CaseSensitive {
		queryNorm = strings.ToLower(query)
	}
	queryLen := utf8.RuneCountInString(queryNorm)
	queryFirst, _ := utf8.DecodeRuneInString(queryNorm)

	chunkSize := (len(candidates) + m.workers - 1) / m.workers
	if chunkSize < minChunkSize {
		chunkSize = minChunkSize
	}

	var wg sync.WaitGroup
	for start := 0; start < len(candidates); start += chunkSize {
		end := start + chunkSize
		if end > len(candidates) {
			end = len(candidates)
		}

		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				slots[i] = m.screenOne(query, queryNorm, queryFirst, queryLen, candidates[i])
			}
		}(start, end)
	}
	wg.Wait()

	return slots
}

// screenOne applies the cache check and the cheap rejection filters
// before paying for a full match.
func (m *Matcher) screenOne(query, queryNorm string, queryFirst rune, queryLen int, candidate string) topKSlot {
	if cached, ok := m.cache.Get(query, candidate); ok {
		if cached.Score > 0 {
			return topKSlot{ok: true, score: cached.Score, positions: cached.Positions}
		}
		return topKSlot{}
	}

	candNorm := candidate
	if !m.options.CaseSensitive {
		candNorm = strings.ToLower(candidate)
	}

	// Too short to embed the query.
	if utf8.RuneCountInString(candNorm) < queryLen {
		return topKSlot{}
	}
	// First query rune absent.
	if !strings.ContainsRune(candNorm, queryFirst) {
		return topKSlot{}
	}
	// Any query rune absent.
	charSet := make(map[rune]struct{}, len(candNorm))
	for _, r := range candNorm {
		charSet[r] = struct{}{}
	}
	for _, r := range queryNorm {
		if _, ok := charSet[r]; !ok {
			return topKSlot{}
		}
	}

	result := bestMatch(m.matchAll(query, candidate))
	if result.Score <= 0 {
		return topKSlot{}
	}
	return topKSlot{ok: true, fresh: true, score: result.Score, positions: result.Positions}
}

// rankedHeap is a min-heap of RankedMatch by score. Bounded at k
// entries, its root is always the weakest retained match, which makes
// eviction checks O(1).
type rankedHeap []RankedMatch

func (h rankedHeap) Len() int           { return len(h) }
func (h rankedHeap) Less(i, j int) bool { return h[i].Score < h[j].Score } // Min-heap by score
func (h rankedHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *rankedHeap) Push(x any) {
	*h = append(*h, x.(RankedMatch))
}

func (h *rankedHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

func (h *rankedHeap) toSlice() []RankedMatch {
	out := make([]RankedMatch, len(*h))
	copy(out, *h)
	return out
}
