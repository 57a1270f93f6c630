package fuzzy

import "sync"

const (
	// parallelThreshold is the candidate count below which goroutine
	// overhead exceeds the benefit of fanning out.
	parallelThreshold = 1000

	// minChunkSize keeps worker chunks large enough to amortize
	// scheduling overhead.
	minChunkSize = 50
)

// MatchBatch matches the query against every candidate. The result is
// index-aligned with candidates on both the serial and parallel paths.
func (m *Matcher) MatchBatch(query string, candidates []string) []Match {
	if len(candidates) < parallelThreshold {
		results := make([]Match, len(candidates))
		for i, candidate := range candidates {
			results[i] = m.Match(query, candidate)
		}
		return results
	}

	// Partition serially: cached answers fill in immediately, misses
	// queue for the parallel phase.
	results := make([]Match, len(candidates))
	var pending []int
	for i, candidate := range candidates {
		if cached, ok := m.cache.Get(query, candidate); ok {
			results[i] = cached
		} else {
			pending = append(pending, i)
		}
	}

	computed := m.matchPending(query, candidates, pending)

	// Merge into the cache only after the fan-out has joined, on this
	// goroutine. The parallel phase touches no shared state.
	for j, i := range pending {
		m.cache.Set(query, candidates[i], computed[j])
		results[i] = computed[j]
	}
	return results
}

// matchPending computes matches for the pending candidate indices with
// a chunked worker fan-out. Workers write disjoint slots of the result
// slice, so the phase needs no locking.
func (m *Matcher) matchPending(query string, candidates []string, pending []int) []Match {
	computed := make([]Match, len(pending))
	if len(pending) == 0 {
		return computed
	}

	chunkSize := (len(pending) + m.workers - 1) / m.workers
	if chunkSize < minChunkSize {
		chunkSize = minChunkSize
	}

	var wg sync.WaitGroup
	for start := 0; start < len(pending); start += chunkSize {
		end := start + chunkSize
		if end > len(pending) {
			end = len(pending)
		}

		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for j := lo; j < hi; j++ {
				computed[j] = bestMatch(m.matchAll(query, candidates[pending[j]]))
			}
		}(start, end)
	}
	wg.Wait()

	return computed
}
