package fuzzy

import "runtime"

// ScoringMode selects which candidate positions count as first letters.
type ScoringMode int

const (
	// ModeDefault treats the start of each alphanumeric run as a first letter.
	ModeDefault ScoringMode = iota

	// ModePath treats index 0 and every position after '/' as a first letter.
	ModePath
)

// String returns the string representation of the mode.
func (m ScoringMode) String() string {
	switch m {
	case ModeDefault:
		return "default"
	case ModePath:
		return "path"
	default:
		return "unknown"
	}
}

// Match is the outcome of matching one query against one candidate.
// The zero Match (score 0, no positions) means no match.
type Match struct {
	// Score is the match score. Higher is better; 0 means no match.
	Score float64

	// Positions holds the rune indices of the matched runes, strictly
	// increasing, one per query rune. Empty exactly when Score is 0.
	Positions []int
}

// RankedMatch is a Match annotated with the candidate's original index.
type RankedMatch struct {
	Index     int
	Score     float64
	Positions []int
}

// Options configures matcher behavior. CaseSensitive and PathMode are
// fixed for the lifetime of a Matcher.
type Options struct {
	// CaseSensitive enables case-sensitive matching.
	// Default is false (case-insensitive).
	CaseSensitive bool

	// PathMode scores positions after '/' as first letters instead of
	// word starts. Use when candidates are file paths.
	PathMode bool

	// Workers is the goroutine count for the parallel batch paths.
	// 0 means runtime.NumCPU().
	Workers int
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{}
}

// Matcher performs fuzzy subsequence matching with memoized results.
//
// The memo cache grows without bound across calls; callers that need
// bounded memory must call ClearCache themselves.
type Matcher struct {
	cache   *Cache
	mode    ScoringMode
	workers int
	options Options
}

// NewMatcher creates a matcher with the given options.
func NewMatcher(opts Options) *Matcher {
	mode := ModeDefault
	if opts.PathMode {
		mode = ModePath
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Matcher{
		cache:   NewCache(),
		mode:    mode,
		workers: workers,
		options: opts,
	}
}

// Match matches the query against a single candidate and returns the
// best-scoring alignment, or the zero Match when the query is not a
// subsequence of the candidate.
func (m *Matcher) Match(query, candidate string) Match {
	if cached, ok := m.cache.Get(query, candidate); ok {
		return cached
	}
	result := bestMatch(m.matchAll(query, candidate))
	m.cache.Set(query, candidate, result)
	return result
}

// ClearCache drops every memoized result.
func (m *Matcher) ClearCache() {
	m.cache.Clear()
}

// CacheSize reports the number of memoized (query, candidate) pairs.
func (m *Matcher) CacheSize() int {
	return m.cache.Len()
}
