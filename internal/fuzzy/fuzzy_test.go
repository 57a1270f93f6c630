package fuzzy

import (
	"reflect"
	"strings"
	"testing"
)

func TestMatchBasic(t *testing.T) {
	matcher := NewMatcher(DefaultOptions())

	tests := []struct {
		name          string
		query         string
		candidate     string
		wantScore     float64
		wantPositions []int
	}{
		// f and b both word-initial, one gap: (2+2)*(1+0.25) = 5.0
		{"word boundaries", "fb", "foo_bar", 5.0, []int{0, 4}},
		// contiguous run beats an earlier scattered alignment
		{"contiguous preferred", "ab", "a_ab", 6.0, []int{2, 3}},
		// trailing contiguous word beats boundary-heavy scatter
		{"contiguous word", "abc", "a_b_c_abc", 8.0, []int{6, 7, 8}},
		{"no match", "xyz", "foo_bar", 0, nil},
		{"missing char", "fq", "foo_bar", 0, nil},
		{"empty query", "", "foo_bar", 0, nil},
		{"empty candidate", "a", "", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matcher.Match(tt.query, tt.candidate)
			if got.Score != tt.wantScore {
				t.Errorf("score = %v, want %v", got.Score, tt.wantScore)
			}
			if len(got.Positions) == 0 && len(tt.wantPositions) == 0 {
				return
			}
			if !reflect.DeepEqual(got.Positions, tt.wantPositions) {
				t.Errorf("positions = %v, want %v", got.Positions, tt.wantPositions)
			}
		})
	}
}

func TestMatchPathMode(t *testing.T) {
	matcher := NewMatcher(Options{PathMode: true})

	// 'a' right after '/' counts as a first letter in path mode:
	// (2+1)*(1+1) = 6.0 for the contiguous [4,5] alignment.
	got := matcher.Match("ab", "src/ab.rs")
	if got.Score != 6.0 {
		t.Errorf("score = %v, want 6.0", got.Score)
	}
	if !reflect.DeepEqual(got.Positions, []int{4, 5}) {
		t.Errorf("positions = %v, want [4 5]", got.Positions)
	}
}

func TestMatchSingleRuneFastPath(t *testing.T) {
	matcher := NewMatcher(DefaultOptions())

	tests := []struct {
		name          string
		query         string
		candidate     string
		wantScore     float64
		wantPositions []int
	}{
		// fast path scores 4.0 at a first letter, not the 2.0 the
		// general formula would give for m=1, f=1
		{"first letter", "a", "apple", 4.0, []int{0}},
		// both p's score 1.0; the fold keeps the first occurrence
		{"interior letter", "p", "apple", 1.0, []int{1}},
		{"repeated interior letter", "l", "hello_world", 1.0, []int{2}},
		{"absent letter", "z", "apple", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matcher.Match(tt.query, tt.candidate)
			if got.Score != tt.wantScore {
				t.Errorf("score = %v, want %v", got.Score, tt.wantScore)
			}
			if len(tt.wantPositions) > 0 && !reflect.DeepEqual(got.Positions, tt.wantPositions) {
				t.Errorf("positions = %v, want %v", got.Positions, tt.wantPositions)
			}
		})
	}
}

func TestMatchCaseSensitivity(t *testing.T) {
	insensitive := NewMatcher(DefaultOptions())
	if got := insensitive.Match("FB", "foo_bar"); got.Score != 5.0 {
		t.Errorf("case-insensitive score = %v, want 5.0", got.Score)
	}

	sensitive := NewMatcher(Options{CaseSensitive: true})
	if got := sensitive.Match("FB", "foo_bar"); got.Score != 0 {
		t.Errorf("case-sensitive score = %v, want 0", got.Score)
	}
	if got := sensitive.Match("fb", "foo_bar"); got.Score != 5.0 {
		t.Errorf("case-sensitive exact score = %v, want 5.0", got.Score)
	}
}

func TestMatchUTF8(t *testing.T) {
	matcher := NewMatcher(DefaultOptions())

	// Positions are rune indices: é sits at rune index 3 of "café".
	got := matcher.Match("cé", "café")
	if got.Score == 0 {
		t.Fatal("expected a match")
	}
	if !reflect.DeepEqual(got.Positions, []int{0, 3}) {
		t.Errorf("positions = %v, want [0 3]", got.Positions)
	}

	single := matcher.Match("é", "café")
	if !reflect.DeepEqual(single.Positions, []int{3}) {
		t.Errorf("single-rune positions = %v, want [3]", single.Positions)
	}
}

func TestMatchInvariants(t *testing.T) {
	matcher := NewMatcher(DefaultOptions())

	queries := []string{"fb", "ab", "abc", "go", "main", "x", "réé"}
	candidates := []string{
		"foo_bar", "src/ab.rs", "a_b_c_abc", "main.go",
		"handler.go", "café/menu.txt", "rééntrant", "",
	}

	for _, q := range queries {
		for _, c := range candidates {
			got := matcher.Match(q, c)
			if got.Score == 0 {
				if len(got.Positions) != 0 {
					t.Errorf("Match(%q, %q): zero score with positions %v", q, c, got.Positions)
				}
				continue
			}

			queryRunes := []rune(strings.ToLower(q))
			candRunes := []rune(strings.ToLower(c))
			if len(got.Positions) != len(queryRunes) {
				t.Fatalf("Match(%q, %q): %d positions for %d query runes", q, c, len(got.Positions), len(queryRunes))
			}
			for i, p := range got.Positions {
				if i > 0 && p <= got.Positions[i-1] {
					t.Errorf("Match(%q, %q): positions not strictly increasing: %v", q, c, got.Positions)
				}
				if candRunes[p] != queryRunes[i] {
					t.Errorf("Match(%q, %q): position %d reads %q, want %q", q, c, p, candRunes[p], queryRunes[i])
				}
			}
		}
	}
}

func TestMatchDeterministic(t *testing.T) {
	matcher := NewMatcher(DefaultOptions())

	first := matcher.Match("ab", "abab")
	for i := 0; i < 10; i++ {
		matcher.ClearCache()
		got := matcher.Match("ab", "abab")
		if !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: got %+v, want %+v", i, got, first)
		}
	}
}

func TestMatchIdempotentAndCached(t *testing.T) {
	matcher := NewMatcher(DefaultOptions())

	first := matcher.Match("fb", "foo_bar")
	if size := matcher.CacheSize(); size != 1 {
		t.Errorf("cache size = %d, want 1", size)
	}

	second := matcher.Match("fb", "foo_bar")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("second call returned %+v, want %+v", second, first)
	}
	if size := matcher.CacheSize(); size != 1 {
		t.Errorf("cache size after repeat = %d, want 1", size)
	}
}

func TestClearCacheForcesRecompute(t *testing.T) {
	matcher := NewMatcher(DefaultOptions())

	want := matcher.Match("fb", "foo_bar")
	matcher.Match("ab", "a_ab")
	if size := matcher.CacheSize(); size != 2 {
		t.Fatalf("cache size = %d, want 2", size)
	}

	matcher.ClearCache()
	if size := matcher.CacheSize(); size != 0 {
		t.Fatalf("cache size after clear = %d, want 0", size)
	}

	// The next call recomputes and repopulates the cache.
	got := matcher.Match("fb", "foo_bar")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("recomputed result %+v, want %+v", got, want)
	}
	if size := matcher.CacheSize(); size != 1 {
		t.Errorf("cache size after recompute = %d, want 1", size)
	}
}

func TestFirstLettersDefault(t *testing.T) {
	first := firstLettersDefault([]rune("foo_bar baz9 x"))

	want := []int{0, 4, 8, 13}
	for _, idx := range want {
		if _, ok := first[idx]; !ok {
			t.Errorf("index %d missing from first letters", idx)
		}
	}
	if len(first) != len(want) {
		t.Errorf("got %d first letters, want %d", len(first), len(want))
	}
}

func TestFirstLettersPath(t *testing.T) {
	first := firstLettersPath([]rune("src/foo_bar/baz.go"))

	want := []int{0, 4, 12}
	for _, idx := range want {
		if _, ok := first[idx]; !ok {
			t.Errorf("index %d missing from first letters", idx)
		}
	}
	if len(first) != len(want) {
		t.Errorf("got %d first letters, want %d", len(first), len(want))
	}
}

func TestScorePositions(t *testing.T) {
	first := map[int]struct{}{0: {}, 4: {}}

	tests := []struct {
		name      string
		positions []int
		want      float64
	}{
		{"empty", nil, 0},
		// m=2, f=2, one gap: (2+2)*(1+0.25)
		{"two boundaries gapped", []int{0, 4}, 5.0},
		// m=2, f=1, contiguous: (2+1)*(1+1)
		{"contiguous from boundary", []int{4, 5}, 6.0},
		// m=3, f=1, contiguous
		{"three contiguous", []int{4, 5, 6}, 8.0},
		// m=2, f=0, fully gapped: (2+0)*(1+0.25)
		{"no boundaries", []int{1, 3}, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scorePositions(tt.positions, first); got != tt.want {
				t.Errorf("scorePositions(%v) = %v, want %v", tt.positions, got, tt.want)
			}
		})
	}
}

func TestLetterPositionsCursorAdvance(t *testing.T) {
	// The cursor advances past the first occurrence of each query rune,
	// not past all of them, so later alignments stay reachable.
	positions, ok := letterPositions([]rune("ab"), []rune("abab"))
	if !ok {
		t.Fatal("expected positions")
	}
	want := [][]int{{0, 2}, {1, 3}}
	if !reflect.DeepEqual(positions, want) {
		t.Errorf("positions = %v, want %v", positions, want)
	}
}

func TestEnumerateStrictlyIncreasing(t *testing.T) {
	var alignments [][]int
	enumerate([][]int{{0, 2}, {1, 3}}, 2, nil, 0, func(a []int) {
		alignments = append(alignments, a)
	})

	want := [][]int{{0, 1}, {0, 3}, {2, 3}}
	if !reflect.DeepEqual(alignments, want) {
		t.Errorf("alignments = %v, want %v", alignments, want)
	}
}
