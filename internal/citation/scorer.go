package citation

import (
	"math/bits"
	"strings"
)

// Scorer rates how well pattern occurs somewhere inside text, from 0 (no
// resemblance) to 100 (exact occurrence).
type Scorer interface {
	Score(text, pattern string) float64
}

// ScorerFunc adapts a function to the Scorer interface.
type ScorerFunc func(text, pattern string) float64

// Score calls f(text, pattern).
func (f ScorerFunc) Score(text, pattern string) float64 {
	return f(text, pattern)
}

// PartialRatio is a best-aligned substring similarity.
//
// The shorter string is compared against every window of the longer one,
// measured in runes: each full-length window, plus the shorter windows that
// run off either end, so a title cut off at the start or end of the text
// still scores. A window of length k scores 100 * 2*lcs / (m+k), where m is
// the shorter length and lcs the longest common subsequence, which is the
// normalized indel similarity. The score is the best window. Exact
// containment short-circuits to 100. Empty input scores 0.
//
// This is the definition of rapidfuzz's partial_ratio. Subsequence lengths
// are computed bit-parallel, and full windows whose letter counts cannot
// beat the best score so far are skipped, so the result is exact.
type PartialRatio struct{}

// Score implements Scorer.
func (PartialRatio) Score(text, pattern string) float64 {
	if text == "" || pattern == "" {
		return 0
	}
	if strings.Contains(text, pattern) {
		return 100
	}

	short, long := []rune(pattern), []rune(text)
	if len(short) > len(long) {
		short, long = long, short
	}
	m, n := len(short), len(long)

	best := 0.0
	keep := func(lcs, k int) {
		if r := ratio(lcs, m, k); r > best {
			best = r
		}
	}

	// Windows hanging off the start of the longer string.
	fwd := newLCSPattern(short)
	for k := 1; k < m; k++ {
		fwd.step(long[k-1])
		keep(fwd.count(), k)
	}

	// Windows hanging off the end: same computation on both strings reversed.
	rev := newLCSPattern(reverse(short))
	for k := 1; k < m; k++ {
		rev.step(long[n-k])
		keep(rev.count(), k)
	}

	// Full windows. common is the sum over runes of the smaller of the
	// pattern's and the window's count, an upper bound on the window's lcs.
	need := make(map[rune]int, m)
	for _, r := range short {
		need[r]++
	}
	have := make(map[rune]int, len(need))
	common := 0
	add := func(r rune) {
		if want, ok := need[r]; ok {
			have[r]++
			if have[r] <= want {
				common++
			}
		}
	}
	remove := func(r rune) {
		if want, ok := need[r]; ok {
			if have[r] <= want {
				common--
			}
			have[r]--
		}
	}

	for i := 0; i < m; i++ {
		add(long[i])
	}
	for i := 0; i+m <= n; i++ {
		if i > 0 {
			remove(long[i-1])
			add(long[i+m-1])
		}
		if ratio(common, m, m) <= best {
			continue
		}
		keep(fwd.lcs(long[i:i+m]), m)
	}

	return 100 * best
}

func ratio(lcs, m, k int) float64 {
	return 2 * float64(lcs) / float64(m+k)
}

func reverse(s []rune) []rune {
	r := make([]rune, len(s))
	for i, c := range s {
		r[len(s)-1-i] = c
	}
	return r
}

// lcsPattern computes longest common subsequence lengths against a fixed
// pattern, one text rune at a time, with the bit-vector recurrence of
// Hyyrö (2004): V' = (V + (V & M)) | (V &^ M). The lcs is the number of
// zero bits among the low m bits of V.
type lcsPattern struct {
	m     int
	masks map[rune][]uint64
	v     []uint64
}

func newLCSPattern(pattern []rune) *lcsPattern {
	words := (len(pattern) + 63) / 64
	p := &lcsPattern{
		m:     len(pattern),
		masks: make(map[rune][]uint64),
		v:     make([]uint64, words),
	}
	for i, r := range pattern {
		mask, ok := p.masks[r]
		if !ok {
			mask = make([]uint64, words)
			p.masks[r] = mask
		}
		mask[i/64] |= 1 << (uint(i) % 64)
	}
	p.reset()
	return p
}

func (p *lcsPattern) reset() {
	for i := range p.v {
		p.v[i] = ^uint64(0)
	}
}

// step consumes one text rune.
func (p *lcsPattern) step(r rune) {
	mask, ok := p.masks[r]
	if !ok {
		return
	}
	var carry uint64
	for i, v := range p.v {
		u := v & mask[i]
		sum, c := bits.Add64(v, u, carry)
		carry = c
		p.v[i] = sum | (v &^ mask[i])
	}
}

// count returns the lcs of the pattern and the text consumed since reset.
func (p *lcsPattern) count() int {
	ones := 0
	for i, v := range p.v {
		if i == len(p.v)-1 && p.m%64 != 0 {
			v &= 1<<(uint(p.m)%64) - 1
		}
		ones += bits.OnesCount64(v)
	}
	return p.m - ones
}

// lcs returns the lcs of the pattern and text.
func (p *lcsPattern) lcs(text []rune) int {
	p.reset()
	for _, r := range text {
		p.step(r)
	}
	return p.count()
}
