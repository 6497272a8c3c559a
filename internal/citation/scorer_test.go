package citation

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/agext/levenshtein"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartialRatio(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		pattern string
		min     float64
		max     float64
	}{
		{"exact containment", "[1] j. doe. a study of widgets. 2018.", "a study of widgets", 100, 100},
		{"one dropped letter", "[1] j. doe. a study of widgts. 2018.", "a study of widgets", 94, 95},
		{"pattern longer than text", "widgets", "a study of widgets", 100, 100},
		{"unrelated", "[1] k. lee. lattice quantum chromodynamics. 2015.", "a study of widgets", 0, 80},
		{"title cut off at end of text", "[1] j. doe. a study of widge", "a study of widgets", 94, 95},
		{"title cut off at start of text", "study of widgets. 2018. [2] k. lee.", "a study of widgets", 94, 95},
		{"empty text", "", "a study of widgets", 0, 0},
		{"empty pattern", "some text", "", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PartialRatio{}.Score(tt.text, tt.pattern)
			assert.GreaterOrEqual(t, got, tt.min)
			assert.LessOrEqual(t, got, tt.max)
		})
	}
}

func TestPartialRatio_Unicode(t *testing.T) {
	// Windows are measured in runes, not bytes.
	got := PartialRatio{}.Score("références: étude des widgets", "étude des widgets")
	assert.Equal(t, 100.0, got)

	got = PartialRatio{}.Score("références: etude des widgets", "étude des widgets")
	assert.Greater(t, got, 90.0)
}

// absentLetters never occur in longReferences.
const absentLetters = "bfjkqxz"

// unrelatedTitle has 10 of its 23 runes in absentLetters, so no window of
// longReferences shares more than 13 runes with it in order. The best a
// window of length k can score is 2*min(k,13)/(23+k), largest at k=13.
const unrelatedTitle = "zebrafish quokka jukebox"

var unrelatedCeiling = 100 * 2 * 13.0 / (23 + 13)

// longReferences builds a references section of n entries.
func longReferences(n int) []string {
	authors := []string{"smith", "lee", "garcia", "wang", "chen", "nguyen", "patel", "martin", "rossi", "silva", "ito", "meyer"}
	initials := "acdeghlmnprstw"
	words := []string{
		"evolution", "genome", "population", "dynamics", "statistical", "inference",
		"method", "structure", "mutation", "selection", "variation", "cell", "tree",
		"model", "estimation", "phylogenetic", "immune", "repertoire", "antigen",
		"learning", "deep", "neural", "posterior", "sampling", "monte", "carlo",
		"algorithms", "parallel", "computation", "heterogeneous", "rates", "site",
		"viral", "spread", "clonal", "lineage", "somatic", "hypermutation", "rapid",
		"accurate", "large", "data", "sets", "across", "time", "human", "mouse",
		"genetic", "diversity", "signal", "random", "adaptive", "response",
		"germline", "alignment", "reconstruction", "ancestral", "states", "under",
		"coalescent", "history", "demographic", "epidemic", "transmission",
	}
	venues := []string{"mol evol", "syst", "annu rev genet", "proc natl acad sci usa", "plos comput", "genome res", "nature", "science"}

	lines := []string{"References"}
	for i := 1; i <= n; i++ {
		var title []string
		for w := 0; w < 5+i%4; w++ {
			title = append(title, words[(i*7+w*13)%len(words)])
		}
		lines = append(lines, fmt.Sprintf("[%d] %c. %s, %c. %s. %s. %s %d:%d-%d. %d.",
			i,
			initials[i%len(initials)], authors[i%len(authors)],
			initials[(i*3)%len(initials)], authors[(i*5)%len(authors)],
			strings.Join(title, " "),
			venues[i%len(venues)], 10+i%30, 100+i, 110+i, 1990+i%30))
	}
	return lines
}

func TestPartialRatio_UnrelatedTitleInLongReferences(t *testing.T) {
	text := strings.ToLower(strings.Join(longReferences(150), " "))
	require.Greater(t, len(text), 8000)
	require.False(t, strings.ContainsAny(text, absentLetters))

	got := PartialRatio{}.Score(text, unrelatedTitle)
	assert.LessOrEqual(t, got, unrelatedCeiling)
	assert.Less(t, got, 75.0)
	assert.InDelta(t, naivePartialRatio(text, unrelatedTitle), got, 1e-9)
}

func TestPartialRatio_AgreesWithEditDistance(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	const alphabet = "abcde "
	randomString := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return string(b)
	}

	// Lengths either side of the 64-bit word boundaries.
	patternLengths := []int{1, 2, 3, 5, 8, 13, 21, 40, 63, 64, 65, 100, 127, 128, 129}
	for _, m := range patternLengths {
		for trial := 0; trial < 4; trial++ {
			pattern := randomString(m)
			text := randomString(m/2 + rng.Intn(m+60))
			t.Run(fmt.Sprintf("m=%d/%d", m, trial), func(t *testing.T) {
				assert.InDelta(t, naivePartialRatio(text, pattern), PartialRatio{}.Score(text, pattern), 1e-9)
			})
		}
	}
}

// naivePartialRatio scores every window with a full indel edit distance
// (substitution costs a deletion plus an insertion).
func naivePartialRatio(text, pattern string) float64 {
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
	score := func(window []rune) {
		d, _, _ := levenshtein.Calculate(window, short, 0, 1, 2, 1)
		total := float64(m + len(window))
		if r := (total - float64(d)) / total; r > best {
			best = r
		}
	}
	for k := 1; k < m; k++ {
		score(long[:k])
		score(long[n-k:])
	}
	for i := 0; i+m <= n; i++ {
		score(long[i : i+m])
	}
	return 100 * best
}

func TestScorerFunc(t *testing.T) {
	s := ScorerFunc(func(text, pattern string) float64 { return float64(len(text) + len(pattern)) })
	assert.Equal(t, 5.0, s.Score("abc", "de"))
}
