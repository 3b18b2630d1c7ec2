package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLCS_Ratio(t *testing.T) {
	m := LCS{}

	assert.Equal(t, 1.0, m.Ratio("same", "same"))
	assert.Equal(t, 1.0, m.Ratio("", ""))
	assert.Equal(t, 0.0, m.Ratio("abc", ""))
	assert.Equal(t, 0.0, m.Ratio("", "abc"))
	assert.Equal(t, 0.0, m.Ratio("aaa", "bbb"))

	// lcs("abcd", "abed") = "abd", ratio = 2*3/8
	assert.InDelta(t, 0.75, m.Ratio("abcd", "abed"), 1e-9)
}

func TestLCS_Symmetric(t *testing.T) {
	m := LCS{}
	pairs := [][2]string{
		{"abcd", "abed"},
		{"hello world", "world hello"},
		{"", "x"},
	}
	for _, p := range pairs {
		assert.InDelta(t, m.Ratio(p[0], p[1]), m.Ratio(p[1], p[0]), 1e-9)
	}
}

func TestLevenshtein_Ratio(t *testing.T) {
	m := Levenshtein{}

	assert.Equal(t, 1.0, m.Ratio("same", "same"))
	assert.Equal(t, 1.0, m.Ratio("", ""))
	assert.Equal(t, 0.0, m.Ratio("abc", ""))

	// editDistance("kitten", "sitting") = 3
	assert.InDelta(t, 1.0-3.0/7.0, m.Ratio("kitten", "sitting"), 1e-9)
}

func TestMetric_Bounds(t *testing.T) {
	for _, m := range []Metric{LCS{}, Levenshtein{}} {
		for _, p := range [][2]string{
			{"abc", "xbyczd"},
			{"aaaa", "aa"},
			{"completely", "different"},
		} {
			r := m.Ratio(p[0], p[1])
			assert.GreaterOrEqual(t, r, 0.0)
			assert.LessOrEqual(t, r, 1.0)
		}
	}
}
