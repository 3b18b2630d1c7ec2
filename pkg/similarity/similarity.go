package similarity

// Metric scores how similar two strings are, in [0, 1]. Implementations must
// be symmetric and return 1.0 for identical strings.
type Metric interface {
	Ratio(a, b string) float64
}

// LCS measures similarity as 2*lcs(a,b) / (len(a)+len(b)), where lcs is the
// length of the longest common subsequence of bytes.
type LCS struct{}

// Ratio implements Metric
func (LCS) Ratio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	total := len(a) + len(b)
	if total == 0 {
		return 1.0
	}
	return 2.0 * float64(lcsLength(a, b)) / float64(total)
}

func lcsLength(a, b string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// Levenshtein measures similarity as 1 - editDistance(a,b)/max(len(a),len(b)).
// It is the edit-distance alternative to LCS.
type Levenshtein struct{}

// Ratio implements Metric
func (Levenshtein) Ratio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	longest := max(len(a), len(b))
	if longest == 0 {
		return 1.0
	}
	return 1.0 - float64(editDistance(a, b))/float64(longest)
}

func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
