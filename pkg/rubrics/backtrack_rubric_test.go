package rubrics

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rizome-dev/go-mathreward/pkg/similarity"
)

func TestBacktrackRubric_AccuracyScore(t *testing.T) {
	tests := []struct {
		name        string
		solution    string
		groundTruth string
		expected    float64
	}{
		{
			name:        "correct boxed answer",
			solution:    `\boxed{4}`,
			groundTruth: "4",
			expected:    1.0,
		},
		{
			name:        "wrong boxed answer",
			solution:    `\boxed{4}`,
			groundTruth: "5",
			expected:    0.0,
		},
		{
			name:        "only the last boxed answer counts",
			solution:    `\boxed{5} Wait, let me try again: \boxed{4}`,
			groundTruth: "4",
			expected:    1.0,
		},
		{
			name:        "last boxed answer is wrong",
			solution:    `\boxed{4} Wait, let me try again: \boxed{5}`,
			groundTruth: "4",
			expected:    0.0,
		},
		{
			name:        "equivalent surface forms",
			solution:    `\boxed{0.5}`,
			groundTruth: `\frac{1}{2}`,
			expected:    1.0,
		},
		{
			name:        "no boxed answer",
			solution:    "I have no idea",
			groundTruth: "4",
			expected:    0.0,
		},
		{
			name:        "unbalanced braces",
			solution:    `\boxed{4`,
			groundTruth: "4",
			expected:    0.0,
		},
		{
			name:        "empty transcript",
			solution:    "",
			groundTruth: "4",
			expected:    0.0,
		},
	}

	rubric := NewBacktrackRubric()
	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rubric.AccuracyScore(ctx, tt.solution, tt.groundTruth)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestBacktrackRubric_EarlyStopScore(t *testing.T) {
	tests := []struct {
		name        string
		solution    string
		groundTruth string
		expected    float64
	}{
		{
			name:        "correct and decisive",
			solution:    `\boxed{4}`,
			groundTruth: "4",
			expected:    1.0,
		},
		{
			name:        "first match is the final answer",
			solution:    `\boxed{5} Wait, let me try again: \boxed{4}`,
			groundTruth: "4",
			expected:    1.0,
		},
		{
			name:        "abandoned a correct answer",
			solution:    `\boxed{4} Wait, let me try again: \boxed{5}`,
			groundTruth: "4",
			expected:    0.0,
		},
		{
			name:        "one redundant self-check",
			solution:    `\boxed{4} Hmm... \boxed{4}`,
			groundTruth: "4",
			expected:    0.1,
		},
		{
			name:        "correct then repeated then abandoned",
			solution:    `\boxed{4} Hmm... \boxed{4} Hmm... \boxed{5}`,
			groundTruth: "4",
			expected:    0.1,
		},
		{
			name:        "never correct",
			solution:    `\boxed{5} Hmm... \boxed{6}`,
			groundTruth: "4",
			expected:    0.0,
		},
		{
			name:        "no boxed answers",
			solution:    "nothing boxed here",
			groundTruth: "4",
			expected:    0.0,
		},
	}

	rubric := NewBacktrackRubric()
	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rubric.EarlyStopScore(ctx, tt.solution, tt.groundTruth)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestBacktrackRubric_RepetitionPenalty(t *testing.T) {
	rubric := NewBacktrackRubric()
	attempt := "Compute 3 times 4 to get 12, so the area is 12."

	t.Run("single segment", func(t *testing.T) {
		assert.Equal(t, 0.0, rubric.RepetitionPenalty(attempt))
	})

	t.Run("two identical segments", func(t *testing.T) {
		solution := attempt + " Hmm... " + attempt
		assert.InDelta(t, -0.3, rubric.RepetitionPenalty(solution), 1e-9)
	})

	t.Run("one penalty per segment even with two similar predecessors", func(t *testing.T) {
		solution := attempt + " Hmm... " + attempt + " Hmm... " + attempt
		assert.InDelta(t, -0.6, rubric.RepetitionPenalty(solution), 1e-9)
	})

	t.Run("dissimilar segments are free", func(t *testing.T) {
		segments := make([]string, 20)
		for i := range segments {
			segments[i] = strings.Repeat(string(rune('a'+i)), 5)
		}
		solution := strings.Join(segments, " Hmm... ")
		assert.Equal(t, 0.0, rubric.RepetitionPenalty(solution))
	})

	t.Run("penalty floors at -1.0", func(t *testing.T) {
		parts := make([]string, 7)
		for i := range parts {
			parts[i] = attempt
		}
		solution := strings.Join(parts, " Hmm... ")
		assert.InDelta(t, -1.0, rubric.RepetitionPenalty(solution), 1e-9)
	})

	t.Run("empty transcript", func(t *testing.T) {
		assert.Equal(t, 0.0, rubric.RepetitionPenalty(""))
	})
}

func TestBacktrackRubric_CustomConfig(t *testing.T) {
	rubric := NewBacktrackRubricWithConfig(BacktrackConfig{
		Cues:   []string{"RESET"},
		Metric: similarity.Levenshtein{},
	})
	attempt := "the same reasoning repeated verbatim for this attempt"

	assert.InDelta(t, -0.3, rubric.RepetitionPenalty(attempt+" RESET "+attempt), 1e-9)
	// default cues are not delimiters for this rubric
	assert.Equal(t, 0.0, rubric.RepetitionPenalty(attempt+" Hmm... "+attempt))
}

func TestBacktrackRubric_ComputeReward(t *testing.T) {
	rubric := NewBacktrackRubric()
	ctx := context.Background()

	t.Run("perfect answer", func(t *testing.T) {
		score, err := rubric.ComputeReward(ctx, `\boxed{4}`, "4")
		require.NoError(t, err)
		assert.InDelta(t, 2.0, score, 1e-9)
	})

	t.Run("redundant self-check with repeated segment", func(t *testing.T) {
		// accuracy 1.0, early-stop 0.1, repetition -0.3
		score, err := rubric.ComputeReward(ctx, `\boxed{4} Hmm... \boxed{4}`, "4")
		require.NoError(t, err)
		assert.InDelta(t, 0.8, score, 1e-9)
	})

	t.Run("empty inputs", func(t *testing.T) {
		score, err := rubric.ComputeReward(ctx, "", "")
		require.NoError(t, err)
		assert.Equal(t, 0.0, score)
	})
}

func TestComputeScore(t *testing.T) {
	assert.Equal(t, 0.0, ComputeScore("", ""))
	assert.InDelta(t, 2.0, ComputeScore(`\boxed{4}`, "4"), 1e-9)
	assert.InDelta(t, 0.0, ComputeScore(`\boxed{5}`, "4"), 1e-9)
}

func TestComputeScore_TotalOverHostileInputs(t *testing.T) {
	inputs := []string{
		"",
		`\boxed{`,
		`\boxed{{{{`,
		`}}}}\boxed`,
		`\boxed \boxed \boxed`,
		strings.Repeat(`\boxed{4} Hmm... `, 50),
		`\frac`,
		`$$$$`,
	}
	for i, solution := range inputs {
		t.Run(fmt.Sprintf("input_%d", i), func(t *testing.T) {
			score := ComputeScore(solution, "4")
			assert.GreaterOrEqual(t, score, -1.0)
			assert.LessOrEqual(t, score, 2.0)
		})
	}
}
