package rubrics

import (
	"context"
	"log/slog"

	"github.com/rizome-dev/go-mathreward/pkg/parsers"
	"github.com/rizome-dev/go-mathreward/pkg/similarity"
	"github.com/rizome-dev/go-mathreward/pkg/utils"
)

// BacktrackCues are the phrases that open a self-correction attempt in a
// transcript. Segments are delimited by case-insensitive occurrences of any
// of them.
var BacktrackCues = []string{
	"This doesn't seem right. I am restarting from the last correct step and think again:",
	"Wait, let me try again:",
	"Alternatively...",
	"Feel like I'm missing something.",
	"Hmm...",
	"Something is off, let me try again.",
}

const (
	// DefaultSimilarityThreshold is the similarity ratio above which a
	// segment counts as a repetition of an earlier one.
	DefaultSimilarityThreshold = 0.7

	// SegmentRepetitionPenalty is subtracted once per repeated segment.
	SegmentRepetitionPenalty = 0.3

	// RepetitionPenaltyFloor caps the total repetition penalty.
	RepetitionPenaltyFloor = -1.0

	earlyStopReward        = 1.0
	earlyStopRevisedReward = 0.1
)

// BacktrackConfig holds the tunable constants of a BacktrackRubric.
type BacktrackConfig struct {
	Cues                []string
	SimilarityThreshold float64
	SegmentPenalty      float64
	PenaltyFloor        float64
	Metric              similarity.Metric
}

// DefaultBacktrackConfig returns the standard configuration
func DefaultBacktrackConfig() BacktrackConfig {
	return BacktrackConfig{
		Cues:                BacktrackCues,
		SimilarityThreshold: DefaultSimilarityThreshold,
		SegmentPenalty:      SegmentRepetitionPenalty,
		PenaltyFloor:        RepetitionPenaltyFloor,
		Metric:              similarity.LCS{},
	}
}

// BacktrackRubric scores a solution transcript against a ground-truth answer
// by combining three signals: correctness of the final boxed answer, a bonus
// for stopping once a correct answer is reached, and a penalty for
// self-correction attempts that restate earlier ones. The rubric holds no
// mutable state after construction and is safe for concurrent use.
type BacktrackRubric struct {
	AdditiveRubric
	config BacktrackConfig
	parser *parsers.BoxedParser
	logger *slog.Logger
}

// NewBacktrackRubric creates a rubric with the default configuration
func NewBacktrackRubric() *BacktrackRubric {
	return NewBacktrackRubricWithConfig(DefaultBacktrackConfig())
}

// NewBacktrackRubricWithConfig creates a rubric with a custom configuration.
// Zero-valued fields fall back to the defaults.
func NewBacktrackRubricWithConfig(config BacktrackConfig) *BacktrackRubric {
	if len(config.Cues) == 0 {
		config.Cues = BacktrackCues
	}
	if config.SimilarityThreshold == 0 {
		config.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if config.SegmentPenalty == 0 {
		config.SegmentPenalty = SegmentRepetitionPenalty
	}
	if config.PenaltyFloor == 0 {
		config.PenaltyFloor = RepetitionPenaltyFloor
	}
	if config.Metric == nil {
		config.Metric = similarity.LCS{}
	}

	r := &BacktrackRubric{
		config: config,
		parser: parsers.NewBoxedParser(),
		logger: slog.Default().With("component", "backtrack_rubric"),
	}
	r.AddReward(r.AccuracyScore)
	r.AddReward(r.EarlyStopScore)
	r.AddReward(func(ctx context.Context, solution, _ string) (float64, error) {
		return r.RepetitionPenalty(solution), nil
	})
	return r
}

// AccuracyScore awards 1.0 when the last boxed answer of the transcript
// matches the ground truth, and 0.0 otherwise. A missing or malformed final
// answer scores zero; it is never an error.
func (r *BacktrackRubric) AccuracyScore(ctx context.Context, solution, groundTruth string) (float64, error) {
	expr, ok := r.parser.LastBoxed(solution)
	if !ok {
		return 0.0, nil
	}
	answer, err := r.parser.Unwrap(expr)
	if err != nil {
		r.logger.Debug("malformed final boxed expression", "expr", expr, "error", err)
		return 0.0, nil
	}
	if utils.IsEquivalent(answer, groundTruth) {
		return 1.0, nil
	}
	return 0.0, nil
}

// EarlyStopScore rewards reaching the correct answer and stopping there.
// Scanning the innermost content of every boxed expression in order: 1.0 when
// the first correct answer is also the last one, 0.1 when the model revised
// but the very next answer is correct again, 0.0 otherwise.
func (r *BacktrackRubric) EarlyStopScore(ctx context.Context, solution, groundTruth string) (float64, error) {
	raw := r.parser.ExtractAll(solution)
	if len(raw) == 0 {
		return 0.0, nil
	}

	answers := make([]string, 0, len(raw))
	for _, expr := range raw {
		if inner := r.parser.Innermost(expr); inner != "" {
			answers = append(answers, inner)
		}
	}
	if len(answers) == 0 {
		return 0.0, nil
	}

	first := -1
	for i, answer := range answers {
		if utils.IsEquivalent(answer, groundTruth) {
			first = i
			break
		}
	}
	switch {
	case first < 0:
		return 0.0, nil
	case first == len(answers)-1:
		return earlyStopReward, nil
	case utils.IsEquivalent(answers[first+1], groundTruth):
		return earlyStopRevisedReward, nil
	}
	return 0.0, nil
}

// RepetitionPenalty penalizes self-correction attempts that restate an
// earlier attempt. Each segment from the second onward is compared against
// every preceding segment; the first similarity above the threshold costs
// SegmentPenalty and ends the comparisons for that segment. The total is
// clamped at PenaltyFloor.
func (r *BacktrackRubric) RepetitionPenalty(solution string) float64 {
	segments := parsers.SplitSegments(solution, r.config.Cues)
	if len(segments) < 2 {
		return 0.0
	}

	// normalize once up front, pairwise comparison is quadratic
	normalized := make([]string, len(segments))
	for i, seg := range segments {
		n, err := utils.Normalize(seg)
		if err != nil {
			n = seg
		}
		normalized[i] = n
	}

	total := 0.0
	for i := 1; i < len(normalized); i++ {
		if normalized[i] == "" {
			continue
		}
		for j := 0; j < i; j++ {
			if normalized[j] == "" {
				continue
			}
			if r.config.Metric.Ratio(normalized[i], normalized[j]) > r.config.SimilarityThreshold {
				total -= r.config.SegmentPenalty
				break
			}
		}
	}

	if total < r.config.PenaltyFloor {
		return r.config.PenaltyFloor
	}
	return total
}

// ComputeReward sums the accuracy, early-stop and repetition signals. It
// never returns an error and never panics: any failure zeroes the whole
// score for this call.
func (r *BacktrackRubric) ComputeReward(ctx context.Context, solution string, groundTruth string) (score float64, err error) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Warn("scoring panicked", "panic", p)
			score, err = 0.0, nil
		}
	}()
	return r.AdditiveRubric.ComputeReward(ctx, solution, groundTruth)
}

// ComputeScore scores one transcript against a ground-truth answer with the
// default rubric. It is total over all string inputs; the result is in
// [-1.0, 2.0].
func ComputeScore(solution, groundTruth string) float64 {
	score, _ := NewBacktrackRubric().ComputeReward(context.Background(), solution, groundTruth)
	return score
}
