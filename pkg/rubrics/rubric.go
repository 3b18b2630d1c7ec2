package rubrics

import (
	"context"

	"github.com/rizome-dev/go-mathreward/pkg/types"
)

// Rubric is the interface for evaluating model transcripts
type Rubric interface {
	// GetRewardFuncs returns the reward functions for this rubric
	GetRewardFuncs() []types.RewardFunc

	// ComputeReward computes the total reward for a transcript and ground truth
	ComputeReward(ctx context.Context, solution string, groundTruth string) (float64, error)
}

// AdditiveRubric sums the scores of its reward functions. A failure in any
// one of them zeroes the whole call rather than surfacing an error, so one
// broken signal cannot crash a scoring run.
type AdditiveRubric struct {
	rewardFuncs []types.RewardFunc
}

// AddReward appends a reward function to the rubric
func (r *AdditiveRubric) AddReward(fn types.RewardFunc) {
	r.rewardFuncs = append(r.rewardFuncs, fn)
}

// GetRewardFuncs returns the reward functions
func (r *AdditiveRubric) GetRewardFuncs() []types.RewardFunc {
	return r.rewardFuncs
}

// ComputeReward sums all reward functions, discarding partial credit when
// any of them fails
func (r *AdditiveRubric) ComputeReward(ctx context.Context, solution string, groundTruth string) (float64, error) {
	total := 0.0
	for _, fn := range r.rewardFuncs {
		score, err := fn(ctx, solution, groundTruth)
		if err != nil {
			return 0.0, nil
		}
		total += score
	}
	return total, nil
}
