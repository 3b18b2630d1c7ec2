package types

import "context"

// RewardFunc scores a solution transcript against a ground-truth answer.
type RewardFunc func(ctx context.Context, solution, groundTruth string) (float64, error)

// Sample is one transcript/answer pair in a batch scoring run.
type Sample struct {
	Solution    string  `json:"solution"`
	GroundTruth string  `json:"ground_truth"`
	Score       float64 `json:"score,omitempty"`
}
