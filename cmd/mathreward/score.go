package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rizome-dev/go-mathreward/pkg/rubrics"
	"github.com/rizome-dev/go-mathreward/pkg/types"
	"github.com/rizome-dev/go-mathreward/pkg/utils"
)

func newScoreCommand() *cobra.Command {
	var (
		solution      string
		groundTruth   string
		inputFile     string
		maxConcurrent int
	)
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute the reward for one transcript or a JSONL batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			if inputFile != "" {
				return scoreBatch(cmd.Context(), inputFile, maxConcurrent, cmd.OutOrStdout())
			}
			if solution == "" {
				return fmt.Errorf("either --input or --solution is required")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%g\n", rubrics.ComputeScore(solution, groundTruth))
			return nil
		},
	}
	cmd.Flags().StringVarP(&solution, "solution", "s", "", "solution transcript to score")
	cmd.Flags().StringVarP(&groundTruth, "ground-truth", "g", "", "reference answer")
	cmd.Flags().StringVar(&inputFile, "input", "", "JSONL file of {solution, ground_truth} records")
	cmd.Flags().IntVar(&maxConcurrent, "max-concurrent", runtime.NumCPU(), "concurrent scoring workers for --input")
	return cmd
}

// scoreBatch scores every record of a JSONL file and writes each record back
// out with its score filled in.
func scoreBatch(ctx context.Context, path string, maxConcurrent int, out io.Writer) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	samples, err := readSamples(file)
	if err != nil {
		return err
	}

	rubric := rubrics.NewBacktrackRubric()
	scores, err := utils.ParallelMap(ctx, samples, maxConcurrent, func(ctx context.Context, s types.Sample) (float64, error) {
		return rubric.ComputeReward(ctx, s.Solution, s.GroundTruth)
	})
	if err != nil {
		return fmt.Errorf("score batch: %w", err)
	}

	encoder := json.NewEncoder(out)
	for i, sample := range samples {
		sample.Score = scores[i]
		if err := encoder.Encode(sample); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	}
	return nil
}

func readSamples(r io.Reader) ([]types.Sample, error) {
	var samples []types.Sample
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var sample types.Sample
		if err := json.Unmarshal([]byte(line), &sample); err != nil {
			return nil, fmt.Errorf("parse input line %d: %w", len(samples)+1, err)
		}
		samples = append(samples, sample)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return samples, nil
}
