package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rizome-dev/go-mathreward/pkg/utils"
)

func newCompareCommand() *cobra.Command {
	var numeric bool
	cmd := &cobra.Command{
		Use:   "compare <answer> <answer>",
		Short: "Check whether two answers are equivalent after normalization",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			equivalent := utils.IsEquivalent(args[0], args[1])
			if !equivalent && numeric {
				equivalent = utils.EvalEquivalent(args[0], args[1])
			}
			fmt.Fprintln(cmd.OutOrStdout(), equivalent)
			return nil
		},
	}
	cmd.Flags().BoolVar(&numeric, "numeric", false, "also try numeric expression evaluation")
	return cmd
}
