package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kpidash/internal/model"
	"kpidash/internal/parser"
	"kpidash/internal/service/calculator"
)

// NewClassifyCmd 创建 classify 命令
func NewClassifyCmd() *cobra.Command {
	var actual, benchmark, direction string

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify one KPI value against its benchmark",
		Long: `Print the status (Green, Yellow, Red or Gray) of a single KPI.
An empty --actual or --benchmark means the value is absent.`,
		Example: `  kpidash classify --actual 95 --benchmark 100
  kpidash classify --actual 12 --benchmark 10 --direction LowerIsBetter`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, ok := parser.ParseNumber(actual)
			if !ok {
				return fmt.Errorf("--actual %q is not a number", actual)
			}
			b, ok := parser.ParseNumber(benchmark)
			if !ok {
				return fmt.Errorf("--benchmark %q is not a number", benchmark)
			}

			status := calculator.Classify(a, b, model.Direction(direction))
			fmt.Fprintln(cmd.OutOrStdout(), status)
			return nil
		},
	}

	cmd.Flags().StringVarP(&actual, "actual", "a", "", "Actual value")
	cmd.Flags().StringVarP(&benchmark, "benchmark", "b", "", "Benchmark value")
	cmd.Flags().StringVarP(&direction, "direction", "d", string(model.HigherIsBetter), "HigherIsBetter or LowerIsBetter")

	return cmd
}
