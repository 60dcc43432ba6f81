package main

import (
	"github.com/fireplan/fire-calculator/internal/calculation"
	"github.com/fireplan/fire-calculator/internal/output"
	money "github.com/fireplan/fire-calculator/pkg/decimal"
	"github.com/spf13/cobra"
)

func newSolveCmd(a *app) *cobra.Command {
	var (
		maxIter   int
		tolerance string
		upper     string
	)
	cmd := &cobra.Command{
		Use:   "solve [profile.yaml]",
		Short: "Find the highest sustainable year-one budget (die with zero)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := a.loadProfile(cmd, args)
			if err != nil {
				return err
			}
			opts := calculation.SolverOptions{
				MaxIterations: maxIter,
				Tolerance:     money.ParseMoney(tolerance),
				Upper:         money.ParseMoney(upper),
			}
			res, err := a.engine.SolveDetailed(profile, profile.Drawdown, opts)
			if err != nil {
				return err
			}
			run, err := a.engine.Simulate(profile, profile.Drawdown.WithBudget(res.Budget))
			if err != nil {
				return err
			}
			report := a.newReport(profile)
			report.Solve = res
			output.AttachRun(report, run, profile.Assumptions.Inflation)
			return a.emit(cmd, report)
		},
	}
	a.addRunFlags(cmd)
	cmd.Flags().IntVar(&maxIter, "max-iterations", 0, "Bisection iteration cap (default 50)")
	cmd.Flags().StringVar(&tolerance, "tolerance", "", "Final net worth tolerance in dollars (default $1)")
	cmd.Flags().StringVar(&upper, "upper", "", "Upper budget bound (default derived from resources)")
	return cmd
}
