package main

import (
	"github.com/fireplan/fire-calculator/internal/output"
	"github.com/spf13/cobra"
)

func newCompareCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [profile.yaml]",
		Short: "Run every strategy and recommend one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := a.loadProfile(cmd, args)
			if err != nil {
				return err
			}
			outcomes, best, err := a.engine.CompareStrategies(profile, profile.Drawdown)
			if err != nil {
				return err
			}
			report := a.newReport(profile)
			output.AttachComparison(report, outcomes, best)
			return a.emit(cmd, report)
		},
	}
	a.addRunFlags(cmd)
	return cmd
}
