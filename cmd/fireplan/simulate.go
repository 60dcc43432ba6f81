package main

import (
	"github.com/fireplan/fire-calculator/internal/output"
	"github.com/spf13/cobra"
)

func newSimulateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate [profile.yaml]",
		Short: "Run the year-by-year drawdown simulation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := a.loadProfile(cmd, args)
			if err != nil {
				return err
			}
			run, err := a.engine.Simulate(profile, profile.Drawdown)
			if err != nil {
				return err
			}
			report := a.newReport(profile)
			output.AttachRun(report, run, profile.Assumptions.Inflation)
			return a.emit(cmd, report)
		},
	}
	a.addRunFlags(cmd)
	return cmd
}
