package main

import (
	money "github.com/fireplan/fire-calculator/pkg/decimal"
	"github.com/spf13/cobra"
)

func newBenefitsCmd(a *app) *cobra.Command {
	var income string
	cmd := &cobra.Command{
		Use:   "benefits [profile.yaml]",
		Short: "Determine health coverage tier and SNAP for an annual income",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := a.loadProfile(cmd, args)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("income") {
				profile.Benefits.SandboxIncome = money.ParseMoney(income)
			}
			det, err := a.engine.EvaluateBenefits(profile)
			if err != nil {
				return err
			}
			report := a.newReport(profile)
			report.Summary = nil
			report.Benefits = &det
			return a.emit(cmd, report)
		},
	}
	cmd.Flags().StringVar(&income, "income", "", "Annual MAGI to test, e.g. \"$28,000\" (default: profile sandbox_income)")
	return cmd
}
