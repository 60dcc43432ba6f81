package main

import (
	"github.com/spf13/cobra"
)

func newSummaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary [profile.yaml]",
		Short: "Show point-in-time household totals",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := a.loadProfile(cmd, args)
			if err != nil {
				return err
			}
			return a.emit(cmd, a.newReport(profile))
		},
	}
}
