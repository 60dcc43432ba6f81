package main

import (
	"fmt"

	"github.com/fireplan/fire-calculator/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.settingsPath
			if path == "" {
				path = config.ConfigPath()
			}
			s := a.settings
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "  Settings file: %s\n\n", path)
			fmt.Fprintln(w, "  [general]")
			fmt.Fprintf(w, "    profile:      %s\n", orUnset(s.General.ProfilePath))
			fmt.Fprintf(w, "    rules:        %s\n", orUnset(s.General.RulesPath))
			fmt.Fprintln(w, "  [logging]")
			fmt.Fprintf(w, "    level:        %s\n", s.Logging.Level)
			fmt.Fprintf(w, "    format:       %s\n", s.Logging.Format)
			fmt.Fprintln(w, "  [output]")
			fmt.Fprintf(w, "    format:       %s\n", s.Output.Format)
			fmt.Fprintf(w, "    real_dollars: %t\n", s.Output.RealDollars)
			fmt.Fprintln(w, "  [cache]")
			fmt.Fprintf(w, "    enabled:      %t\n", s.Cache.Enabled)
			fmt.Fprintf(w, "    ttl_minutes:  %d\n", s.Cache.TTLMinutes)
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the effective settings to the settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.SaveSettings(a.settings, a.settingsPath); err != nil {
				return err
			}
			path := a.settingsPath
			if path == "" {
				path = config.ConfigPath()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Settings written to %s\n", path)
			return nil
		},
	})
	return cmd
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
