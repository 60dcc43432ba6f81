package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fireplan/fire-calculator/internal/cache"
	"github.com/fireplan/fire-calculator/internal/calculation"
	"github.com/fireplan/fire-calculator/internal/config"
	"github.com/fireplan/fire-calculator/internal/domain"
	"github.com/fireplan/fire-calculator/internal/logging"
	"github.com/fireplan/fire-calculator/internal/output"
	money "github.com/fireplan/fire-calculator/pkg/decimal"
	"github.com/spf13/cobra"
)

// app holds flag values and the per-invocation services built from them.
type app struct {
	settingsPath string
	format       string
	logLevel     string
	logFormat    string
	outputFile   string
	profilePath  string
	rulesPath    string
	noCache      bool

	strategy     string
	priority     []string
	horizon      int
	budget       string
	reserve      string
	snapPreserve string
	realDollars  bool

	settings config.Settings
	logger   *slog.Logger
	engine   *cache.Engine
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "fireplan",
		Short:         "FIRE drawdown and benefit planning calculator",
		Long:          "Project year-by-year solvency, taxes and means-tested benefits (ACA, Medicaid, SNAP) for an early-retirement household.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.settingsPath, "config", "", "Settings file (default $XDG_CONFIG_HOME/fireplan/config.toml)")
	pf.StringVarP(&a.format, "format", "f", "", "Output format: "+strings.Join(output.AvailableFormatterNames(), ", "))
	pf.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&a.logFormat, "log-format", "", "Log format: text or json")
	pf.StringVarP(&a.outputFile, "output", "o", "", "Write the report to a file instead of stdout")
	pf.StringVarP(&a.profilePath, "profile", "p", "", "Household profile YAML")
	pf.StringVar(&a.rulesPath, "rules", "", "Rules YAML overlaid on the built-in tax and benefit tables")
	pf.BoolVar(&a.noCache, "no-cache", false, "Disable the in-process result cache")

	root.AddCommand(
		newSimulateCmd(a),
		newSolveCmd(a),
		newSummaryCmd(a),
		newBenefitsCmd(a),
		newCompareCmd(a),
		newInitCmd(a),
		newConfigCmd(a),
	)
	return root
}

// addRunFlags registers drawdown overrides shared by run-style commands.
func (a *app) addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&a.strategy, "strategy", "s", "", "Strategy: RAW, PLATINUM, SILVER, UNCONSTRAINED")
	f.StringSliceVar(&a.priority, "priority", nil, "Bucket draw order, e.g. cash,taxable,pretax")
	f.IntVar(&a.horizon, "horizon", 0, "Last simulated age (default 100)")
	f.StringVar(&a.budget, "budget", "", "Manual year-one budget, e.g. \"$60,000\"")
	f.StringVar(&a.reserve, "reserve", "", "Cash reserve never drawn")
	f.StringVar(&a.snapPreserve, "snap-preserve", "", "Monthly SNAP amount to preserve")
	f.BoolVar(&a.realDollars, "real-dollars", false, "Report amounts in today's dollars")
}

func (a *app) setup(cmd *cobra.Command) error {
	s, err := config.LoadSettings(a.settingsPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("format") {
		s.Output.Format = a.format
	}
	if flags.Changed("log-level") {
		s.Logging.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		s.Logging.Format = a.logFormat
	}
	if flags.Changed("profile") {
		s.General.ProfilePath = a.profilePath
	}
	if flags.Changed("rules") {
		s.General.RulesPath = a.rulesPath
	}
	if flags.Changed("real-dollars") {
		s.Output.RealDollars = a.realDollars
	}
	if a.noCache {
		s.Cache.Enabled = false
	}
	a.settings = s

	a.logger = logging.New(cmd.ErrOrStderr(), logging.Options{Level: s.Logging.Level, Format: s.Logging.Format})
	cmd.SetContext(logging.ToContext(cmd.Context(), a.logger))

	rules := calculation.DefaultRules()
	if s.General.RulesPath != "" {
		rules, err = config.NewInputParser().LoadRulesFromFile(s.General.RulesPath)
		if err != nil {
			return err
		}
		a.logger.Debug("rules loaded", "path", s.General.RulesPath, "jurisdictions", len(rules.Jurisdictions))
	}
	engine := calculation.NewCalculationEngineWithRules(rules)
	engine.SetLogger(logging.NewAdapter(a.logger))

	var rc *cache.ResultCache
	if s.Cache.Enabled {
		rc = cache.New(time.Duration(s.Cache.TTLMinutes) * time.Minute)
	}
	a.engine = cache.Wrap(engine, rc)
	return nil
}

// loadProfile reads the profile named by args, --profile or settings, and
// applies command-line drawdown overrides.
func (a *app) loadProfile(cmd *cobra.Command, args []string) (*domain.HouseholdProfile, error) {
	path := a.settings.General.ProfilePath
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return nil, fmt.Errorf("no profile given; pass a path, --profile, or run 'fireplan init'")
	}
	profile, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	if err := a.applyOverrides(cmd, profile); err != nil {
		return nil, err
	}
	logging.FromContext(cmd.Context()).Debug("profile loaded", "path", path, "strategy", profile.Drawdown.Mode())
	return profile, nil
}

func (a *app) applyOverrides(cmd *cobra.Command, p *domain.HouseholdProfile) error {
	flags := cmd.Flags()
	d := &p.Drawdown
	if flags.Changed("strategy") {
		mode, err := domain.ParseStrategyMode(a.strategy)
		if err != nil {
			return err
		}
		d.Strategy = mode
	}
	if flags.Changed("priority") {
		keys := make([]domain.BucketKey, 0, len(a.priority))
		for _, raw := range a.priority {
			k, err := domain.ParseBucketKey(raw)
			if err != nil {
				return err
			}
			keys = append(keys, k)
		}
		d.Priority = keys
	}
	if flags.Changed("horizon") {
		d.HorizonAge = a.horizon
	}
	if flags.Changed("budget") {
		*d = d.WithBudget(money.ParseMoney(a.budget))
	}
	if flags.Changed("reserve") {
		d.CashReserve = money.ParseMoney(a.reserve)
	}
	if flags.Changed("snap-preserve") {
		d.SnapPreserve = money.ParseMoney(a.snapPreserve)
	}
	if a.settings.Output.RealDollars {
		d.RealDollars = true
	}
	return calculation.ValidateConfig(*d, p.Assumptions.CurrentAge)
}

// newReport starts a report honouring the profile's real-dollars flag.
func (a *app) newReport(p *domain.HouseholdProfile) *domain.Report {
	return output.NewReport(p, p.Drawdown.RealDollars)
}

// emit renders report to --output or the command's stdout.
func (a *app) emit(cmd *cobra.Command, report *domain.Report) error {
	var w io.Writer = cmd.OutOrStdout()
	if a.outputFile != "" {
		f, err := os.Create(a.outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := output.Render(w, report, a.settings.Output.Format); err != nil {
		return err
	}
	if a.outputFile != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", a.outputFile)
	}
	return nil
}
