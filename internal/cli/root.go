// Package cli implements the healthmon command surface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/playok/healthmon/internal/config"
	"github.com/playok/healthmon/internal/monitor"
)

var version = "dev"

// rootOptions holds flag overrides applied on top of the loaded config.
type rootOptions struct {
	configPath string
	alertLog   string
	reportFile string
	interval   int
}

// loadConfig resolves the effective configuration: defaults < config file <
// environment < flags.
func (o *rootOptions) loadConfig() *config.Config {
	cfg := config.Load(o.configPath)
	if o.alertLog != "" {
		cfg.AlertLog = o.alertLog
	}
	if o.reportFile != "" {
		cfg.ReportFile = o.reportFile
	}
	if o.interval > 0 {
		cfg.IntervalSec = o.interval
	}
	return cfg
}

// Execute runs the command surface and returns the process exit code.
// A bare `healthmon` runs one check cycle and exits 0 (healthy),
// 1 (critical) or 2 (warning).
func Execute() int {
	exitCode := 0
	root := newRootCmd(&exitCode)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "healthmon: %v\n", err)
		return 1
	}
	return exitCode
}

func newRootCmd(exitCode *int) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "healthmon",
		Short: "Single-host health monitor",
		Long: `healthmon samples CPU, memory, disk, and process metrics, compares them
against configured thresholds, appends alerts to a durable log, and writes a
point-in-time report.

Run with no arguments for a single check cycle. The exit code reflects the
overall status: 0 healthy, 1 critical, 2 warning.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.loadConfig()
			summary, err := monitor.New(cfg).RunOnce(cmd.Context())
			if err != nil {
				fmt.Fprintf(os.Stderr, "healthmon: %v\n", err)
			}
			*exitCode = summary.Overall.ExitCode()
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "path to healthmon.yaml")
	pf.StringVar(&opts.alertLog, "alert-log", "", "alert log path override")
	pf.StringVar(&opts.reportFile, "report-file", "", "report file path override")
	pf.IntVar(&opts.interval, "interval", 0, "continuous mode interval in seconds")

	root.AddCommand(
		newReportCmd(opts),
		newAlertsCmd(opts),
		newContinuousCmd(opts),
		newStartCmd(opts),
		newStopCmd(opts),
		newStatusCmd(opts),
		newInstallCmd(),
		newVersionCmd(),
	)

	return root
}
