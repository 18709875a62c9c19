package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/playok/healthmon/internal/alertlog"
	"github.com/playok/healthmon/internal/monitor"
	"github.com/playok/healthmon/internal/report"
)

const (
	alertTailLines = 20
	installPath    = "/usr/local/bin/healthmon"
)

func newReportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print the last written health report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.loadConfig()
			text, err := report.New(cfg.ReportFile).Read()
			if errors.Is(err, fs.ErrNotExist) {
				fmt.Println("No report found. Run a health check first.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Print(text)
			return nil
		},
	}
}

func newAlertsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "alerts",
		Short: "Print the most recent alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.loadConfig()
			lines, err := alertlog.New(cfg.AlertLog).Tail(alertTailLines)
			if err != nil {
				return err
			}
			if len(lines) == 0 {
				fmt.Println("No alerts recorded yet.")
				return nil
			}
			for _, line := range lines {
				fmt.Println(line)
			}
			return nil
		},
	}
}

func newContinuousCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "continuous",
		Short: "Run check cycles at a fixed interval until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.loadConfig()
			ctx, stop := signal.NotifyContext(context.Background(), shutdownSignals...)
			defer stop()
			return monitor.New(cfg).RunContinuous(ctx)
		},
	}
}

func newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Copy the executable to " + installPath,
		RunE: func(cmd *cobra.Command, args []string) error {
			exe, err := os.Executable()
			if err != nil {
				return fmt.Errorf("locate executable: %w", err)
			}
			if err := copyFile(exe, installPath, 0o755); err != nil {
				return fmt.Errorf("install: %w", err)
			}
			fmt.Printf("Installed to %s\n", installPath)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("healthmon %s\n", version)
		},
	}
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
