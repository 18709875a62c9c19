//go:build !windows

package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// newStartCmd daemonizes the continuous loop: re-exec with the `continuous`
// subcommand, detached from the terminal, diagnostics appended to the
// daemon log file.
func newStartCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Run continuous monitoring as a background daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.loadConfig()

			if pid, err := readPidFile(cfg.PidFile); err == nil {
				if processExists(pid) {
					return fmt.Errorf("already running (PID %d)", pid)
				}
				// Stale PID file
				os.Remove(cfg.PidFile)
			}

			exe, err := os.Executable()
			if err != nil {
				return fmt.Errorf("locate executable: %w", err)
			}

			logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("open log file %s: %w", cfg.LogFile, err)
			}
			defer logFile.Close()

			childArgs := []string{"continuous", "--config", cfg.ConfigPath}
			child := &exec.Cmd{
				Path:   exe,
				Args:   append([]string{filepath.Base(exe)}, childArgs...),
				Stdout: logFile,
				Stderr: logFile,
				SysProcAttr: &syscall.SysProcAttr{
					Setsid: true, // detach from terminal
				},
			}
			if err := child.Start(); err != nil {
				return fmt.Errorf("start daemon: %w", err)
			}

			pid := child.Process.Pid
			if err := writePidFile(cfg.PidFile, pid); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to write PID file: %v\n", err)
			}
			child.Process.Release()

			fmt.Printf("healthmon started (PID %d)\n", pid)
			fmt.Printf("  Interval : %ds\n", cfg.IntervalSec)
			fmt.Printf("  Alerts   : %s\n", cfg.AlertLog)
			fmt.Printf("  Report   : %s\n", cfg.ReportFile)
			fmt.Printf("  PID      : %s\n", cfg.PidFile)
			fmt.Printf("  Log      : %s\n", cfg.LogFile)
			return nil
		},
	}
}

func newStopCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the background daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.loadConfig()

			pid, err := readPidFile(cfg.PidFile)
			if err != nil {
				return fmt.Errorf("not running (no PID file: %s)", cfg.PidFile)
			}
			if !processExists(pid) {
				os.Remove(cfg.PidFile)
				return fmt.Errorf("not running (stale PID %d)", pid)
			}

			proc, err := os.FindProcess(pid)
			if err != nil {
				return fmt.Errorf("find process %d: %w", pid, err)
			}
			if err := proc.Signal(syscall.SIGTERM); err != nil {
				return fmt.Errorf("stop PID %d: %w", pid, err)
			}

			// Wait for exit, up to 10 seconds
			for i := 0; i < 100; i++ {
				time.Sleep(100 * time.Millisecond)
				if !processExists(pid) {
					os.Remove(cfg.PidFile)
					fmt.Printf("healthmon stopped (PID %d)\n", pid)
					return nil
				}
			}

			fmt.Printf("stop signal sent (PID %d), waiting for exit...\n", pid)
			os.Remove(cfg.PidFile)
			return nil
		},
	}
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.loadConfig()

			pid, err := readPidFile(cfg.PidFile)
			if err != nil {
				fmt.Println("healthmon is stopped")
				return nil
			}
			if !processExists(pid) {
				os.Remove(cfg.PidFile)
				fmt.Printf("healthmon is stopped (stale PID file, was PID %d)\n", pid)
				return nil
			}

			fmt.Printf("healthmon is running (PID %d)\n", pid)
			fmt.Printf("  Interval : %ds\n", cfg.IntervalSec)
			fmt.Printf("  Alerts   : %s\n", cfg.AlertLog)
			fmt.Printf("  Report   : %s\n", cfg.ReportFile)
			fmt.Printf("  PID      : %s\n", cfg.PidFile)
			fmt.Printf("  Log      : %s\n", cfg.LogFile)
			return nil
		},
	}
}

func processExists(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// Signal 0 checks existence without actually sending a signal
	err = proc.Signal(syscall.Signal(0))
	return err == nil
}
