//go:build windows

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var shutdownSignals = []os.Signal{os.Interrupt}

func newStartCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Run continuous monitoring as a background daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("daemon mode is not supported on Windows; use 'continuous'")
		},
	}
}

func newStopCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the background daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("daemon mode is not supported on Windows")
		},
	}
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("daemon mode is not supported on Windows")
		},
	}
}

func processExists(pid int) bool { return false }
