// Package report renders a point-in-time health report and persists it to a
// single file that is fully overwritten each cycle.
package report

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/playok/healthmon/internal/model"
)

const (
	fileMode = 0o644
	divider  = "=========================================="
)

// Generator writes and reads the report file.
type Generator struct {
	path string
}

func New(path string) *Generator {
	return &Generator{path: path}
}

// Render builds the full report text: system identity, one section per
// subsystem, and a summary with the most recent alerts (or a placeholder).
func Render(info model.SystemInfo, summary model.RunSummary, recentAlerts []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", divider)
	fmt.Fprintf(&b, "       SYSTEM HEALTH CHECK REPORT\n")
	fmt.Fprintf(&b, "%s\n\n", divider)

	b.WriteString("SYSTEM INFORMATION\n")
	fmt.Fprintf(&b, "  Hostname : %s\n", info.Hostname)
	fmt.Fprintf(&b, "  OS       : %s\n", orUnknown(info.Platform))
	fmt.Fprintf(&b, "  Kernel   : %s\n", orUnknown(info.KernelVersion))
	fmt.Fprintf(&b, "  Uptime   : %s\n\n", formatUptime(info.Uptime))

	for _, r := range summary.Results {
		fmt.Fprintf(&b, "--- %s ---\n", strings.ToUpper(r.Subsystem))
		fmt.Fprintf(&b, "Status: %s\n", r.Severity)
		fmt.Fprintf(&b, "%s\n", r.Message)
		for _, m := range r.Metrics {
			b.WriteString(metricLine(m))
		}
		b.WriteString("\n")
	}

	b.WriteString("HEALTH CHECK SUMMARY\n")
	fmt.Fprintf(&b, "  Timestamp      : %s\n", summary.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "  Run ID         : %s\n", summary.RunID)
	fmt.Fprintf(&b, "  Overall Status : %s\n\n", summary.Overall.OverallLabel())

	b.WriteString("Recent Alerts:\n")
	if len(recentAlerts) == 0 {
		b.WriteString("  No alerts recorded.\n")
	} else {
		for _, line := range recentAlerts {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}

	return b.String()
}

// Write replaces the report file with the given text.
func (g *Generator) Write(text string) error {
	if err := os.WriteFile(g.path, []byte(text), fileMode); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Read returns the last written report. The caller distinguishes a missing
// file (no report yet) via errors.Is(err, fs.ErrNotExist).
func (g *Generator) Read() (string, error) {
	data, err := os.ReadFile(g.path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func metricLine(m model.Metric) string {
	v := strconv.FormatFloat(m.Value, 'f', -1, 64)
	line := "  " + m.Name + " = " + v
	if m.Unit != "" && m.Unit != model.UnitCount {
		line += " " + string(m.Unit)
	}
	if m.Label != "" {
		line += "  (" + m.Label + ")"
	}
	return line + "\n"
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}

func formatUptime(d time.Duration) string {
	if d <= 0 {
		return "unknown"
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
