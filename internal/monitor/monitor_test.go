package monitor

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/playok/healthmon/internal/alertlog"
	"github.com/playok/healthmon/internal/check"
	"github.com/playok/healthmon/internal/collector"
	"github.com/playok/healthmon/internal/config"
	"github.com/playok/healthmon/internal/model"
	"github.com/playok/healthmon/internal/report"
)

type stubCollector struct {
	id      string
	name    string
	metrics []model.Metric
	err     error
}

func (s *stubCollector) ID() string   { return s.id }
func (s *stubCollector) Name() string { return s.name }
func (s *stubCollector) Collect(ctx context.Context) ([]model.Metric, error) {
	return s.metrics, s.err
}

func quietHost() []collector.Collector {
	return []collector.Collector{
		&stubCollector{id: "cpu", name: check.SubsystemCPU, metrics: []model.Metric{
			{Name: "cpu.usage_pct", Value: 10}, {Name: "cpu.load1", Value: 0.5}, {Name: "cpu.cores", Value: 4},
		}},
		&stubCollector{id: "memory", name: check.SubsystemMemory, metrics: []model.Metric{
			{Name: "mem.used_pct", Value: 40}, {Name: "mem.free_mb", Value: 8000},
		}},
		&stubCollector{id: "disk", name: check.SubsystemDisk, metrics: []model.Metric{
			{Name: "disk.root.used_pct", Value: 30}, {Name: "disk.root.inodes_pct", Value: 5},
		}},
		&stubCollector{id: "process", name: check.SubsystemProcess, metrics: []model.Metric{
			{Name: "proc.total", Value: 120}, {Name: "proc.zombies", Value: 0},
		}},
	}
}

func newTestMonitor(t *testing.T, collectors []collector.Collector) (*Monitor, *bytes.Buffer, *config.Config) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.AlertLog = filepath.Join(dir, "alerts.log")
	cfg.ReportFile = filepath.Join(dir, "report.txt")
	cfg.IntervalSec = 1

	out := &bytes.Buffer{}
	m := &Monitor{
		cfg:        cfg,
		collectors: collectors,
		alerts:     alertlog.New(cfg.AlertLog),
		reports:    report.New(cfg.ReportFile),
		out:        out,
		now:        func() time.Time { return time.Date(2026, 8, 24, 10, 30, 0, 0, time.UTC) },
		newRunID:   func() string { return "run-test" },
		sysInfo: func(ctx context.Context) (model.SystemInfo, error) {
			return model.SystemInfo{Hostname: "test-host", Uptime: time.Hour}, nil
		},
	}
	return m, out, cfg
}

func TestRunOnceHealthy(t *testing.T) {
	m, out, cfg := newTestMonitor(t, quietHost())

	summary, err := m.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(summary.Results) != 4 {
		t.Fatalf("got %d results, want 4", len(summary.Results))
	}
	if summary.Overall != model.SeverityNormal || summary.Overall.ExitCode() != 0 {
		t.Fatalf("overall = %v exit %d, want NORMAL exit 0", summary.Overall, summary.Overall.ExitCode())
	}

	if _, err := os.Stat(cfg.AlertLog); !os.IsNotExist(err) {
		t.Fatalf("healthy run must not create the alert log")
	}
	text, err := report.New(cfg.ReportFile).Read()
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(text, "Overall Status : HEALTHY") {
		t.Fatalf("report missing healthy status:\n%s", text)
	}
	if !strings.Contains(out.String(), "Overall status: HEALTHY") {
		t.Fatalf("console output missing overall status:\n%s", out.String())
	}
}

func TestRunOnceCriticalAppendsAlertVerbatim(t *testing.T) {
	collectors := quietHost()
	collectors[1] = &stubCollector{id: "memory", name: check.SubsystemMemory, metrics: []model.Metric{
		{Name: "mem.used_pct", Value: 90}, {Name: "mem.free_mb", Value: 100},
	}}
	m, _, cfg := newTestMonitor(t, collectors)

	summary, err := m.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Overall != model.SeverityCritical || summary.Overall.ExitCode() != 1 {
		t.Fatalf("overall = %v exit %d, want CRITICAL exit 1", summary.Overall, summary.Overall.ExitCode())
	}

	lines, err := alertlog.New(cfg.AlertLog).Tail(20)
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("got %d alert lines, want 1", len(lines))
	}
	var memResult model.CheckResult
	for _, r := range summary.Results {
		if r.Subsystem == check.SubsystemMemory {
			memResult = r
		}
	}
	if !strings.HasSuffix(lines[0], "[CRITICAL] "+memResult.Message) {
		t.Fatalf("alert line %q does not carry level and message %q", lines[0], memResult.Message)
	}
}

func TestRunOnceWarningExitCode(t *testing.T) {
	collectors := quietHost()
	collectors[3] = &stubCollector{id: "process", name: check.SubsystemProcess, metrics: []model.Metric{
		{Name: "proc.total", Value: 501}, {Name: "proc.zombies", Value: 0},
	}}
	m, _, _ := newTestMonitor(t, collectors)

	summary, err := m.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Overall != model.SeverityWarning || summary.Overall.ExitCode() != 2 {
		t.Fatalf("overall = %v exit %d, want WARNING exit 2", summary.Overall, summary.Overall.ExitCode())
	}
}

func TestRunOnceDegradedCollectorDoesNotAbort(t *testing.T) {
	collectors := quietHost()
	collectors[0] = &stubCollector{id: "cpu", name: check.SubsystemCPU, err: context.DeadlineExceeded}
	m, _, _ := newTestMonitor(t, collectors)

	summary, err := m.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(summary.Results) != 4 {
		t.Fatalf("got %d results, want 4 (degraded subsystem must still produce one)", len(summary.Results))
	}
	if summary.Results[0].Severity != model.SeverityNormal {
		t.Fatalf("degraded CPU check severity = %v, want NORMAL", summary.Results[0].Severity)
	}
	if summary.Overall != model.SeverityNormal {
		t.Fatalf("overall = %v, want NORMAL", summary.Overall)
	}
}

func TestRunOnceReportWriteFailureStillPrints(t *testing.T) {
	m, out, cfg := newTestMonitor(t, quietHost())
	cfg.ReportFile = filepath.Join(t.TempDir(), "no-such-dir", "report.txt")
	m.reports = report.New(cfg.ReportFile)

	summary, err := m.RunOnce(context.Background())
	if err == nil {
		t.Fatalf("expected report write error")
	}
	if summary.Overall != model.SeverityNormal {
		t.Fatalf("overall = %v, want NORMAL despite write failure", summary.Overall)
	}
	if !strings.Contains(out.String(), "HEALTH CHECK SUMMARY") {
		t.Fatalf("report text not printed to console on write failure:\n%s", out.String())
	}
}

func TestRunContinuousStopsOnContextCancel(t *testing.T) {
	m, _, _ := newTestMonitor(t, quietHost())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- m.RunContinuous(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("continuous mode returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("continuous mode did not stop after context cancellation")
	}
}
