// Package monitor runs check cycles: collect each subsystem in a fixed
// order, evaluate, persist alerts and the report, and reduce the results to
// one overall status.
package monitor

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/playok/healthmon/internal/alertlog"
	"github.com/playok/healthmon/internal/check"
	"github.com/playok/healthmon/internal/collector"
	"github.com/playok/healthmon/internal/config"
	"github.com/playok/healthmon/internal/model"
	"github.com/playok/healthmon/internal/report"
)

// Monitor orchestrates one-shot and continuous check cycles.
type Monitor struct {
	cfg        *config.Config
	collectors []collector.Collector
	alerts     *alertlog.Log
	reports    *report.Generator

	// Check output goes here so it survives report-write failures.
	out io.Writer

	now      func() time.Time
	newRunID func() string
	sysInfo  func(ctx context.Context) (model.SystemInfo, error)
}

// New wires a monitor with the real collectors in their fixed evaluation
// order: CPU, Memory, Disk, Process.
func New(cfg *config.Config) *Monitor {
	return &Monitor{
		cfg: cfg,
		collectors: []collector.Collector{
			collector.NewCPUCollector(),
			collector.NewMemoryCollector(),
			collector.NewDiskCollector(),
			collector.NewProcessCollector(),
		},
		alerts:   alertlog.New(cfg.AlertLog),
		reports:  report.New(cfg.ReportFile),
		out:      os.Stdout,
		now:      time.Now,
		newRunID: uuid.NewString,
		sysInfo:  collector.SystemInfo,
	}
}

// RunOnce executes one full check cycle and returns its summary. A degraded
// collector never aborts the run; the error return covers persistence
// failures only, and even then the report text has already been printed to
// the console.
func (m *Monitor) RunOnce(ctx context.Context) (model.RunSummary, error) {
	summary := model.RunSummary{
		RunID:     m.newRunID(),
		Timestamp: m.now(),
	}

	for _, c := range m.collectors {
		metrics, err := c.Collect(ctx)
		if err != nil {
			log.Printf("[monitor] %s collector degraded: %v", c.ID(), err)
		}
		res := check.Evaluate(c.Name(), metrics, m.cfg)
		summary.Results = append(summary.Results, res)

		fmt.Fprintf(m.out, "[%s] %s: %s\n", res.Severity, res.Subsystem, res.Message)

		if res.Severity > model.SeverityNormal {
			if err := m.alerts.Append(res.Severity, res.Message); err != nil {
				log.Printf("[monitor] run %s: %v", summary.RunID, err)
			}
		}
	}

	summary.Overall = check.Overall(summary.Results)
	fmt.Fprintf(m.out, "Overall status: %s\n", summary.Overall.OverallLabel())

	info, err := m.sysInfo(ctx)
	if err != nil {
		log.Printf("[monitor] host info unavailable: %v", err)
	}
	recent, err := m.alerts.Tail(5)
	if err != nil {
		log.Printf("[monitor] run %s: %v", summary.RunID, err)
	}

	text := report.Render(info, summary, recent)
	if err := m.reports.Write(text); err != nil {
		// Persistence failed; the report still reaches the operator.
		fmt.Fprint(m.out, text)
		return summary, err
	}

	return summary, nil
}

// RunContinuous repeats check cycles at the configured interval until the
// context is canceled. The first cycle runs immediately; each iteration is
// fully independent and there is no catch-up on drift.
func (m *Monitor) RunContinuous(ctx context.Context) error {
	interval := time.Duration(m.cfg.IntervalSec) * time.Second
	log.Printf("[monitor] continuous mode, interval %v", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if _, err := m.RunOnce(ctx); err != nil {
		log.Printf("[monitor] cycle error: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			log.Printf("[monitor] continuous mode stopped")
			return nil
		case <-ticker.C:
			if _, err := m.RunOnce(ctx); err != nil {
				log.Printf("[monitor] cycle error: %v", err)
			}
		}
	}
}
