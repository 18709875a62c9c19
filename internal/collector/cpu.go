package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/load"

	"github.com/playok/healthmon/internal/model"
)

type cpuCollector struct {
	sampleWindow time.Duration

	// OS hooks, replaceable in tests
	percent func(ctx context.Context, interval time.Duration, percpu bool) ([]float64, error)
	counts  func(ctx context.Context, logical bool) (int, error)
	loadAvg func(ctx context.Context) (*load.AvgStat, error)
}

// NewCPUCollector samples overall CPU utilization over a short window,
// falling back to an instantaneous snapshot when sampling fails.
func NewCPUCollector() Collector {
	return &cpuCollector{
		sampleWindow: time.Second,
		percent:      cpu.PercentWithContext,
		counts:       cpu.CountsWithContext,
		loadAvg:      load.AvgWithContext,
	}
}

func (c *cpuCollector) ID() string   { return "cpu" }
func (c *cpuCollector) Name() string { return "CPU" }

func (c *cpuCollector) Collect(ctx context.Context) ([]model.Metric, error) {
	var metrics []model.Metric

	util, err := c.percent(ctx, c.sampleWindow, false)
	if err != nil || len(util) == 0 {
		// Instantaneous snapshot as the fallback source
		util, err = c.percent(ctx, 0, false)
	}
	if err == nil && len(util) > 0 {
		metrics = append(metrics, metric("cpu.usage_pct", util[0], model.UnitPercent))
	}

	if n, err := c.counts(ctx, true); err == nil && n > 0 {
		metrics = append(metrics, metric("cpu.cores", float64(n), model.UnitCount))
	}

	if avg, err := c.loadAvg(ctx); err == nil {
		metrics = append(metrics, metric("cpu.load1", avg.Load1, model.UnitRatio))
	}

	if len(metrics) == 0 {
		return nil, fmt.Errorf("cpu: no metric source available")
	}
	return metrics, nil
}
