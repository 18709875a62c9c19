package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shirou/gopsutil/v4/load"

	"github.com/playok/healthmon/internal/model"
)

func TestCPUFallsBackToInstantSnapshot(t *testing.T) {
	c := &cpuCollector{
		sampleWindow: time.Second,
		percent: func(ctx context.Context, interval time.Duration, percpu bool) ([]float64, error) {
			if interval > 0 {
				return nil, errors.New("sampling source unavailable")
			}
			return []float64{42.5}, nil
		},
		counts:  func(ctx context.Context, logical bool) (int, error) { return 4, nil },
		loadAvg: func(ctx context.Context) (*load.AvgStat, error) { return &load.AvgStat{Load1: 1.5}, nil },
	}

	metrics, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if v, ok := model.MetricValue(metrics, "cpu.usage_pct"); !ok || v != 42.5 {
		t.Fatalf("cpu.usage_pct = %v (ok=%v), want 42.5 from fallback source", v, ok)
	}
	if v, ok := model.MetricValue(metrics, "cpu.cores"); !ok || v != 4 {
		t.Fatalf("cpu.cores = %v (ok=%v), want 4", v, ok)
	}
	if v, ok := model.MetricValue(metrics, "cpu.load1"); !ok || v != 1.5 {
		t.Fatalf("cpu.load1 = %v (ok=%v), want 1.5", v, ok)
	}
}

func TestCPUPartialSourcesStillCollect(t *testing.T) {
	c := &cpuCollector{
		sampleWindow: time.Second,
		percent: func(ctx context.Context, interval time.Duration, percpu bool) ([]float64, error) {
			return []float64{10}, nil
		},
		counts:  func(ctx context.Context, logical bool) (int, error) { return 0, errors.New("no cores") },
		loadAvg: func(ctx context.Context) (*load.AvgStat, error) { return nil, errors.New("no loadavg") },
	}

	metrics, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if _, ok := model.MetricValue(metrics, "cpu.usage_pct"); !ok {
		t.Fatalf("usage metric missing despite working source")
	}
	if _, ok := model.MetricValue(metrics, "cpu.load1"); ok {
		t.Fatalf("load metric present despite failed source")
	}
}

func TestCPUAllSourcesFailing(t *testing.T) {
	fail := errors.New("nope")
	c := &cpuCollector{
		sampleWindow: time.Second,
		percent: func(ctx context.Context, interval time.Duration, percpu bool) ([]float64, error) {
			return nil, fail
		},
		counts:  func(ctx context.Context, logical bool) (int, error) { return 0, fail },
		loadAvg: func(ctx context.Context) (*load.AvgStat, error) { return nil, fail },
	}
	if _, err := c.Collect(context.Background()); err == nil {
		t.Fatalf("expected error when every source fails")
	}
}
