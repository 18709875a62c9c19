package collector

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/mem"

	"github.com/playok/healthmon/internal/model"
)

const mib = 1024 * 1024

type memoryCollector struct {
	virtual func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	swap    func(ctx context.Context) (*mem.SwapMemoryStat, error)
}

// NewMemoryCollector reports physical memory and swap in whole megabytes.
func NewMemoryCollector() Collector {
	return &memoryCollector{
		virtual: mem.VirtualMemoryWithContext,
		swap:    mem.SwapMemoryWithContext,
	}
}

func (c *memoryCollector) ID() string   { return "memory" }
func (c *memoryCollector) Name() string { return "Memory" }

func (c *memoryCollector) Collect(ctx context.Context) ([]model.Metric, error) {
	var metrics []model.Metric

	vm, err := c.virtual(ctx)
	if err == nil {
		totalMB := vm.Total / mib
		usedMB := vm.Used / mib
		freeMB := vm.Free / mib
		metrics = append(metrics,
			metric("mem.total_mb", float64(totalMB), model.UnitMegabytes),
			metric("mem.used_mb", float64(usedMB), model.UnitMegabytes),
			metric("mem.free_mb", float64(freeMB), model.UnitMegabytes),
			metric("mem.used_pct", usagePercent(usedMB, totalMB), model.UnitPercent),
		)
	}

	if sw, err := c.swap(ctx); err == nil {
		metrics = append(metrics, metric("mem.swap_used_mb", float64(sw.Used/mib), model.UnitMegabytes))
	}

	if len(metrics) == 0 {
		return nil, fmt.Errorf("memory: %w", err)
	}
	return metrics, nil
}

// usagePercent computes used*100/total with integer truncation, the same
// arithmetic `free -m` pipelines produce.
func usagePercent(used, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(used * 100 / total)
}
