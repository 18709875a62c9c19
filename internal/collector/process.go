package collector

import (
	"context"
	"fmt"
	"sort"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/playok/healthmon/internal/model"
)

const topProcessCount = 5

type processCollector struct {
	processes func(ctx context.Context) ([]*process.Process, error)
}

// NewProcessCollector counts processes in all states, counts zombies, and
// ranks the top consumers by CPU for display.
func NewProcessCollector() Collector {
	return &processCollector{processes: process.ProcessesWithContext}
}

func (c *processCollector) ID() string   { return "process" }
func (c *processCollector) Name() string { return "Process" }

type procInfo struct {
	pid    int32
	name   string
	cpuPct float64
}

func (c *processCollector) Collect(ctx context.Context) ([]model.Metric, error) {
	procs, err := c.processes(ctx)
	if err != nil {
		return nil, fmt.Errorf("process: %w", err)
	}

	metrics := []model.Metric{
		metric("proc.total", float64(len(procs)), model.UnitCount),
	}

	zombies := 0
	var infos []procInfo
	for _, p := range procs {
		if statuses, err := p.StatusWithContext(ctx); err == nil && hasStatus(statuses, process.Zombie) {
			zombies++
		}
		name, _ := p.NameWithContext(ctx)
		cpuPct, _ := p.CPUPercentWithContext(ctx)
		infos = append(infos, procInfo{pid: p.Pid, name: name, cpuPct: cpuPct})
	}
	metrics = append(metrics, metric("proc.zombies", float64(zombies), model.UnitCount))

	// Top consumers by CPU, display only
	sort.Slice(infos, func(i, j int) bool { return infos[i].cpuPct > infos[j].cpuPct })
	for i := 0; i < topProcessCount && i < len(infos); i++ {
		p := infos[i]
		metrics = append(metrics, labeled(
			fmt.Sprintf("proc.top_cpu.%d", i), p.cpuPct, model.UnitPercent,
			fmt.Sprintf("%s (pid %d)", p.name, p.pid),
		))
	}

	return metrics, nil
}

func hasStatus(statuses []string, want string) bool {
	for _, s := range statuses {
		if s == want {
			return true
		}
	}
	return false
}
