package collector

import (
	"context"
	"fmt"
	"math"

	"github.com/shirou/gopsutil/v4/disk"

	"github.com/playok/healthmon/internal/model"
)

type diskCollector struct {
	usage      func(ctx context.Context, path string) (*disk.UsageStat, error)
	partitions func(ctx context.Context, all bool) ([]disk.PartitionStat, error)
}

// NewDiskCollector evaluates the root filesystem and additionally walks all
// mounted filesystems for display.
func NewDiskCollector() Collector {
	return &diskCollector{
		usage:      disk.UsageWithContext,
		partitions: disk.PartitionsWithContext,
	}
}

func (c *diskCollector) ID() string   { return "disk" }
func (c *diskCollector) Name() string { return "Disk" }

func (c *diskCollector) Collect(ctx context.Context) ([]model.Metric, error) {
	var metrics []model.Metric

	root, err := c.usage(ctx, "/")
	if err == nil {
		metrics = append(metrics,
			metric("disk.root.used_pct", math.Trunc(root.UsedPercent), model.UnitPercent),
			metric("disk.root.free_mb", float64(root.Free/mib), model.UnitMegabytes),
			metric("disk.root.inodes_pct", math.Trunc(root.InodesUsedPercent), model.UnitPercent),
		)
	}

	// Per-mount walk, display only: these samples carry a Label and are
	// never evaluated against thresholds.
	if parts, perr := c.partitions(ctx, false); perr == nil {
		for _, p := range parts {
			u, uerr := c.usage(ctx, p.Mountpoint)
			if uerr != nil {
				continue
			}
			metrics = append(metrics,
				labeled("disk.mount.used_pct", math.Trunc(u.UsedPercent), model.UnitPercent, p.Mountpoint),
				labeled("disk.mount.free_mb", float64(u.Free/mib), model.UnitMegabytes, p.Mountpoint),
			)
		}
	}

	if len(metrics) == 0 {
		return nil, fmt.Errorf("disk: %w", err)
	}
	return metrics, nil
}
