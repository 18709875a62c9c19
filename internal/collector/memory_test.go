package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/shirou/gopsutil/v4/mem"

	"github.com/playok/healthmon/internal/model"
)

func TestUsagePercentTruncates(t *testing.T) {
	cases := []struct {
		used, total uint64
		want        float64
	}{
		{900, 1000, 90},
		{899, 1000, 89}, // 89.9 truncates
		{1, 3, 33},
		{0, 1000, 0},
		{500, 0, 0}, // guard against empty total
	}
	for _, tc := range cases {
		if got := usagePercent(tc.used, tc.total); got != tc.want {
			t.Fatalf("usagePercent(%d, %d) = %v, want %v", tc.used, tc.total, got, tc.want)
		}
	}
}

func TestMemoryCollectReportsMegabytes(t *testing.T) {
	c := &memoryCollector{
		virtual: func(ctx context.Context) (*mem.VirtualMemoryStat, error) {
			return &mem.VirtualMemoryStat{
				Total: 1000 * mib,
				Used:  900 * mib,
				Free:  100 * mib,
			}, nil
		},
		swap: func(ctx context.Context) (*mem.SwapMemoryStat, error) {
			return &mem.SwapMemoryStat{Used: 256 * mib}, nil
		},
	}

	metrics, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	want := map[string]float64{
		"mem.total_mb":     1000,
		"mem.used_mb":      900,
		"mem.free_mb":      100,
		"mem.used_pct":     90,
		"mem.swap_used_mb": 256,
	}
	for name, wantV := range want {
		if v, ok := model.MetricValue(metrics, name); !ok || v != wantV {
			t.Fatalf("%s = %v (ok=%v), want %v", name, v, ok, wantV)
		}
	}
}

func TestMemoryCollectSwapFailureIsNotFatal(t *testing.T) {
	c := &memoryCollector{
		virtual: func(ctx context.Context) (*mem.VirtualMemoryStat, error) {
			return &mem.VirtualMemoryStat{Total: 1000 * mib, Used: 400 * mib, Free: 600 * mib}, nil
		},
		swap: func(ctx context.Context) (*mem.SwapMemoryStat, error) {
			return nil, errors.New("no swap")
		},
	}
	metrics, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if _, ok := model.MetricValue(metrics, "mem.used_pct"); !ok {
		t.Fatalf("virtual memory metrics missing")
	}
	if _, ok := model.MetricValue(metrics, "mem.swap_used_mb"); ok {
		t.Fatalf("swap metric present despite failed source")
	}
}

func TestMemoryCollectTotalFailure(t *testing.T) {
	fail := errors.New("meminfo unreadable")
	c := &memoryCollector{
		virtual: func(ctx context.Context) (*mem.VirtualMemoryStat, error) { return nil, fail },
		swap:    func(ctx context.Context) (*mem.SwapMemoryStat, error) { return nil, fail },
	}
	if _, err := c.Collect(context.Background()); err == nil {
		t.Fatalf("expected error when every source fails")
	}
}
