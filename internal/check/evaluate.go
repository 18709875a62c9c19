// Package check turns collected metrics into per-subsystem verdicts.
//
// Each rule set is evaluated independently every cycle; there is no
// hysteresis or debounce across runs. Comparisons are strict (> and <), so a
// value exactly at its limit is not a finding.
package check

import (
	"fmt"

	"github.com/playok/healthmon/internal/config"
	"github.com/playok/healthmon/internal/model"
)

// Subsystem names as they appear in check results and reports.
const (
	SubsystemCPU     = "CPU"
	SubsystemMemory  = "Memory"
	SubsystemDisk    = "Disk"
	SubsystemProcess = "Process"
)

// Evaluate produces the CheckResult for one subsystem. Unknown subsystems
// yield a NORMAL result so a miswired collector can never fail a host.
func Evaluate(subsystem string, metrics []model.Metric, cfg *config.Config) model.CheckResult {
	switch subsystem {
	case SubsystemCPU:
		return evaluateCPU(metrics, cfg)
	case SubsystemMemory:
		return evaluateMemory(metrics, cfg)
	case SubsystemDisk:
		return evaluateDisk(metrics, cfg)
	case SubsystemProcess:
		return evaluateProcess(metrics, cfg)
	default:
		return result(subsystem, model.SeverityNormal, "no rules for subsystem", metrics)
	}
}

// Overall reduces per-subsystem severities to the run severity: the single
// most severe result wins, regardless of how many checks were clean.
func Overall(results []model.CheckResult) model.Severity {
	overall := model.SeverityNormal
	for _, r := range results {
		if r.Severity > overall {
			overall = r.Severity
		}
	}
	return overall
}

func evaluateCPU(metrics []model.Metric, cfg *config.Config) model.CheckResult {
	usage, ok := model.MetricValue(metrics, "cpu.usage_pct")
	if !ok {
		return degraded(SubsystemCPU, "CPU utilization", metrics)
	}

	// Utilization rule first; load average never overrides a CRITICAL.
	if usage > cfg.CPULimit {
		return result(SubsystemCPU, model.SeverityCritical,
			fmt.Sprintf("High CPU usage: %.1f%% (limit %.1f%%)", usage, cfg.CPULimit), metrics)
	}

	load1, haveLoad := model.MetricValue(metrics, "cpu.load1")
	cores, haveCores := model.MetricValue(metrics, "cpu.cores")
	if haveLoad && haveCores && load1 > cores*cfg.LoadPerCore {
		return result(SubsystemCPU, model.SeverityWarning,
			fmt.Sprintf("High load average: %.2f on %.0f cores", load1, cores), metrics)
	}

	return result(SubsystemCPU, model.SeverityNormal,
		fmt.Sprintf("CPU usage normal: %.1f%%", usage), metrics)
}

func evaluateMemory(metrics []model.Metric, cfg *config.Config) model.CheckResult {
	usedPct, ok := model.MetricValue(metrics, "mem.used_pct")
	if !ok {
		return degraded(SubsystemMemory, "memory usage", metrics)
	}

	if usedPct > cfg.MemoryLimit {
		return result(SubsystemMemory, model.SeverityCritical,
			fmt.Sprintf("High memory usage: %.0f%% (limit %.0f%%)", usedPct, cfg.MemoryLimit), metrics)
	}

	if freeMB, ok := model.MetricValue(metrics, "mem.free_mb"); ok && freeMB < float64(cfg.MinFreeMemMB) {
		return result(SubsystemMemory, model.SeverityWarning,
			fmt.Sprintf("Low free memory: %.0f MB", freeMB), metrics)
	}

	return result(SubsystemMemory, model.SeverityNormal,
		fmt.Sprintf("Memory usage normal: %.0f%%", usedPct), metrics)
}

func evaluateDisk(metrics []model.Metric, cfg *config.Config) model.CheckResult {
	usedPct, haveUsage := model.MetricValue(metrics, "disk.root.used_pct")
	inodePct, haveInodes := model.MetricValue(metrics, "disk.root.inodes_pct")
	if !haveUsage && !haveInodes {
		return degraded(SubsystemDisk, "disk usage", metrics)
	}

	// Two independent sub-checks; the result is their severity max, so a
	// high inode count never downgrades a usage CRITICAL.
	if haveUsage && usedPct > cfg.DiskLimit {
		return result(SubsystemDisk, model.SeverityCritical,
			fmt.Sprintf("High disk usage on /: %.0f%% (limit %.0f%%)", usedPct, cfg.DiskLimit), metrics)
	}
	if haveInodes && inodePct > cfg.MaxInodePct {
		return result(SubsystemDisk, model.SeverityWarning,
			fmt.Sprintf("High inode usage on /: %.0f%%", inodePct), metrics)
	}

	return result(SubsystemDisk, model.SeverityNormal,
		fmt.Sprintf("Disk usage normal: %.0f%%", usedPct), metrics)
}

func evaluateProcess(metrics []model.Metric, cfg *config.Config) model.CheckResult {
	total, ok := model.MetricValue(metrics, "proc.total")
	if !ok {
		return degraded(SubsystemProcess, "process count", metrics)
	}

	// Process findings cap at WARNING.
	if int(total) > cfg.MaxProcesses {
		return result(SubsystemProcess, model.SeverityWarning,
			fmt.Sprintf("High process count: %.0f (max %d)", total, cfg.MaxProcesses), metrics)
	}
	if zombies, ok := model.MetricValue(metrics, "proc.zombies"); ok && zombies > 0 {
		return result(SubsystemProcess, model.SeverityWarning,
			fmt.Sprintf("Zombie processes detected: %.0f", zombies), metrics)
	}

	return result(SubsystemProcess, model.SeverityNormal,
		fmt.Sprintf("Process count normal: %.0f", total), metrics)
}

func result(subsystem string, sev model.Severity, msg string, metrics []model.Metric) model.CheckResult {
	return model.CheckResult{Subsystem: subsystem, Severity: sev, Message: msg, Metrics: metrics}
}

// degraded is the fail-soft result when a required metric could not be
// sampled: the check still runs, reports NORMAL, and says why.
func degraded(subsystem, what string, metrics []model.Metric) model.CheckResult {
	return result(subsystem, model.SeverityNormal,
		fmt.Sprintf("%s unavailable, check skipped", what), metrics)
}
