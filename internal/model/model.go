package model

import "time"

// Severity is an ordered health level. Higher values are worse.
type Severity int

const (
	SeverityNormal Severity = iota
	SeverityWarning
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityWarning:
		return "WARNING"
	default:
		return "NORMAL"
	}
}

// OverallLabel is the run-level display name: a run with no findings is
// HEALTHY rather than NORMAL.
func (s Severity) OverallLabel() string {
	if s == SeverityNormal {
		return "HEALTHY"
	}
	return s.String()
}

// ExitCode maps run severity to the process exit code:
// HEALTHY → 0, CRITICAL → 1, WARNING → 2.
func (s Severity) ExitCode() int {
	switch s {
	case SeverityCritical:
		return 1
	case SeverityWarning:
		return 2
	default:
		return 0
	}
}

// Unit describes how a metric value should be read.
type Unit string

const (
	UnitPercent   Unit = "%"
	UnitMegabytes Unit = "MB"
	UnitCount     Unit = "count"
	UnitRatio     Unit = "ratio"
)

// Metric is a single named sample. Samples are produced fresh each cycle
// and never mutated after creation.
type Metric struct {
	Name  string
	Value float64
	Unit  Unit
	Label string // display-only context (process name, mountpoint)
}

// MetricValue looks up a metric by name. Display-only samples carry a Label
// and are never looked up by the evaluator.
func MetricValue(metrics []Metric, name string) (float64, bool) {
	for _, m := range metrics {
		if m.Name == name && m.Label == "" {
			return m.Value, true
		}
	}
	return 0, false
}

// CheckResult is the outcome of evaluating one subsystem for one cycle.
type CheckResult struct {
	Subsystem string
	Severity  Severity
	Message   string
	Metrics   []Metric
}

// SystemInfo identifies the host a report was taken on.
type SystemInfo struct {
	Hostname      string
	OS            string
	Platform      string
	KernelVersion string
	Uptime        time.Duration
}

// RunSummary holds everything one check cycle produced.
type RunSummary struct {
	RunID     string
	Timestamp time.Time
	Results   []CheckResult
	Overall   Severity
}
