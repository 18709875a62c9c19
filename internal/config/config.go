package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds thresholds and file paths for the monitor. It is loaded once
// at process start and treated as immutable afterwards.
type Config struct {
	// Thresholds
	CPULimit     float64 `yaml:"cpu_limit"`       // utilization %, CRITICAL above
	MemoryLimit  float64 `yaml:"memory_limit"`    // usage %, CRITICAL above
	DiskLimit    float64 `yaml:"disk_limit"`      // root usage %, CRITICAL above
	LoadPerCore  float64 `yaml:"load_per_core"`   // WARNING when load1 > cores * this
	MaxProcesses int     `yaml:"max_processes"`   // WARNING above
	MinFreeMemMB int     `yaml:"min_free_mem_mb"` // WARNING below
	MaxInodePct  float64 `yaml:"max_inode_pct"`   // WARNING above

	// Output files
	AlertLog   string `yaml:"alert_log"`
	ReportFile string `yaml:"report_file"`

	// Continuous / daemon mode
	IntervalSec int    `yaml:"interval"`
	PidFile     string `yaml:"pid_file"`
	LogFile     string `yaml:"log_file"`

	// Where the config came from (not in YAML)
	ConfigPath string `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		CPULimit:     80,
		MemoryLimit:  85,
		DiskLimit:    90,
		LoadPerCore:  2,
		MaxProcesses: 500,
		MinFreeMemMB: 100,
		MaxInodePct:  90,
		AlertLog:     "/var/log/healthmon_alerts.log",
		ReportFile:   "/tmp/healthmon_report.txt",
		IntervalSec:  60,
		PidFile:      "/tmp/healthmon.pid",
		LogFile:      "/tmp/healthmon.log",
	}
}

// Load reads configuration with priority: defaults < config file < env vars.
// Command-line flags are applied on top by the CLI layer. A missing config
// file is not an error; the defaults simply stand.
func Load(path string) *Config {
	cfg := Default()

	if path == "" {
		path = "healthmon.yaml"
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Printf("[config] warning: failed to parse %s: %v", path, err)
		} else {
			log.Printf("[config] loaded %s", path)
		}
	}
	cfg.ConfigPath = path

	applyEnv(cfg)
	return cfg
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("HEALTHMON_ALERT_LOG"); v != "" {
		cfg.AlertLog = v
	}
	if v := os.Getenv("HEALTHMON_REPORT_FILE"); v != "" {
		cfg.ReportFile = v
	}
	if v := os.Getenv("HEALTHMON_PID_FILE"); v != "" {
		cfg.PidFile = v
	}
	if v := os.Getenv("HEALTHMON_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("HEALTHMON_INTERVAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.IntervalSec = n
		}
	}
}
