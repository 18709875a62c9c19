package collector

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v4/host"

	"github.com/playok/healthmon/internal/model"
)

// SystemInfo reads host identity for the report header. A partial result is
// still useful, so hostname falls back to os.Hostname when the host probe
// fails entirely.
func SystemInfo(ctx context.Context) (model.SystemInfo, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		name, herr := os.Hostname()
		if herr != nil {
			return model.SystemInfo{}, fmt.Errorf("host info: %w", err)
		}
		return model.SystemInfo{Hostname: name}, nil
	}

	return model.SystemInfo{
		Hostname:      info.Hostname,
		OS:            info.OS,
		Platform:      fmt.Sprintf("%s %s", info.Platform, info.PlatformVersion),
		KernelVersion: info.KernelVersion,
		Uptime:        time.Duration(info.Uptime) * time.Second,
	}, nil
}
