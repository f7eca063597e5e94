package utils

import (
	"context"
	"log/slog"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// GetCPUUsage returns the CPU usage since the previous call as a percentage.
// It does not block.
func GetCPUUsage(ctx context.Context) float64 {
	percentage, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		slog.Debug("Error getting CPU usage", "error", err)
		return 0
	}
	if len(percentage) > 0 {
		return percentage[0]
	}
	return 0
}

// GetMemoryUsage returns used virtual memory as a percentage.
func GetMemoryUsage(ctx context.Context) float64 {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		slog.Debug("Error getting memory usage", "error", err)
		return 0
	}
	return vm.UsedPercent
}

// FormatUptime renders the time elapsed since start, rounded to seconds.
func FormatUptime(start time.Time) string {
	return time.Since(start).Round(time.Second).String()
}
