// Package sysinfo samples host statistics for the desktop status bar.
package sysinfo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"
)

// Sample is one reading of the host. Fields whose probe failed are zero.
type Sample struct {
	Time       time.Time
	CPUPercent float64
	MemUsed    uint64
	MemTotal   uint64
	MemPercent float64
	Uptime     time.Duration
	NetSent    uint64
	NetRecv    uint64
}

// Sampler reads host statistics through gopsutil. The probes are fields so
// tests can replace them.
type Sampler struct {
	cpuPercent func(ctx context.Context) (float64, error)
	memory     func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	uptime     func(ctx context.Context) (uint64, error)
	netTotals  func(ctx context.Context) (sent, recv uint64, err error)
	now        func() time.Time
}

// NewSampler returns a sampler backed by gopsutil.
func NewSampler() *Sampler {
	return &Sampler{
		cpuPercent: func(ctx context.Context) (float64, error) {
			// interval 0 compares against the previous call
			pct, err := cpu.PercentWithContext(ctx, 0, false)
			if err != nil {
				return 0, err
			}
			if len(pct) == 0 {
				return 0, errors.New("no cpu reading")
			}
			return pct[0], nil
		},
		memory: mem.VirtualMemoryWithContext,
		uptime: host.UptimeWithContext,
		netTotals: func(ctx context.Context) (uint64, uint64, error) {
			counters, err := net.IOCountersWithContext(ctx, false)
			if err != nil {
				return 0, 0, err
			}
			if len(counters) == 0 {
				return 0, 0, errors.New("no network counters")
			}
			return counters[0].BytesSent, counters[0].BytesRecv, nil
		},
		now: time.Now,
	}
}

// Sample reads every probe within ctx. A failed probe leaves its fields at
// zero; the returned error joins every failure.
func (s *Sampler) Sample(ctx context.Context) (Sample, error) {
	out := Sample{Time: s.now()}
	var errs []error

	if pct, err := s.cpuPercent(ctx); err != nil {
		errs = append(errs, fmt.Errorf("cpu: %w", err))
	} else {
		out.CPUPercent = clampPercent(pct)
	}

	if vm, err := s.memory(ctx); err != nil {
		errs = append(errs, fmt.Errorf("memory: %w", err))
	} else if vm != nil {
		out.MemUsed = vm.Used
		out.MemTotal = vm.Total
		out.MemPercent = clampPercent(vm.UsedPercent)
	}

	if secs, err := s.uptime(ctx); err != nil {
		errs = append(errs, fmt.Errorf("uptime: %w", err))
	} else {
		out.Uptime = time.Duration(secs) * time.Second
	}

	if sent, recv, err := s.netTotals(ctx); err != nil {
		errs = append(errs, fmt.Errorf("network: %w", err))
	} else {
		out.NetSent, out.NetRecv = sent, recv
	}

	return out, errors.Join(errs...)
}

func clampPercent(p float64) float64 {
	return min(max(p, 0), 100)
}

// Graph renders the last width readings as block characters, left padded
// with spaces so the result is always width cells wide.
func Graph(history []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(history) > width {
		history = history[len(history)-width:]
	}
	bars := []rune("▁▂▃▄▅▆▇█")

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", width-len(history)))
	for _, usage := range history {
		level := min(int(clampPercent(usage)/12.5), len(bars)-1)
		sb.WriteRune(bars[level])
	}
	return sb.String()
}

// HumanBytes formats n with a binary unit, e.g. "1.5G".
func HumanBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%c", float64(n)/float64(div), "KMGTPE"[exp])
}

// FormatUptime prints d as "3d 4h", "4h 12m" or "12m".
func FormatUptime(d time.Duration) string {
	d = d.Truncate(time.Minute)
	days := int(d / (24 * time.Hour))
	hours := int(d/time.Hour) % 24
	minutes := int(d/time.Minute) % 60
	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
