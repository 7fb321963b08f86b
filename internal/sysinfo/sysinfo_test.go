package sysinfo

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shirou/gopsutil/v4/mem"
)

func fakeSampler() *Sampler {
	return &Sampler{
		cpuPercent: func(context.Context) (float64, error) { return 42.5, nil },
		memory: func(context.Context) (*mem.VirtualMemoryStat, error) {
			return &mem.VirtualMemoryStat{Total: 8 << 30, Used: 2 << 30, UsedPercent: 25}, nil
		},
		uptime:    func(context.Context) (uint64, error) { return 3600, nil },
		netTotals: func(context.Context) (uint64, uint64, error) { return 1024, 2048, nil },
		now:       func() time.Time { return time.Unix(100, 0) },
	}
}

func TestSample(t *testing.T) {
	s, err := fakeSampler().Sample(context.Background())
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if s.CPUPercent != 42.5 || s.MemPercent != 25 || s.MemTotal != 8<<30 {
		t.Errorf("sample = %+v", s)
	}
	if s.Uptime != time.Hour || s.NetSent != 1024 || s.NetRecv != 2048 {
		t.Errorf("sample = %+v", s)
	}
	if !s.Time.Equal(time.Unix(100, 0)) {
		t.Errorf("time = %v", s.Time)
	}
}

func TestSamplePartialFailure(t *testing.T) {
	probeErr := errors.New("permission denied")
	sampler := fakeSampler()
	sampler.cpuPercent = func(context.Context) (float64, error) { return 0, probeErr }
	sampler.netTotals = func(context.Context) (uint64, uint64, error) { return 0, 0, probeErr }

	s, err := sampler.Sample(context.Background())
	if !errors.Is(err, probeErr) {
		t.Fatalf("err = %v, want wrapped probe error", err)
	}
	if !strings.Contains(err.Error(), "cpu:") || !strings.Contains(err.Error(), "network:") {
		t.Errorf("err = %v", err)
	}
	if s.MemPercent != 25 || s.Uptime != time.Hour {
		t.Error("successful probes were dropped")
	}
	if s.CPUPercent != 0 || s.NetRecv != 0 {
		t.Error("failed probes left values behind")
	}
}

func TestSampleClampsPercent(t *testing.T) {
	sampler := fakeSampler()
	sampler.cpuPercent = func(context.Context) (float64, error) { return 130, nil }
	s, _ := sampler.Sample(context.Background())
	if s.CPUPercent != 100 {
		t.Errorf("CPUPercent = %v, want 100", s.CPUPercent)
	}
}

func TestGraph(t *testing.T) {
	tests := []struct {
		name    string
		history []float64
		width   int
		want    string
	}{
		{"empty", nil, 4, "    "},
		{"padded", []float64{0, 100}, 4, "  ▁█"},
		{"trimmed", []float64{0, 0, 50, 100}, 2, "▅█"},
		{"zero width", []float64{10}, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Graph(tt.history, tt.width); got != tt.want {
				t.Errorf("Graph = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHumanBytes(t *testing.T) {
	tests := map[uint64]string{
		512:       "512B",
		1024:      "1.0K",
		1536:      "1.5K",
		5 << 20:   "5.0M",
		3 << 30:   "3.0G",
		1<<40 + 1: "1.0T",
	}
	for in, want := range tests {
		if got := HumanBytes(in); got != want {
			t.Errorf("HumanBytes(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatUptime(t *testing.T) {
	tests := map[time.Duration]string{
		90 * time.Second:              "1m",
		2*time.Hour + 5*time.Minute:   "2h 5m",
		50*time.Hour + 59*time.Second: "2d 2h",
	}
	for in, want := range tests {
		if got := FormatUptime(in); got != want {
			t.Errorf("FormatUptime(%v) = %q, want %q", in, got, want)
		}
	}
}
