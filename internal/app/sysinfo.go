package app

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/sysinfo"
)

// cpuHistoryLen is the number of CPU readings kept for the status bar graph.
const cpuHistoryLen = 8

// SampleMsg carries a host statistics reading.
type SampleMsg struct {
	Sample sysinfo.Sample
	Err    error
}

// ClockMsg refreshes the clock and expires notifications.
type ClockMsg time.Time

// SampleCmd reads the host within config.SysinfoTimeout after delay.
func SampleCmd(s *sysinfo.Sampler, delay time.Duration) tea.Cmd {
	if s == nil {
		return nil
	}
	read := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), config.SysinfoTimeout)
		defer cancel()
		sample, err := s.Sample(ctx)
		return SampleMsg{Sample: sample, Err: err}
	}
	if delay <= 0 {
		return read
	}
	return tea.Tick(delay, func(time.Time) tea.Msg { return read() })
}

// ClockCmd ticks the status bar clock.
func ClockCmd() tea.Cmd {
	return tea.Tick(config.ClockInterval, func(t time.Time) tea.Msg {
		return ClockMsg(t)
	})
}

func (m *Desktop) handleSample(msg SampleMsg) tea.Cmd {
	if m.closed {
		return nil
	}
	if msg.Err != nil {
		m.LogDebug("host sample incomplete", "err", msg.Err)
	}
	m.Sample = msg.Sample
	m.CPUHistory = append(m.CPUHistory, msg.Sample.CPUPercent)
	if over := len(m.CPUHistory) - cpuHistoryLen; over > 0 {
		m.CPUHistory = m.CPUHistory[over:]
	}
	return SampleCmd(m.sampler, config.SysinfoInterval)
}

// statusStats formats the host statistics shown in the status bar.
func (m *Desktop) statusStats() []string {
	if m.sampler == nil || m.Sample.Time.IsZero() {
		return nil
	}
	s := m.Sample
	return []string{
		fmt.Sprintf("%s %s %3.0f%%", config.GetStatusIconCPU(), sysinfo.Graph(m.CPUHistory, cpuHistoryLen), s.CPUPercent),
		fmt.Sprintf("%s %s/%s", config.GetStatusIconMem(), sysinfo.HumanBytes(s.MemUsed), sysinfo.HumanBytes(s.MemTotal)),
		fmt.Sprintf("up %s", sysinfo.FormatUptime(s.Uptime)),
		fmt.Sprintf("%s ↑%s ↓%s", config.GetStatusIconNet(), sysinfo.HumanBytes(s.NetSent), sysinfo.HumanBytes(s.NetRecv)),
	}
}
