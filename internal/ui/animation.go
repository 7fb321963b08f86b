// Package ui holds presentation helpers shared by the desktop renderer.
package ui

import (
	"math"
	"time"

	"github.com/Gaurav-Gosain/deskfolio/internal/geom"
)

// AnimationType represents the type of animation being performed.
type AnimationType int

const (
	// AnimationCollapse shrinks a window's content region to zero rows.
	AnimationCollapse AnimationType = iota
	// AnimationExpand grows the content region back after a restore.
	AnimationExpand
	// AnimationGlide moves a snapped-back window to its flow position.
	AnimationGlide
)

// Frame is the animated part of a window's geometry: the drawn offset and
// the number of visible content rows.
type Frame struct {
	Offset geom.Point
	Rows   int
}

// Animation represents an animated transition for one window.
type Animation struct {
	WindowID  string
	Type      AnimationType
	StartTime time.Time
	Duration  time.Duration
	Start     Frame
	End       Frame
	Progress  float64
	Complete  bool
}

// NewCollapseAnimation animates rows visible content rows down to zero.
func NewCollapseAnimation(windowID string, rows int, duration time.Duration, now time.Time) *Animation {
	return &Animation{
		WindowID:  windowID,
		Type:      AnimationCollapse,
		StartTime: now,
		Duration:  duration,
		Start:     Frame{Rows: rows},
		End:       Frame{Rows: 0},
	}
}

// NewExpandAnimation animates the content region from zero to rows.
func NewExpandAnimation(windowID string, rows int, duration time.Duration, now time.Time) *Animation {
	return &Animation{
		WindowID:  windowID,
		Type:      AnimationExpand,
		StartTime: now,
		Duration:  duration,
		Start:     Frame{Rows: 0},
		End:       Frame{Rows: rows},
	}
}

// NewGlideAnimation animates the drawn offset from `from` back to the origin.
func NewGlideAnimation(windowID string, from geom.Point, duration time.Duration, now time.Time) *Animation {
	return &Animation{
		WindowID:  windowID,
		Type:      AnimationGlide,
		StartTime: now,
		Duration:  duration,
		Start:     Frame{Offset: from},
		End:       Frame{},
	}
}

// Update advances the animation to now and reports whether it is complete.
func (a *Animation) Update(now time.Time) bool {
	progress := 1.0
	if a.Duration > 0 {
		progress = float64(now.Sub(a.StartTime)) / float64(a.Duration)
	}
	if progress >= 1.0 {
		progress = 1.0
		a.Complete = true
	}
	progress = max(progress, 0)

	a.Progress = EaseInOutCubic(progress)
	return a.Complete
}

// Current returns the interpolated frame at the last Update.
func (a *Animation) Current() Frame {
	return Frame{
		Offset: geom.Point{
			X: Interpolate(a.Start.Offset.X, a.End.Offset.X, a.Progress),
			Y: Interpolate(a.Start.Offset.Y, a.End.Offset.Y, a.Progress),
		},
		Rows: Interpolate(a.Start.Rows, a.End.Rows, a.Progress),
	}
}

// EaseInOutCubic is the easing curve used by every animation.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	p := 2*t - 2
	return 1 + p*p*p/2
}

// Interpolate maps progress in [0, 1] onto [start, end].
func Interpolate(start, end int, progress float64) int {
	return start + int(math.Round(float64(end-start)*progress))
}
