package window

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidPolicy is returned by Policy.Validate.
var ErrInvalidPolicy = errors.New("invalid window policy")

// Policy holds the numeric limits a Controller enforces.
type Policy struct {
	MinWidth        int           // Smallest explicit width a resize may produce
	MinHeight       int           // Smallest explicit height a resize may produce
	MaxDistance     float64       // Drag distance beyond which a window snaps back
	ReturnStep      float64       // Distance covered per ReturnStepDelay when computing the snap-back delay
	ReturnStepDelay time.Duration // Delay per ReturnStep of distance
	MaxReturnDelay  time.Duration // Upper bound on the snap-back delay
	SettleDelay     time.Duration // Delay between the snap-back and clearing Moved
	CoarseBelow     int           // Viewport widths below this disable gestures
}

// CellPolicy returns the default policy, measured in terminal cells.
func CellPolicy() Policy {
	return Policy{
		MinWidth:        30,
		MinHeight:       8,
		MaxDistance:     20,
		ReturnStep:      10,
		ReturnStepDelay: 100 * time.Millisecond,
		MaxReturnDelay:  2 * time.Second,
		SettleDelay:     500 * time.Millisecond,
		CoarseBelow:     80,
	}
}

// PixelPolicy returns the limits of the browser widget deskfolio is modelled
// on, measured in CSS pixels.
func PixelPolicy() Policy {
	return Policy{
		MinWidth:        300,
		MinHeight:       200,
		MaxDistance:     200,
		ReturnStep:      100,
		ReturnStepDelay: 100 * time.Millisecond,
		MaxReturnDelay:  2 * time.Second,
		SettleDelay:     500 * time.Millisecond,
		CoarseBelow:     768,
	}
}

// ReturnDelay is the time a window released at distance waits before it
// snaps back.
func (p Policy) ReturnDelay(distance float64) time.Duration {
	if distance <= 0 {
		return 0
	}
	d := time.Duration(distance * float64(p.ReturnStepDelay) / p.ReturnStep)
	return min(d, p.MaxReturnDelay)
}

// Validate reports the first problem found in p.
func (p Policy) Validate() error {
	switch {
	case p.MinWidth <= 0:
		return fmt.Errorf("%w: min width must be positive, got %d", ErrInvalidPolicy, p.MinWidth)
	case p.MinHeight <= 0:
		return fmt.Errorf("%w: min height must be positive, got %d", ErrInvalidPolicy, p.MinHeight)
	case p.MaxDistance < 0:
		return fmt.Errorf("%w: max distance must not be negative, got %g", ErrInvalidPolicy, p.MaxDistance)
	case p.ReturnStep <= 0:
		return fmt.Errorf("%w: return step must be positive, got %g", ErrInvalidPolicy, p.ReturnStep)
	case p.ReturnStepDelay <= 0:
		return fmt.Errorf("%w: return step delay must be positive, got %s", ErrInvalidPolicy, p.ReturnStepDelay)
	case p.MaxReturnDelay < 0:
		return fmt.Errorf("%w: max return delay must not be negative, got %s", ErrInvalidPolicy, p.MaxReturnDelay)
	case p.SettleDelay < 0:
		return fmt.Errorf("%w: settle delay must not be negative, got %s", ErrInvalidPolicy, p.SettleDelay)
	case p.CoarseBelow < 0:
		return fmt.Errorf("%w: coarse breakpoint must not be negative, got %d", ErrInvalidPolicy, p.CoarseBelow)
	}
	return nil
}
