// Package clock provides the wall-clock adapter for ports.Clock.
package clock

import (
	"time"

	"github.com/devstrap/devstrap/internal/ports"
)

// Real is a Clock backed by the system clock.
type Real struct{}

// NewReal creates a wall clock.
func NewReal() *Real {
	return &Real{}
}

// Now returns the current time.
func (Real) Now() time.Time {
	return time.Now()
}

// Sleep blocks for the given duration.
func (Real) Sleep(d time.Duration) {
	time.Sleep(d)
}

var _ ports.Clock = (*Real)(nil)
