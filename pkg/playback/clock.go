// Package playback provides the shared playback clock: one frame index,
// an upper bound and a Stopped/Playing state.
package playback

import (
	"math"
	"time"
)

// State is the playback state.
type State int

const (
	// Stopped means no ticks are scheduled.
	Stopped State = iota
	// Playing means the position advances by one frame per tick.
	Playing
)

// String returns the string representation of the state.
func (s State) String() string {
	if s == Playing {
		return "playing"
	}
	return "stopped"
}

// Clock holds the shared position. The zero value is not usable; call New.
//
// The position is always inside [0, UpperBound()] once a bound is set.
// Clock is not safe for concurrent use; it belongs to the event goroutine.
type Clock struct {
	position int
	upper    int
	state    State
	loop     bool
}

// New returns a stopped clock at position 0 with an upper bound of 0.
func New() *Clock {
	return &Clock{}
}

// Position returns the current frame index.
func (c *Clock) Position() int { return c.position }

// UpperBound returns the last valid frame index.
func (c *Clock) UpperBound() int { return c.upper }

// State returns the playback state.
func (c *Clock) State() State { return c.state }

// Playing reports whether the clock is in the Playing state.
func (c *Clock) Playing() bool { return c.state == Playing }

// Loop reports whether reaching the upper bound wraps to frame 0.
func (c *Clock) Loop() bool { return c.loop }

// SetLoop enables or disables wraparound at the upper bound.
func (c *Clock) SetLoop(loop bool) { c.loop = loop }

// SetUpperBound installs a new bound, clamps the position into range and
// resets the state to Stopped. Negative bounds are treated as 0.
func (c *Clock) SetUpperBound(upper int) {
	if upper < 0 {
		upper = 0
	}
	c.upper = upper
	c.position = Clamp(c.position, 0, upper)
	c.state = Stopped
}

// Seek stops playback and moves to the clamped index. It returns the new position.
func (c *Clock) Seek(index int) int {
	c.state = Stopped
	c.position = Clamp(index, 0, c.upper)
	return c.position
}

// Toggle flips between Stopped and Playing and returns the new state.
func (c *Clock) Toggle() State {
	if c.state == Playing {
		c.state = Stopped
	} else {
		c.state = Playing
	}
	return c.state
}

// Stop sets the state to Stopped.
func (c *Clock) Stop() { c.state = Stopped }

// Advance performs one tick and reports whether the position moved.
// A tick at the upper bound wraps to 0 when looping, otherwise it stops.
// Without looping, the tick that reaches the upper bound also stops the clock.
// Advance on a stopped clock does nothing.
func (c *Clock) Advance() bool {
	if c.state != Playing {
		return false
	}
	if c.position >= c.upper {
		if c.loop {
			c.position = 0
			return true
		}
		c.position = c.upper
		c.state = Stopped
		return false
	}
	c.position++
	if c.position == c.upper && !c.loop {
		c.state = Stopped
	}
	return true
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// TickInterval returns the timer period for the given frame rate (1000/fps ms).
// Rates <= 0 or NaN yield a 40ms (25 fps) period.
func TickInterval(fps float64) time.Duration {
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return 40 * time.Millisecond
	}
	d := time.Duration(float64(time.Second) / fps)
	if d < time.Millisecond {
		d = time.Millisecond
	}
	return d
}
