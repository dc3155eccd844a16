package playback

import (
	"math"
	"testing"
	"time"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		v, lo, hi int
		want      int
	}{
		{"inside", 5, 0, 10, 5},
		{"below", -3, 0, 10, 0},
		{"above", 500, 0, 199, 199},
		{"min int", math.MinInt, 0, 10, 0},
		{"max int", math.MaxInt, 0, 10, 10},
		{"degenerate", 7, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestClock_SetUpperBoundClampsAndStops(t *testing.T) {
	c := New()
	c.SetUpperBound(299)
	c.Seek(250)
	c.Toggle()

	c.SetUpperBound(199)

	if c.Position() != 199 {
		t.Errorf("expected position 199, got %d", c.Position())
	}
	if c.State() != Stopped {
		t.Errorf("expected stopped, got %s", c.State())
	}
}

func TestClock_SetUpperBoundNegative(t *testing.T) {
	c := New()
	c.SetUpperBound(-1)
	if c.UpperBound() != 0 || c.Position() != 0 {
		t.Errorf("expected bound 0 and position 0, got %d and %d", c.UpperBound(), c.Position())
	}
}

func TestClock_SeekStopsPlayback(t *testing.T) {
	c := New()
	c.SetUpperBound(100)
	c.Toggle()

	if got := c.Seek(-20); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	if c.Playing() {
		t.Error("seek should stop playback")
	}
}

func TestClock_Advance(t *testing.T) {
	c := New()
	c.SetUpperBound(3)

	if c.Advance() {
		t.Fatal("stopped clock must not advance")
	}

	c.Toggle()
	for want := 1; want <= 3; want++ {
		if !c.Advance() {
			t.Fatalf("advance to %d failed", want)
		}
		if c.Position() != want {
			t.Fatalf("expected %d, got %d", want, c.Position())
		}
	}

	if c.Advance() {
		t.Error("advance at upper bound should report false")
	}
	if c.State() != Stopped {
		t.Error("expected stopped at upper bound")
	}
	if c.Position() != 3 {
		t.Errorf("position should stay at 3, got %d", c.Position())
	}
}

func TestClock_AdvanceLoop(t *testing.T) {
	c := New()
	c.SetUpperBound(2)
	c.SetLoop(true)
	c.Seek(2)
	c.Toggle()

	if !c.Advance() {
		t.Fatal("looping clock should keep going")
	}
	if c.Position() != 0 {
		t.Errorf("expected wrap to 0, got %d", c.Position())
	}
	if !c.Playing() {
		t.Error("looping clock should still be playing")
	}
}

func TestTickInterval(t *testing.T) {
	tests := []struct {
		fps  float64
		want time.Duration
	}{
		{25, 40 * time.Millisecond},
		{50, 20 * time.Millisecond},
		{0, 40 * time.Millisecond},
		{-5, 40 * time.Millisecond},
		{math.NaN(), 40 * time.Millisecond},
		{1e9, time.Millisecond},
	}
	for _, tt := range tests {
		if got := TickInterval(tt.fps); got != tt.want {
			t.Errorf("TickInterval(%v) = %v, want %v", tt.fps, got, tt.want)
		}
	}
}
