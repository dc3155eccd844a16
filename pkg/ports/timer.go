package ports

import "time"

// Timer is the periodic playback timer.
type Timer interface {
	// Start (re)starts ticking at the given interval.
	Start(interval time.Duration)

	// Stop stops ticking. Pending ticks are discarded.
	Stop()

	// C returns the tick channel, or nil while stopped.
	C() <-chan time.Time
}
