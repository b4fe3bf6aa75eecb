package domain

import "github.com/jonboulle/clockwork"

// clock is the package time source for windowed alerts.
// Tests freeze it with SetClock so "now" is deterministic.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source used by RecentSignificant. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
