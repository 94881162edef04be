package domain

import "github.com/jonboulle/clockwork"

// clock stamps publication times so tests can freeze them via SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source for publication stamps. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
