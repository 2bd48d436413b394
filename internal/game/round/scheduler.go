package round

import (
	"sync"
	"time"
)

// Scheduler drives the machine's two timing needs: the 1-second countdown
// during betting and the one-shot dwell transitions. The machine cancels
// whatever it scheduled for a phase when that phase is exited, so both
// returned funcs must be safe to call more than once.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (stop func())
	After(delay time.Duration, fn func()) (cancel func())
}

// ClockScheduler is the wall-clock production scheduler.
type ClockScheduler struct{}

func (ClockScheduler) Every(interval time.Duration, fn func()) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				return
			}
		}
	}()

	var once sync.Once

	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}

func (ClockScheduler) After(delay time.Duration, fn func()) func() {
	t := time.AfterFunc(delay, fn)

	return func() {
		t.Stop()
	}
}
