package services

import (
	"time"
)

// CancelFunc stops a scheduled callback. Calling it after the callback
// ran, or more than once, is harmless.
type CancelFunc func()

// Scheduler is the one clock abstraction the session machine uses for
// its time-driven transitions. Tests swap in a manual implementation so
// delays fire deterministically.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) CancelFunc
}

type realScheduler struct{}

func NewScheduler() Scheduler {
	return realScheduler{}
}

func (realScheduler) Schedule(d time.Duration, fn func()) CancelFunc {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}
