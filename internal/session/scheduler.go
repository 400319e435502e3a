package session

import "time"

// Cancel stops a scheduled task. Calling it after the task ran is a no-op.
type Cancel func()

// Scheduler runs single-shot delayed tasks.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Cancel
}

// TimerScheduler schedules tasks on the runtime timers.
type TimerScheduler struct{}

// AfterFunc runs f in its own goroutine once d has elapsed.
func (TimerScheduler) AfterFunc(d time.Duration, f func()) Cancel {
	t := time.AfterFunc(d, f)
	return func() { t.Stop() }
}
