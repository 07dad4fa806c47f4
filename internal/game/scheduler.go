package game

import (
	"sort"
	"time"
)

// Scheduler runs deferred callbacks against game time. Time only moves when
// the host loop calls Advance, and callbacks fire on the caller's goroutine,
// so deferred work never races the physics callbacks.
type Scheduler struct {
	now   time.Duration
	seq   uint64
	tasks []*Timer
}

// Timer is a single-shot deferred callback.
type Timer struct {
	at      time.Duration
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
}

// NewScheduler creates a scheduler at t=0.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the current game time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// AfterFunc schedules fn to run once d of game time has elapsed.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &Timer{at: s.now + d, seq: s.seq, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// Advance moves game time forward by dt and runs every due timer in deadline
// order (ties in scheduling order). Timers scheduled by a callback for a
// deadline inside this window also fire.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt > 0 {
		s.now += dt
	}
	for {
		t := s.nextDue()
		if t == nil {
			return
		}
		t.fired = true
		t.fn()
	}
}

// nextDue pops the earliest due, unstopped timer.
func (s *Scheduler) nextDue() *Timer {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	s.tasks = live
	if len(s.tasks) == 0 {
		return nil
	}
	sort.Slice(s.tasks, func(i, j int) bool {
		if s.tasks[i].at != s.tasks[j].at {
			return s.tasks[i].at < s.tasks[j].at
		}
		return s.tasks[i].seq < s.tasks[j].seq
	})
	if s.tasks[0].at > s.now {
		return nil
	}
	t := s.tasks[0]
	s.tasks = s.tasks[1:]
	return t
}

// Pending returns the number of timers that have neither fired nor been stopped.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Stop cancels the timer. It reports whether the call prevented the callback
// from running.
func (t *Timer) Stop() bool {
	if t == nil || t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}
