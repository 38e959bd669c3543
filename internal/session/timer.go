package session

import (
	"context"
	"time"
)

// countdown decrements a session once per interval until cancelled.
// Every exit path (completion, restart, close) must stop it so timers
// never stack up across restarts.
type countdown struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// startTimerLocked arms a fresh countdown. Callers hold s.mu; any
// previous countdown must already be stopped.
func (s *Session) startTimerLocked() {
	interval := s.tickInterval
	if interval <= 0 {
		interval = time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := &countdown{cancel: cancel, done: make(chan struct{})}
	s.timer = c
	go func() {
		defer close(c.done)
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.tick()
			}
		}
	}()
}

func (s *Session) stopTimerLocked() {
	if s.timer == nil {
		return
	}
	s.timer.cancel()
	s.timer = nil
}
