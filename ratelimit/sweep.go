package ratelimit

import "go.uber.org/zap"

// sweepLoop periodically purges elapsed windows until Close, bounding the
// footprint of keys that are never revisited. Check never relies on it; an
// elapsed window is replaced lazily on the next request anyway.
func (l *Limiter) sweepLoop() {
	defer l.wg.Done()

	ticker := l.cfg.clock.Ticker(l.cfg.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

// sweep drops windows that have already ended. A panic here is logged and
// swallowed so housekeeping can never take down the owning process.
func (l *Limiter) sweep() {
	defer func() {
		if r := recover(); r != nil {
			l.cfg.logger.Error("ratelimit sweep panicked", zap.Any("panic", r))
		}
	}()

	removed := l.removeElapsed()
	if removed > 0 {
		l.cfg.logger.Debug("ratelimit sweep removed elapsed windows", zap.Int("removed", removed))
	}
}

func (l *Limiter) removeElapsed() int {
	now := l.cfg.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, w := range l.windows {
		if !now.Before(w.resetAt) {
			l.removeWindow(key)
			removed++
		}
	}
	return removed
}
