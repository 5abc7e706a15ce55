package cache

import "go.uber.org/zap"

// sweepLoop periodically removes expired entries until Close. The sweep bounds
// memory growth from entries nobody reads again; Get and Has never rely on it.
func (c *Cache[V]) sweepLoop() {
	defer c.wg.Done()

	ticker := c.cfg.clock.Ticker(c.cfg.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

// sweep scans all entries and drops the expired ones. A panic here is logged
// and swallowed so housekeeping can never take down the owning process.
func (c *Cache[V]) sweep() {
	defer func() {
		if r := recover(); r != nil {
			c.cfg.logger.Error("cache sweep panicked", zap.Any("panic", r))
		}
	}()

	removed := c.removeExpired()
	if removed > 0 {
		c.cfg.logger.Debug("cache sweep removed expired entries", zap.Int("removed", removed))
	}
}

func (c *Cache[V]) removeExpired() int {
	now := c.cfg.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, ent := range c.entries {
		if !ent.live(now) {
			c.removeEntry(key, ent)
			c.stats.expire()
			removed++
		}
	}
	return removed
}
