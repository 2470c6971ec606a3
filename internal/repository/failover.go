package repository

import (
	"context"
	"sync/atomic"
	"time"

	"bookery/internal/domain"

	"github.com/rs/zerolog"
)

// FailoverStatsCache prefers the primary cache and falls back to the
// secondary when the primary errors, probing for recovery every minute.
type FailoverStatsCache struct {
	primary   domain.StatsCache
	fallback  domain.StatsCache
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64
}

func NewFailoverStatsCache(primary, fallback domain.StatsCache, logger *zerolog.Logger) *FailoverStatsCache {
	return &FailoverStatsCache{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (c *FailoverStatsCache) markDown() {
	c.isDown.Store(true)
	c.lastCheck.Store(time.Now().UnixNano())
}

func (c *FailoverStatsCache) shouldProbe() bool {
	return time.Since(time.Unix(0, c.lastCheck.Load())) > time.Minute
}

func (c *FailoverStatsCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !c.isDown.Load() || c.shouldProbe() {
		found, err := c.primary.Get(ctx, key, dest)
		if err == nil {
			c.isDown.Store(false)
			return found, nil
		}
		c.logger.Error().Err(err).Msg("primary stats cache failed, falling back to memory")
		c.markDown()
	}
	return c.fallback.Get(ctx, key, dest)
}

func (c *FailoverStatsCache) Set(ctx context.Context, key string, value interface{}) error {
	if !c.isDown.Load() || c.shouldProbe() {
		err := c.primary.Set(ctx, key, value)
		if err == nil {
			c.isDown.Store(false)
			return nil
		}
		c.logger.Error().Err(err).Msg("primary stats cache failed, falling back to memory")
		c.markDown()
	}
	return c.fallback.Set(ctx, key, value)
}

func (c *FailoverStatsCache) Delete(ctx context.Context, key string) error {
	if !c.isDown.Load() || c.shouldProbe() {
		err := c.primary.Delete(ctx, key)
		if err == nil {
			c.isDown.Store(false)
			return nil
		}
		c.logger.Error().Err(err).Msg("primary stats cache failed, falling back to memory")
		c.markDown()
	}
	return c.fallback.Delete(ctx, key)
}
