package repository

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// MemoryStatsCache is the in-process fallback cache.
type MemoryStatsCache struct {
	entries sync.Map
	ttl     time.Duration
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

func NewMemoryStatsCache(ttl time.Duration) *MemoryStatsCache {
	return &MemoryStatsCache{
		ttl: ttl,
	}
}

func (c *MemoryStatsCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	val, ok := c.entries.Load(key)
	if !ok {
		return false, nil
	}
	entry := val.(memoryEntry)
	if time.Now().After(entry.expiresAt) {
		c.entries.Delete(key)
		return false, nil
	}
	if err := json.Unmarshal(entry.data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *MemoryStatsCache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries.Store(key, memoryEntry{data: data, expiresAt: time.Now().Add(c.ttl)})
	return nil
}

func (c *MemoryStatsCache) Delete(ctx context.Context, key string) error {
	c.entries.Delete(key)
	return nil
}
