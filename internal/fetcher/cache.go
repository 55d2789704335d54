// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package fetcher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/wneessen/windviewer/internal/logger"
	"github.com/wneessen/windviewer/internal/wind"
)

// Source retrieves the snapshot for a date.
type Source interface {
	Fetch(ctx context.Context, date string) (*wind.Snapshot, error)
}

type cacheEntry struct {
	snapshot *wind.Snapshot
	expiry   time.Time
}

// CachedFetcher keeps snapshots per date. Dates without data are remembered for a shorter
// time, failed requests are never cached.
type CachedFetcher struct {
	source  Source
	ttlHit  time.Duration
	ttlMiss time.Duration
	logger  *logger.Logger

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

func NewCachedFetcher(source Source, ttlHit, ttlMiss time.Duration, log *logger.Logger) *CachedFetcher {
	return &CachedFetcher{
		source:  source,
		ttlHit:  ttlHit,
		ttlMiss: ttlMiss,
		logger:  log,
		cache:   make(map[string]cacheEntry),
	}
}

func (c *CachedFetcher) Fetch(ctx context.Context, date string) (*wind.Snapshot, error) {
	c.mu.RLock()
	entry, ok := c.cache[date]
	c.mu.RUnlock()
	if ok && time.Now().Before(entry.expiry) {
		c.logger.Debug("wind data served from cache", slog.String("date", date))
		if entry.snapshot == nil {
			return nil, ErrEmptyResult
		}
		return entry.snapshot, nil
	}

	snap, err := c.source.Fetch(ctx, date)
	switch {
	case err == nil:
		c.store(date, snap, c.ttlHit)
	case errors.Is(err, ErrEmptyResult):
		c.store(date, nil, c.ttlMiss)
	}
	return snap, err
}

// Purge drops all cached dates.
func (c *CachedFetcher) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.cache)
}

func (c *CachedFetcher) store(date string, snap *wind.Snapshot, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[date] = cacheEntry{snapshot: snap, expiry: time.Now().Add(ttl)}
}
