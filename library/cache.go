// Copyright 2025 The Quaver Authors
// SPDX-License-Identifier: GPL-3.0-only

package library

import (
	"sync"
	"time"

	"github.com/quaverhq/quaver/logger"
)

// Cache fetches assets in the background and holds a copy, returning them
// on request. A Cache is composed of four mechanisms:
//
// 1. a zero object
// 2. a function for fetching assets
// 3. a call-back function for when an asset is fetched
// 4. a staleness check, run periodically to drop invalid assets
//
// When an asset is requested, Cache returns the asset if it is cached.
// Otherwise, it returns the zero object and queues up a fetch in the
// background. When the fetch is complete, the callback is called with the
// key and the loaded asset, allowing the caller to pick up the real value.
//
// Caches are indexed by strings, because quaver keys everything it caches
// by file path.
type Cache[T any] struct {
	zero     T
	mu       sync.Mutex
	cache    map[string]T
	pipeline chan string
	quit     chan struct{}
	once     sync.Once
}

// NewCache sets up a new cache, given
//
//   - a zeroValue, returned immediately on cache misses
//   - a fetcher, which can be a long-running function that loads assets;
//     it takes a key and returns the asset, or an error
//   - a fetchedItem call-back, invoked when a requested asset is available
//   - a stale check which, given a key, reports whether the cached asset
//     should be dropped; it runs for every key once per sweep interval
//   - a logger, used for reporting errors returned by the fetcher
func NewCache[T any](
	zeroValue T,
	fetcher func(string) (T, error),
	fetchedItem func(string, T),
	stale func(string) bool,
	sweep time.Duration,
	log logger.LoggerInterface,
) *Cache[T] {
	c := &Cache[T]{
		zero:     zeroValue,
		cache:    make(map[string]T),
		pipeline: make(chan string, 1000),
		quit:     make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(sweep)
		defer ticker.Stop()

		for {
			select {
			case <-c.quit:
				return

			case key := <-c.pipeline:
				c.mu.Lock()
				_, ok := c.cache[key]
				c.mu.Unlock()
				if ok {
					continue
				}
				asset, err := fetcher(key)
				if err != nil {
					log.Printf("cache: fetching asset %s: %s", key, err)
					continue
				}
				c.mu.Lock()
				c.cache[key] = asset
				c.mu.Unlock()
				fetchedItem(key, asset)

			case <-ticker.C:
				c.mu.Lock()
				for key := range c.cache {
					if stale(key) {
						delete(c.cache, key)
					}
				}
				c.mu.Unlock()
			}
		}
	}()

	return c
}

// Get returns the cached asset for key, or the zero object while a
// background fetch is queued.
func (c *Cache[T]) Get(key string) T {
	c.mu.Lock()
	if asset, ok := c.cache[key]; ok {
		c.mu.Unlock()
		return asset
	}
	c.mu.Unlock()

	select {
	case c.pipeline <- key:
	default:
		// fetch queue full; the next Get will retry
	}
	return c.zero
}

func (c *Cache[T]) Close() {
	c.once.Do(func() { close(c.quit) })
}
