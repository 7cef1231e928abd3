// stampplace - content-aware stamp placement engine for paginated documents
// Copyright (C) 2026  stampplace contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package stampplace

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// kernelSize is the cache key: a rectangular structuring element's
// (width, height) in pixels.
type kernelSize struct {
	w, h int
}

// kernelCache memoizes rectangular structuring elements keyed by
// (w, h), bounded to a fixed number of entries with LRU eviction.
// Unlike a plain Go buffer cache, each entry owns a cgo-backed
// gocv.Mat, so an evicted entry must be Close()d to release it.
//
// Reads are safe for concurrent callers: a cache hit looks the entry
// up under the read lock, then briefly takes the write lock to mark it
// most-recently-used; only a miss builds a new kernel. A shared kernelCache may be reused across
// pages processed by independent callers; it has no per-page state.
type kernelCache struct {
	mu       sync.RWMutex
	capacity int
	entries  map[kernelSize]gocv.Mat
	order    []kernelSize // most-recently-used at the end
}

// defaultKernelCacheSize is the default bound on cache entries
// (spec.md §4.1: "at most 32 entries").
const defaultKernelCacheSize = 32

func newKernelCache(capacity int) *kernelCache {
	if capacity <= 0 {
		capacity = defaultKernelCacheSize
	}
	return &kernelCache{
		capacity: capacity,
		entries:  make(map[kernelSize]gocv.Mat, capacity),
	}
}

// get returns the rectangular structuring element of size w x h,
// building and caching it on first use.
func (c *kernelCache) get(w, h int) gocv.Mat {
	key := kernelSize{w, h}

	c.mu.RLock()
	if k, ok := c.entries[key]; ok {
		c.mu.RUnlock()
		c.touch(key)
		return k
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// another goroutine may have raced us to the write lock
	if k, ok := c.entries[key]; ok {
		c.touchLocked(key)
		return k
	}

	k := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(w, h))
	c.evictIfFullLocked()
	c.entries[key] = k
	c.order = append(c.order, key)
	return k
}

// touch promotes key to most-recently-used under the write lock.
func (c *kernelCache) touch(key kernelSize) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchLocked(key)
}

func (c *kernelCache) touchLocked(key kernelSize) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, key)
			return
		}
	}
}

func (c *kernelCache) evictIfFullLocked() {
	if len(c.order) < c.capacity {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	if m, ok := c.entries[oldest]; ok {
		m.Close()
		delete(c.entries, oldest)
	}
}

// close releases every structuring element still held by the cache.
// Call when the cache (and the Engine that owns it) is discarded.
func (c *kernelCache) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.entries {
		m.Close()
	}
	c.entries = nil
	c.order = nil
}
