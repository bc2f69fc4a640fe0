// Copyright © 2025 Texelpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: glyph/cache.go
// Summary: Bounded LRU cache for rendered glyph bitmaps.

package glyph

import "container/list"

// CacheKey identifies a rendered glyph. Identical keys always map to
// pixel-identical bitmaps while the font context is unchanged.
type CacheKey struct {
	Cluster string
	SizePx  int
	Color   uint32 // packed RGBA
	Style   Style
}

type cacheEntry struct {
	key CacheKey
	bm  *Bitmap
}

// cache is a least-recently-used bitmap cache. It is not safe for
// concurrent use; the render loop owns it exclusively.
type cache struct {
	capacity int
	order    *list.List // front = most recent
	entries  map[CacheKey]*list.Element
}

func newCache(capacity int) *cache {
	if capacity < 1 {
		capacity = 1
	}
	return &cache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[CacheKey]*list.Element, capacity),
	}
}

func (c *cache) get(key CacheKey) (*Bitmap, bool) {
	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry).bm, true
}

func (c *cache) put(key CacheKey, bm *Bitmap) {
	if el, ok := c.entries[key]; ok {
		el.Value.(*cacheEntry).bm = bm
		c.order.MoveToFront(el)
		return
	}
	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, bm: bm})
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

func (c *cache) len() int {
	return c.order.Len()
}

func (c *cache) clear() {
	c.order.Init()
	c.entries = make(map[CacheKey]*list.Element, c.capacity)
}
