package glyph

import "testing"

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := newCache(2)
	a := CacheKey{Cluster: "a", SizePx: 16}
	b := CacheKey{Cluster: "b", SizePx: 16}
	d := CacheKey{Cluster: "d", SizePx: 16}

	c.put(a, NewBitmap(4, 4, false))
	c.put(b, NewBitmap(4, 4, false))

	// Touch a so b becomes the eviction candidate.
	if _, ok := c.get(a); !ok {
		t.Fatal("a missing")
	}
	c.put(d, NewBitmap(4, 4, false))

	if _, ok := c.get(b); ok {
		t.Fatal("b should have been evicted")
	}
	if _, ok := c.get(a); !ok {
		t.Fatal("a should have survived")
	}
	if _, ok := c.get(d); !ok {
		t.Fatal("d should be present")
	}
	if c.len() != 2 {
		t.Fatalf("len = %d, want 2", c.len())
	}
}

func TestCachePutReplaces(t *testing.T) {
	c := newCache(2)
	k := CacheKey{Cluster: "a", SizePx: 16}
	c.put(k, NewBitmap(4, 4, false))
	repl := NewBitmap(8, 8, false)
	c.put(k, repl)
	got, ok := c.get(k)
	if !ok || got != repl {
		t.Fatal("replacement not stored")
	}
	if c.len() != 1 {
		t.Fatalf("len = %d, want 1", c.len())
	}
}
