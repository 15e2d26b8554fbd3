package temporal

import (
	"sync"
	"testing"

	"github.com/zeebo/xxh3"
)

func TestCache_Parse(t *testing.T) {
	c := NewCache()

	first, ok := c.Parse(TemporalDateString, "2021-04-01")
	if !ok {
		t.Fatal("expected match")
	}

	second, ok := c.Parse(TemporalDateString, "2021-04-01")
	if !ok {
		t.Fatal("expected match")
	}

	if first != second {
		t.Error("expected the cached result to be returned")
	}

	hits, misses := c.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got %d and %d", hits, misses)
	}
}

func TestCache_Mismatch(t *testing.T) {
	c := NewCache()

	for range 2 {
		res, ok := c.Parse(TemporalDateString, "2021-13-01")
		if ok || res != nil {
			t.Fatalf("expected mismatch, got %v", res)
		}
	}

	if c.Len() != 1 {
		t.Errorf("expected mismatch to be cached, got %d entries", c.Len())
	}

	hits, _ := c.Stats()
	if hits != 1 {
		t.Errorf("expected 1 hit, got %d", hits)
	}
}

func TestCache_HashCollision(t *testing.T) {
	var c Cache

	// Plant an entry for a different input under the key of "2021-04-01".
	other, _ := Parse(TemporalDateString, "1999-12-31")
	key := cacheKey{prod: TemporalDateString, hash: xxh3.HashString("2021-04-01")}
	c.entries.Store(key, &cacheEntry{input: "1999-12-31", result: other, ok: true})

	res, ok := c.Parse(TemporalDateString, "2021-04-01")
	if !ok {
		t.Fatal("expected match")
	}

	if year, _ := res.Year(); year != "2021" {
		t.Errorf("expected year 2021, got %q", year)
	}

	hits, misses := c.Stats()
	if hits != 0 || misses != 1 {
		t.Errorf("expected 0 hits and 1 miss, got %d and %d", hits, misses)
	}
}

func TestCache_Clear(t *testing.T) {
	c := NewCache()

	c.Parse(TemporalDateString, "2021-04-01")
	c.Parse(TemporalDateString, "2021-04-02")
	c.Parse(TemporalDateString, "2021-04-02")

	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}

	c.Clear()

	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Len())
	}

	hits, misses := c.Stats()
	if hits != 0 || misses != 0 {
		t.Errorf("expected reset stats, got %d and %d", hits, misses)
	}
}

func TestCache_Concurrent(t *testing.T) {
	c := NewCache()
	inputs := []string{
		"2021-04-01",
		"2021-04-01T12:30",
		"2021-04-01T12:30:15.5",
		"2021-13-01",
	}

	var wg sync.WaitGroup

	for range 8 {
		wg.Go(func() {
			for range 100 {
				for _, input := range inputs {
					_, ok := c.Parse(TemporalDateString, input)
					if ok != Matches(TemporalDateString, input) {
						t.Errorf("%q: cached outcome differs from direct parse", input)
					}
				}
			}
		})
	}

	wg.Wait()

	if c.Len() != len(inputs) {
		t.Errorf("expected %d entries, got %d", len(inputs), c.Len())
	}

	hits, misses := c.Stats()
	if hits+misses != 8*100*uint64(len(inputs)) {
		t.Errorf("expected every lookup counted, got %d", hits+misses)
	}
}
