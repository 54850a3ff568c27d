// Package distance implements bounded Levenshtein distance with a
// length-adaptive cap and a memoization layer, the C1 component of the
// ranking pipeline (spec.md §4.1).
package distance

import (
	"container/list"
	"sync"

	"github.com/zeebo/xxh3"
)

const defaultCacheSize = 4096

// StringDistance computes capped Levenshtein distance with a bounded LRU
// memo. The cache is safe for concurrent reads and inserts: at worst an
// entry is computed twice under contention, never incorrectly.
type StringDistance struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	index    map[uint64]*list.Element
}

type cacheEntry struct {
	hash     uint64
	a, b     string
	distance int
}

// New creates a StringDistance with the documented ~4096-entry bound.
func New() *StringDistance {
	return NewWithCapacity(defaultCacheSize)
}

// NewWithCapacity creates a StringDistance with a custom memo capacity
// (primarily for tests).
func NewWithCapacity(capacity int) *StringDistance {
	return &StringDistance{
		capacity: capacity,
		ll:       list.New(),
		index:    make(map[uint64]*list.Element, capacity),
	}
}

// DynamicMax returns the length-adaptive distance cap: |s|≤3→1, ≤6→2,
// ≤10→3, else 4.
func DynamicMax(s string) int {
	n := len([]rune(s))
	switch {
	case n <= 3:
		return 1
	case n <= 6:
		return 2
	case n <= 10:
		return 3
	default:
		return 4
	}
}

// Distance returns the Levenshtein distance between a and b. If either
// string is empty, it returns max(|a|,|b|). If max >= 0 and the true
// distance would exceed it, it returns max+1 rather than the exact
// value. Results are memoized on the unordered pair (a,b); max is not
// part of the cache key.
func (d *StringDistance) Distance(a, b string, max int) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return maxInt(len(ra), len(rb))
	}

	dist, ok := d.lookup(a, b)
	if !ok {
		dist = levenshtein(ra, rb)
		d.store(a, b, dist)
	}

	if max >= 0 && dist > max {
		return max + 1
	}
	return dist
}

func (d *StringDistance) cacheKey(a, b string) (string, string, uint64) {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	h := xxh3.HashString(lo + "\x00" + hi)
	return lo, hi, h
}

func (d *StringDistance) lookup(a, b string) (int, bool) {
	lo, hi, h := d.cacheKey(a, b)

	d.mu.Lock()
	defer d.mu.Unlock()

	elem, ok := d.index[h]
	if !ok {
		return 0, false
	}
	entry := elem.Value.(*cacheEntry)
	if entry.a != lo || entry.b != hi {
		return 0, false // hash collision between distinct pairs
	}
	d.ll.MoveToFront(elem)
	return entry.distance, true
}

func (d *StringDistance) store(a, b string, dist int) {
	lo, hi, h := d.cacheKey(a, b)

	d.mu.Lock()
	defer d.mu.Unlock()

	if elem, ok := d.index[h]; ok {
		// Also replace the pair: on a hash collision the slot now belongs
		// to (lo, hi), so lookup of the old pair misses instead of reading
		// this distance.
		entry := elem.Value.(*cacheEntry)
		entry.a, entry.b, entry.distance = lo, hi, dist
		d.ll.MoveToFront(elem)
		return
	}

	entry := &cacheEntry{hash: h, a: lo, b: hi, distance: dist}
	elem := d.ll.PushFront(entry)
	d.index[h] = elem

	for d.ll.Len() > d.capacity {
		oldest := d.ll.Back()
		if oldest == nil {
			break
		}
		d.ll.Remove(oldest)
		delete(d.index, oldest.Value.(*cacheEntry).hash)
	}
}

// levenshtein computes the standard unit-cost edit distance with a
// two-row dynamic-programming table.
func levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = minInt(
				prev[j]+1,
				curr[j-1]+1,
				prev[j-1]+cost,
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func minInt(vs ...int) int {
	m := vs[0]
	for _, v := range vs[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
