// Package pairwise implements the memoized symmetric pair-metric store used
// by the clustering stage plus the similarity metric itself.
//
// A Calculation compares two frequency trajectories restricted to the window
// where at least one of them is detected. Its p-value answers "could these
// two series plausibly be noisy measurements of the same underlying
// lineage?": identical series score 1, series with no shared detected
// window score the neutral 0 and are never clustered together.
//
// Keys are unordered: Get(a, b) and Get(b, a) address the same entry, and an
// entry is never recomputed once present. The cache lives for one pipeline
// run; it carries no cross-run state.
package pairwise

import "sort"

// Key addresses one unordered trajectory pair. Construct via NewKey so that
// (a,b) and (b,a) collapse to the same value.
type Key struct {
	A, B string
}

// NewKey returns the canonical key for the unordered pair {a, b}.
func NewKey(a, b string) Key {
	if b < a {
		a, b = b, a
	}

	return Key{A: a, B: b}
}

// Calculation is the stored metric for one pair: the similarity p-value, the
// binomial standard error of the mean pair difference, and the mean absolute
// difference between the two series over the compared window.
type Calculation struct {
	Left, Right    string
	Pvalue         float64
	Sigma          float64
	MeanDifference float64
}

// Cache is the write-once pair-metric store.
// The zero value is not usable; construct with NewCache.
type Cache struct {
	entries map[Key]Calculation
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: map[Key]Calculation{}}
}

// Len returns the number of stored pairs.
func (c *Cache) Len() int { return len(c.entries) }

// Get returns the stored calculation for the unordered pair {a, b}.
func (c *Cache) Get(a, b string) (Calculation, bool) {
	calc, ok := c.entries[NewKey(a, b)]

	return calc, ok
}

// GetOrCompute returns the cached value for key, computing and storing it via
// fn only when absent. A present entry is never recomputed.
func (c *Cache) GetOrCompute(key Key, fn func() Calculation) Calculation {
	if calc, ok := c.entries[key]; ok {
		return calc
	}
	calc := fn()
	c.entries[key] = calc

	return calc
}

// Keys returns every stored pair key in lexical order, for deterministic
// diagnostic output.
func (c *Cache) Keys() []Key {
	keys := make([]Key, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].A != keys[j].A {
			return keys[i].A < keys[j].A
		}

		return keys[i].B < keys[j].B
	})

	return keys
}
