package domain

import (
	"cmp"
	"slices"
)

type Count[K cmp.Ordered] struct {
	Key   K   `json:"key"`
	Count int `json:"count"`
}

// Counter counts keys and remembers the order in which each key was first seen.
type Counter[K cmp.Ordered] struct {
	order  []K
	counts map[K]int
}

func NewCounter[K cmp.Ordered]() *Counter[K] {
	return &Counter[K]{counts: make(map[K]int)}
}

func (c *Counter[K]) Inc(key K) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

func (c *Counter[K]) Get(key K) int {
	return c.counts[key]
}

// Len returns the number of distinct keys.
func (c *Counter[K]) Len() int {
	return len(c.order)
}

func (c *Counter[K]) Total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Items returns the counts in first-seen order.
func (c *Counter[K]) Items() []Count[K] {
	items := make([]Count[K], 0, len(c.order))
	for _, k := range c.order {
		items = append(items, Count[K]{Key: k, Count: c.counts[k]})
	}
	return items
}

// MostCommon returns up to n items by descending count. Equal counts keep
// first-seen order.
func (c *Counter[K]) MostCommon(n int) []Count[K] {
	items := c.Items()
	slices.SortStableFunc(items, func(a, b Count[K]) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if n >= 0 && len(items) > n {
		items = items[:n]
	}
	return items
}

// SortedByKey returns the counts ordered by ascending key.
func (c *Counter[K]) SortedByKey() []Count[K] {
	items := c.Items()
	slices.SortFunc(items, func(a, b Count[K]) int {
		return cmp.Compare(a.Key, b.Key)
	})
	return items
}
