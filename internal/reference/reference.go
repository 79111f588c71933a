// Package reference builds mean/min/max/count summaries per grouping key,
// used for benchmarking entities against their peers.
package reference

import (
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type Stats struct {
	Mean  float64 `json:"mean"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// Group holds the statistics of every numeric field that had at least one
// value in the group.
type Group struct {
	Key    []string         `json:"key"`
	Fields map[string]Stats `json:"fields"`
}

// Field extracts a numeric value from an item. ok=false means the item has no
// value for the field and is left out of its statistics.
type Field[T any] func(item T) (value float64, ok bool)

// Build groups items by key and summarises each field per group. Groups are
// returned ordered by key; groups without any value are never emitted.
func Build[T any](items []T, key func(T) []string, fields map[string]Field[T]) []Group {
	type bucket struct {
		key    []string
		values map[string][]float64
	}

	buckets := make(map[string]*bucket)
	for _, item := range items {
		k := key(item)
		id := strings.Join(k, "\x00")

		b, ok := buckets[id]
		if !ok {
			b = &bucket{key: k, values: make(map[string][]float64, len(fields))}
			buckets[id] = b
		}

		for name, extract := range fields {
			v, ok := extract(item)
			if !ok || math.IsNaN(v) {
				continue
			}
			b.values[name] = append(b.values[name], v)
		}
	}

	ids := make([]string, 0, len(buckets))
	for id, b := range buckets {
		if len(b.values) == 0 {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	groups := make([]Group, 0, len(ids))
	for _, id := range ids {
		b := buckets[id]
		g := Group{Key: b.key, Fields: make(map[string]Stats, len(b.values))}
		for name, values := range b.values {
			g.Fields[name] = Summarize(values)
		}
		groups = append(groups, g)
	}

	return groups
}

// Summarize computes the statistics of a non-empty slice. The input is not
// modified.
func Summarize(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}
	return Stats{
		Mean:  stat.Mean(values, nil),
		Min:   floats.Min(values),
		Max:   floats.Max(values),
		Count: len(values),
	}
}
