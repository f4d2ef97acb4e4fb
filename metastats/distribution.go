package metastats

import (
	"sort"
	"strconv"
	"strings"
)

// bucket is one key/count pair in a Distribution. Keys are kept in a sorted slice
// rather than a map so that Serialize can walk them in order without an extra sort
// on every rollup.
type bucket struct {
	key   int64
	count int64
}

// Distribution is a fixed-bucket histogram over non-negative integers (spec §4.1).
// Bucket 0 always exists; once Init has run the key set never changes for the
// session — only ResetValues, Init (re-run at a Start rollup), or Observe touch it,
// and Observe only ever mutates counts. Distribution is not safe for concurrent use
// on its own: every Distribution lives inside a TelemetryStats that the engine
// mutates under its single lock (spec §5).
type Distribution struct {
	buckets []bucket
}

// NewDistribution returns a Distribution with no keys. Call Init before observing.
func NewDistribution() *Distribution {
	return &Distribution{}
}

// Init clears the distribution and (re)builds its key set: bucket 0, then up to
// totalSpots-1 additional keys starting at firstValue and growing by step — either
// multiplicatively (geometric) or additively (linear). Duplicate keys collapse, so
// a degenerate step (e.g. step=1 geometric) simply yields fewer than totalSpots
// buckets rather than an infinite or non-increasing key set.
func (d *Distribution) Init(firstValue, step int64, totalSpots int, geometric bool) {
	d.buckets = make([]bucket, 0, totalSpots)
	d.buckets = append(d.buckets, bucket{key: 0, count: 0})

	if totalSpots < 1 {
		return
	}

	lastKey := int64(0)
	for i := 1; i < totalSpots; i++ {
		var key int64
		if lastKey == 0 {
			key = firstValue
		} else if geometric {
			key = lastKey * step
		} else {
			key = lastKey + step
		}
		if key <= lastKey {
			// Degenerate growth parameters (e.g. step <= 1 geometric): stop rather
			// than emit a non-increasing or duplicate key.
			break
		}
		d.buckets = append(d.buckets, bucket{key: key, count: 0})
		lastKey = key
	}
}

// Observe locates the largest key <= v and increments its count. A no-op on an
// empty distribution. Values below the smallest non-zero key land in bucket 0.
func (d *Distribution) Observe(v int64) {
	if len(d.buckets) == 0 {
		return
	}
	idx := sort.Search(len(d.buckets), func(i int) bool { return d.buckets[i].key > v }) - 1
	if idx < 0 {
		idx = 0
	}
	d.buckets[idx].count++
}

// ResetValues zeroes every count while keeping the key set.
func (d *Distribution) ResetValues() {
	for i := range d.buckets {
		d.buckets[i].count = 0
	}
}

// Sum returns the total number of observations currently held.
func (d *Distribution) Sum() int64 {
	var total int64
	for _, b := range d.buckets {
		total += b.count
	}
	return total
}

// Empty reports whether the distribution has no keys at all (Init never called).
// Init always creates bucket 0, so an initialized distribution is never empty.
func (d *Distribution) Empty() bool {
	return len(d.buckets) == 0
}

// Serialize renders the distribution as a comma-separated list (spec §4.1).
// rangeMode=true emits "k_i-k_{i+1}:v_i" for interior buckets and ">k_last:v_last"
// for the trailing one; rangeMode=false emits "k_i:v_i" for every bucket.
func (d *Distribution) Serialize(rangeMode bool) string {
	if len(d.buckets) == 0 {
		return ""
	}
	parts := make([]string, 0, len(d.buckets))
	for i, b := range d.buckets {
		if !rangeMode {
			parts = append(parts, strconv.FormatInt(b.key, 10)+":"+strconv.FormatInt(b.count, 10))
			continue
		}
		if i == len(d.buckets)-1 {
			parts = append(parts, ">"+strconv.FormatInt(b.key, 10)+":"+strconv.FormatInt(b.count, 10))
		} else {
			next := d.buckets[i+1]
			parts = append(parts, strconv.FormatInt(b.key, 10)+"-"+strconv.FormatInt(next.key, 10)+":"+strconv.FormatInt(b.count, 10))
		}
	}
	return strings.Join(parts, ",")
}

// Keys returns the current key set, in order. Used by tests and by callers that
// need to verify Init produced the expected shape.
func (d *Distribution) Keys() []int64 {
	keys := make([]int64, len(d.buckets))
	for i, b := range d.buckets {
		keys[i] = b.key
	}
	return keys
}
