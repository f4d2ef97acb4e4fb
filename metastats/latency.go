package metastats

import "math"

// LatencyStats is a scalar min/max pair plus a Distribution (spec §4.1/§3). Min
// starts at the maximum representable value so that the first Observe always wins.
type LatencyStats struct {
	Min  int64
	Max  int64
	Dist *Distribution
}

// NewLatencyStats returns a LatencyStats with sentinel min/max and no histogram keys.
// Call Init before observing.
func NewLatencyStats() *LatencyStats {
	return &LatencyStats{
		Min:  math.MaxInt64,
		Max:  0,
		Dist: NewDistribution(),
	}
}

// Init (re)builds the histogram key set and resets the scalars to their sentinels.
func (l *LatencyStats) Init(firstValue, step int64, totalSpots int, geometric bool) {
	l.Min = math.MaxInt64
	l.Max = 0
	l.Dist.Init(firstValue, step, totalSpots, geometric)
}

// Observe records v into both the min/max scalars and the histogram.
func (l *LatencyStats) Observe(v int64) {
	if v < l.Min {
		l.Min = v
	}
	if v > l.Max {
		l.Max = v
	}
	l.Dist.Observe(v)
}

// ResetValues zeroes the histogram counts and resets min/max to their sentinels,
// keeping the histogram's key set (spec §4.3, Ongoing reset).
func (l *LatencyStats) ResetValues() {
	l.Min = math.MaxInt64
	l.Max = 0
	l.Dist.ResetValues()
}

// Empty reports whether no observation has been recorded since the last reset.
func (l *LatencyStats) Empty() bool {
	return l.Max == 0 && l.Min == math.MaxInt64
}
