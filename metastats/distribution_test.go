package metastats

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDistributionInitKeysStartAtZeroAndIncrease(t *testing.T) {
	d := NewDistribution()
	d.Init(500, 2, 10, true)

	keys := d.Keys()
	require.Len(t, keys, 10)
	require.Equal(t, int64(0), keys[0])
	for i := 1; i < len(keys); i++ {
		require.Greater(t, keys[i], keys[i-1], "keys must be strictly increasing")
	}
}

func TestDistributionDegenerateGeometricStepStopsEarly(t *testing.T) {
	d := NewDistribution()
	d.Init(1, 1, 10, true)

	// step=1 geometric never grows past the first value, so Init should stop
	// rather than emit a non-increasing key.
	keys := d.Keys()
	for i := 1; i < len(keys); i++ {
		require.Greater(t, keys[i], keys[i-1], "keys must be strictly increasing even under degenerate params")
	}
}

func TestDistributionObserveAttributesLargestKeyBelowOrEqual(t *testing.T) {
	d := NewDistribution()
	d.buckets = []bucket{{key: 0}, {key: 1}, {key: 10}, {key: 100}, {key: 1000}}

	for _, v := range []int64{0, 2, 1024} {
		d.Observe(v)
	}

	want := map[int64]int64{0: 1, 1: 1, 1000: 1}
	for _, b := range d.buckets {
		require.Equal(t, want[b.key], b.count, "bucket %d", b.key)
	}
}

func TestDistributionObserveSumEqualsObservationCount(t *testing.T) {
	d := NewDistribution()
	d.Init(1, 2, 8, true)

	observations := []int64{0, 1, 3, 7, 15, 31, 63, 127, 255, 999}
	for _, v := range observations {
		d.Observe(v)
	}
	require.EqualValues(t, len(observations), d.Sum())
}

func TestDistributionResetValuesKeepsKeys(t *testing.T) {
	d := NewDistribution()
	d.Init(10, 2, 5, true)
	before := d.Keys()

	d.Observe(10)
	d.Observe(100)
	d.ResetValues()

	require.Equal(t, before, d.Keys())
	require.Zero(t, d.Sum())
}

func TestDistributionReinitSameParamsProducesSameKeys(t *testing.T) {
	d1 := NewDistribution()
	d1.Init(500, 2, 12, true)
	d2 := NewDistribution()
	d2.Init(500, 2, 12, true)

	require.Equal(t, d1.Keys(), d2.Keys())
}

func TestDistributionSerializeRangeMode(t *testing.T) {
	d := NewDistribution()
	d.buckets = []bucket{{key: 0, count: 2}, {key: 10, count: 0}, {key: 100, count: 1}}

	require.Equal(t, "0-10:2,10-100:0,>100:1", d.Serialize(true))
}

func TestDistributionSerializeFlatMode(t *testing.T) {
	d := NewDistribution()
	d.buckets = []bucket{{key: 0, count: 2}, {key: 10, count: 0}}

	require.Equal(t, "0:2,10:0", d.Serialize(false))
}
