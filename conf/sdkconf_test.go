package conf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeDefaults(t *testing.T) {
	cfg := Default()
	require.NoError(t, Normalize(cfg), "default config should normalize cleanly")
	require.NotNil(t, cfg.Logger, "Normalize should fill in a logger when none is set")
}

func TestNormalizeRejectsEmptyTenantToken(t *testing.T) {
	cfg := Default()
	cfg.MetaStatsTenantToken = ""
	require.Error(t, Normalize(cfg), "expected an error for an empty MetaStatsTenantToken")
}

func TestNormalizeRejectsNonPositiveInterval(t *testing.T) {
	cfg := Default()
	cfg.MetaStatsSendIntervalSec = 0
	require.Error(t, Normalize(cfg), "expected an error for a non-positive send interval")
}

func TestNormalizeRejectsDegenerateHistogram(t *testing.T) {
	cfg := Default()
	cfg.RTT.NextFactor = 1
	require.Error(t, Normalize(cfg), "expected an error when NextFactor can't keep keys strictly increasing")

	cfg = Default()
	cfg.Latency.TotalSpots = 0
	require.Error(t, Normalize(cfg), "expected an error for a zero-spot histogram")
}

func TestNormalizeAllowsSingleSpotHistogram(t *testing.T) {
	cfg := Default()
	cfg.RecordSize.TotalSpots = 1
	cfg.RecordSize.FirstValue = 0
	cfg.RecordSize.NextFactor = 0
	require.NoError(t, Normalize(cfg), "a single-spot histogram (just bucket 0) should be valid")
}
