package storage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dk-github-acc/metastats-go/logging"
)

func TestOfflineStoreKeyIncludesPrefix(t *testing.T) {
	cfg := Default()
	cfg.Prefix = "test-prefix"
	s := &OfflineStore{prefix: cfg.Prefix}

	require.Equal(t, "test-prefix:batch-1", s.key("batch-1"))
}

func TestOfflineStoreCompressionRoundTrips(t *testing.T) {
	s, err := New(Default(), nil, logging.NopLogger{})
	require.NoError(t, err)
	defer s.Close()

	payload := []byte("a telemetry batch worth spilling to disk while offline")
	compressed := s.encoder.EncodeAll(payload, nil)
	require.NotEmpty(t, compressed)

	decompressed, err := s.decoder.DecodeAll(compressed, nil)
	require.NoError(t, err)
	require.Equal(t, payload, decompressed)
}
