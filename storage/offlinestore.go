package storage

import (
	"context"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/redis/go-redis/v9"

	"github.com/dk-github-acc/metastats-go/logging"
	"github.com/dk-github-acc/metastats-go/metastats"
)

// formatLabel is what OfflineStore reports through on_storage_opened; it lands in
// the engine's snapshot under off_type.
const formatLabel = "zstd+redis"

// OfflineStore spills batches to Redis, zstd-compressed, and reports storage
// lifecycle events into a metastats.Mutator. record spilled under a batch key can
// later be reloaded and resubmitted to the transport once connectivity returns.
type OfflineStore struct {
	client   *redis.Client
	encoder  *zstd.Encoder
	decoder  *zstd.Decoder
	reporter metastats.Mutator
	logger   logging.LoggerInterface
	prefix   string
}

// New builds an OfflineStore against the given Redis config. reporter receives
// on_storage_opened/on_storage_failed calls as connectivity changes.
func New(cfg *RedisConfig, reporter metastats.Mutator, logger logging.LoggerInterface) (*OfflineStore, error) {
	if logger == nil {
		logger = logging.NopLogger{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.Database,
	})

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("storage: build zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("storage: build zstd decoder: %w", err)
	}

	return &OfflineStore{
		client:   client,
		encoder:  encoder,
		decoder:  decoder,
		reporter: reporter,
		logger:   logger,
		prefix:   cfg.Prefix,
	}, nil
}

// Open pings Redis and reports the outcome through the reporter. Callers should
// call Open once before the first Save/Load; a failed Open still leaves the store
// usable — every later call will simply fail and report again.
func (s *OfflineStore) Open(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		s.reporter.OnStorageFailed(err.Error())
		return fmt.Errorf("storage: open: %w", err)
	}
	s.reporter.OnStorageOpened(formatLabel)
	return nil
}

func (s *OfflineStore) key(batchID string) string {
	return s.prefix + ":" + batchID
}

// Save compresses batch and writes it under batchID. Any failure is reported to
// the engine via on_storage_failed before being returned to the caller.
func (s *OfflineStore) Save(ctx context.Context, batchID string, batch []byte) error {
	compressed := s.encoder.EncodeAll(batch, nil)
	if err := s.client.Set(ctx, s.key(batchID), compressed, 0).Err(); err != nil {
		s.reporter.OnStorageFailed(err.Error())
		return fmt.Errorf("storage: save %s: %w", batchID, err)
	}
	return nil
}

// Load reads and decompresses the batch stored under batchID.
func (s *OfflineStore) Load(ctx context.Context, batchID string) ([]byte, error) {
	compressed, err := s.client.Get(ctx, s.key(batchID)).Bytes()
	if err != nil {
		s.reporter.OnStorageFailed(err.Error())
		return nil, fmt.Errorf("storage: load %s: %w", batchID, err)
	}
	raw, err := s.decoder.DecodeAll(compressed, nil)
	if err != nil {
		s.reporter.OnStorageFailed(err.Error())
		return nil, fmt.Errorf("storage: decompress %s: %w", batchID, err)
	}
	return raw, nil
}

// Delete removes a spilled batch once the transport has confirmed delivery.
func (s *OfflineStore) Delete(ctx context.Context, batchID string) error {
	return s.client.Del(ctx, s.key(batchID)).Err()
}

// Close releases the compressor/decompressor and the Redis connection.
func (s *OfflineStore) Close() error {
	s.encoder.Close()
	s.decoder.Close()
	return s.client.Close()
}
