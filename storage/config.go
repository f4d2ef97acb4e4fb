// Package storage is the offline-storage collaborator: it spills batches to Redis
// under compression when the transport can't accept them immediately, and reports
// its own state back into the metastats engine through the Mutator interface. It
// is an external collaborator to the engine (spec §1's out-of-scope list), not part
// of the aggregation core — the engine never reaches into it.
package storage

// RedisConfig configures the connection to the offline-storage Redis instance.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	Database int
	Prefix   string
}

// Default returns a RedisConfig pointed at a local, unauthenticated Redis instance.
func Default() *RedisConfig {
	return &RedisConfig{
		Host:     "localhost",
		Port:     6379,
		Database: 0,
		Prefix:   "metastats",
	}
}
