// Package conf contains the configuration structures used to set up the metastats
// engine: the histogram parameters for each Distribution, the stats tenant token and
// rollup interval, and the offline-storage collaborator settings.
package conf

import (
	"errors"
	"fmt"

	"github.com/dk-github-acc/metastats-go/logging"
)

// HistogramConfig parameterizes one Distribution's key set (spec §4.1/§6): the first
// non-zero key, the geometric growth factor applied to derive the next key, and the
// total number of spots including the always-present bucket 0.
type HistogramConfig struct {
	FirstValue int64
	NextFactor int64
	TotalSpots int
}

// OfflineConfig configures the offline-storage collaborator.
type OfflineConfig struct {
	Enabled bool
	// SizeHistogram parameterizes both the save and overwrite size distributions.
	SizeHistogram HistogramConfig
}

// Config struct used to set up the metastats engine.
type Config struct {
	// MetaStatsTenantToken identifies the tenant the engine's own global row reports
	// under, and the token the self-exclusion predicate treats as "about MetaStats".
	MetaStatsTenantToken string
	// MetaStatsSendIntervalSec is the configured rollup tick period, echoed into every
	// emitted record's st_freq field.
	MetaStatsSendIntervalSec int64

	RTT        HistogramConfig
	Latency    HistogramConfig
	RecordSize HistogramConfig
	Offline    OfflineConfig

	Logger       logging.LoggerInterface
	LoggerConfig *logging.LoggerOptions
}

// Default returns a config struct with all the default values, matching the
// geometric growth parameters typical of latency/size histograms in the original
// implementation this spec was distilled from.
func Default() *Config {
	return &Config{
		MetaStatsTenantToken:     "0000-0000-0000-0000-000000000000",
		MetaStatsSendIntervalSec: 60,
		RTT: HistogramConfig{
			FirstValue: defaultRTTFirstMs,
			NextFactor: defaultRTTNextFactor,
			TotalSpots: defaultRTTTotalSpots,
		},
		Latency: HistogramConfig{
			FirstValue: defaultLatencyFirstMs,
			NextFactor: defaultLatencyNextFactor,
			TotalSpots: defaultLatencyTotalSpots,
		},
		RecordSize: HistogramConfig{
			FirstValue: defaultRecordSizeFirstKB,
			NextFactor: defaultRecordSizeNextFactor,
			TotalSpots: defaultRecordSizeTotalSpots,
		},
		Offline: OfflineConfig{
			Enabled: true,
			SizeHistogram: HistogramConfig{
				FirstValue: defaultStorageSizeFirstKB,
				NextFactor: defaultStorageSizeNextFactor,
				TotalSpots: defaultStorageSizeTotalSpots,
			},
		},
	}
}

// Normalize validates the parameters a caller has set and fills in the logger if
// none was provided. Returns an error if a histogram has fewer than one spot, or
// has more than one spot with a FirstValue or NextFactor that would keep
// Distribution.Init from producing TotalSpots strictly increasing keys.
func Normalize(cfg *Config) error {
	if cfg.MetaStatsTenantToken == "" {
		return errors.New("metastats: MetaStatsTenantToken must be a non-empty string")
	}
	if cfg.MetaStatsSendIntervalSec <= 0 {
		return fmt.Errorf("metastats: MetaStatsSendIntervalSec must be > 0, got %d", cfg.MetaStatsSendIntervalSec)
	}

	histograms := []struct {
		name string
		h    HistogramConfig
	}{
		{"RTT", cfg.RTT},
		{"Latency", cfg.Latency},
		{"RecordSize", cfg.RecordSize},
		{"Offline", cfg.Offline.SizeHistogram},
	}
	for _, entry := range histograms {
		if err := validateHistogram(entry.name, entry.h); err != nil {
			return err
		}
	}

	if cfg.Logger == nil {
		if cfg.LoggerConfig != nil {
			cfg.Logger = logging.NewLogger(cfg.LoggerConfig)
		} else {
			cfg.Logger = logging.NopLogger{}
		}
	}

	return nil
}

func validateHistogram(name string, h HistogramConfig) error {
	if h.TotalSpots < 1 {
		return fmt.Errorf("metastats: %s.TotalSpots must be >= 1, got %d", name, h.TotalSpots)
	}
	if h.TotalSpots > 1 {
		if h.FirstValue <= 0 {
			return fmt.Errorf("metastats: %s.FirstValue must be > 0 when TotalSpots > 1, got %d", name, h.FirstValue)
		}
		if h.NextFactor <= 1 {
			return fmt.Errorf("metastats: %s.NextFactor must be > 1 to keep keys strictly increasing, got %d", name, h.NextFactor)
		}
	}
	return nil
}
