package metastats

// OfflineStorageStats tracks the offline-storage collaborator's reported state:
// the format it opened with, the reason for its last failure, and the size
// histograms that would describe spilled batches if the collaborator observed into
// them (spec §3). The engine only ever sets the two string fields from
// on_storage_opened/on_storage_failed (spec §4.2); the histograms carry their
// configured key set so config_off_size can report the configured bucket shape even
// though offline storage itself is out of scope for this engine.
type OfflineStorageStats struct {
	StorageFormat     string
	LastFailureReason string
	FileSizeBytes     int64

	SaveSizeHistogram      *Distribution
	OverwriteSizeHistogram *Distribution
}

// NewOfflineStorageStats returns an OfflineStorageStats with no histogram keys set.
func NewOfflineStorageStats() *OfflineStorageStats {
	return &OfflineStorageStats{
		SaveSizeHistogram:      NewDistribution(),
		OverwriteSizeHistogram: NewDistribution(),
	}
}

// Init (re)builds both size histograms' key sets and clears the string/scalar
// fields. Called at a Start rollup; a no-op shape when offline storage is disabled
// (the caller simply never calls Init in that case, leaving the histograms empty).
func (o *OfflineStorageStats) Init(firstKB, factor int64, totalSpots int) {
	o.SaveSizeHistogram.Init(firstKB, factor, totalSpots, true)
	o.OverwriteSizeHistogram.Init(firstKB, factor, totalSpots, true)
	o.StorageFormat = ""
	o.LastFailureReason = ""
	o.FileSizeBytes = 0
}

// ResetValues zeroes the histogram values, keeping their key sets (spec §4.3,
// Ongoing reset). The format label and last-failure reason survive: they describe
// the collaborator's current state, not an event since the last rollup.
func (o *OfflineStorageStats) ResetValues() {
	o.SaveSizeHistogram.ResetValues()
	o.OverwriteSizeHistogram.ResetValues()
}
