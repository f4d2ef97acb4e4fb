package metastats

// PackageStats aggregates batch-level (as opposed to record-level) activity: how
// many batches were posted, acknowledged, retried, or dropped, and the bytes handed
// to the transport (spec §3). Every row carries a PackageStats, but only the global
// row's is ever updated — batches carry records from many tenants, so per-tenant
// batch accounting has no meaning.
type PackageStats struct {
	Posted              int64
	MetastatsOnlyPosted int64
	Acked               int64
	MetastatsOnlyAcked  int64
	AckedSuccess        int64
	AckedRetry          int64
	AckedDropped        int64
	BytesConsumed       int64

	RetryByHTTPCode map[int]int64
	DropByHTTPCode  map[int]int64
}

// NewPackageStats returns a PackageStats with empty maps.
func NewPackageStats() *PackageStats {
	p := &PackageStats{}
	p.clearMaps()
	return p
}

func (p *PackageStats) clearMaps() {
	p.RetryByHTTPCode = make(map[int]int64)
	p.DropByHTTPCode = make(map[int]int64)
}

func (p *PackageStats) zeroCounters() {
	p.Posted = 0
	p.MetastatsOnlyPosted = 0
	p.Acked = 0
	p.MetastatsOnlyAcked = 0
	p.AckedSuccess = 0
	p.AckedRetry = 0
	p.AckedDropped = 0
	p.BytesConsumed = 0
}

// ResetValues zeroes every counter and map. Used at a Start rollup and at
// clearAll, where the maps are also being torn down.
func (p *PackageStats) ResetValues() {
	p.zeroCounters()
	p.clearMaps()
}

// ClearHTTPCodeMaps zeroes every counter and empties the per-HTTP-code retry/drop
// maps. Used at an Ongoing rollup: the ground truth's resetStats() calls
// packageStats.Reset() unconditionally, before branching on start, so these
// counters never accumulate across an Ongoing boundary.
func (p *PackageStats) ClearHTTPCodeMaps() {
	p.zeroCounters()
	p.clearMaps()
}
