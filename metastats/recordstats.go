package metastats

import (
	"math"

	"github.com/dk-github-acc/metastats-go/constants"
)

// RecordStats aggregates event-record activity for one scope: either a tenant's
// global row, or one of its per-LatencyClass breakdowns (spec §3). Every field is a
// running total since the last reset; the engine is the only writer.
type RecordStats struct {
	Received            int64
	ReceivedMetaStats   int64
	Sent                int64
	SentCurrentSession  int64
	SentPreviousSession int64
	Dropped             int64
	Overflown           int64
	Rejected            int64
	Banned              int64

	MinSizeBytes int64
	MaxSizeBytes int64
	TotalBytes   int64
	SizeKiB      *Distribution

	DroppedByReason       map[constants.DroppedReason]int64
	RejectedByReason      map[constants.RejectedReason]int64
	CountByEventType      map[string]int64
	ExceptionsByEventType map[string]int64
	DroppedByHTTPCode     map[int]int64
}

// NewRecordStats returns a RecordStats with empty maps and no histogram keys. Call
// Init before use.
func NewRecordStats() *RecordStats {
	r := &RecordStats{SizeKiB: NewDistribution()}
	r.clearMaps()
	return r
}

func (r *RecordStats) clearMaps() {
	r.DroppedByReason = make(map[constants.DroppedReason]int64)
	r.RejectedByReason = make(map[constants.RejectedReason]int64)
	r.CountByEventType = make(map[string]int64)
	r.ExceptionsByEventType = make(map[string]int64)
	r.DroppedByHTTPCode = make(map[int]int64)
}

// Init (re)builds the size histogram's key set and zeroes every counter and map.
// Called at a Start rollup.
func (r *RecordStats) Init(sizeFirstKB, sizeFactor int64, sizeTotalSpots int) {
	r.SizeKiB.Init(sizeFirstKB, sizeFactor, sizeTotalSpots, true)
	r.resetScalars()
	r.clearMaps()
}

func (r *RecordStats) zeroCounters() {
	r.Received = 0
	r.ReceivedMetaStats = 0
	r.Sent = 0
	r.SentCurrentSession = 0
	r.SentPreviousSession = 0
	r.Dropped = 0
	r.Overflown = 0
	r.Rejected = 0
	r.Banned = 0
}

// resetScalars zeroes every counter and the max/total-byte scalars and sets the
// min-byte scalar back to its MaxInt64 sentinel, leaving the size histogram's key
// set and every map untouched.
func (r *RecordStats) resetScalars() {
	r.zeroCounters()
	r.MinSizeBytes = math.MaxInt64
	r.MaxSizeBytes = 0
	r.TotalBytes = 0
}

// ResetValues resets every counter and the min/max/total-byte scalars (as
// resetScalars does) and zeroes the size histogram's counts, keeping its key set and clearing every reason map. Used at
// an Ongoing rollup: the ground truth's resetStats() calls recordStats.Reset()
// unconditionally, before branching on start, so counters never accumulate across
// an Ongoing boundary.
func (r *RecordStats) ResetValues() {
	r.resetScalars()
	r.SizeKiB.ResetValues()
	r.clearMaps()
}

// ObserveSize records one record's size in bytes into the min/max/total scalars and
// the KiB histogram (floor division by 1024, per spec §4.2).
func (r *RecordStats) ObserveSize(sizeBytes int64) {
	if sizeBytes < r.MinSizeBytes {
		r.MinSizeBytes = sizeBytes
	}
	if sizeBytes > r.MaxSizeBytes {
		r.MaxSizeBytes = sizeBytes
	}
	r.TotalBytes += sizeBytes
	r.SizeKiB.Observe(sizeBytes / 1024)
}
