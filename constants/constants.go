// Package constants holds the shared enumerations used across the metastats engine:
// the priority classes events are tagged with, the rollup kinds the engine's state
// machine transitions on, and the reason codes reported by the pipeline stages that
// drop, reject, or overflow records.
package constants

// LatencyClass is the four-level event priority used to decompose RecordStats and
// LogToSendLatency by class. Values below zero mean "no class" and bypass per-class
// updates entirely.
type LatencyClass int

const (
	// Normal is the default, cost-deferred-eligible priority.
	Normal LatencyClass = iota
	// CostDeferred events may be batched more aggressively.
	CostDeferred
	// RealTime events are sent with minimal batching delay.
	RealTime
	// Max is the highest, send-immediately priority.
	Max
)

// NoLatencyClass marks an event that does not participate in per-class aggregation.
const NoLatencyClass LatencyClass = -1

// RollupKind selects which transition generate_stats_event drives the engine through.
type RollupKind int

const (
	// Start begins a session: sequence number resets to zero and bucket keys are
	// (re)initialized from the histogram configuration.
	Start RollupKind = iota
	// Ongoing is a periodic tick, gated by hasStatsDataAvailable.
	Ongoing
	// Stop ends a session: snapshot, reset, then clear every map and histogram.
	Stop
)

// String renders the rollup kind the way it appears in emitted records
// (stats_rollup_kind extension field).
func (k RollupKind) String() string {
	switch k {
	case Start:
		return "start"
	case Stop:
		return "stop"
	case Ongoing:
		return "ongoing"
	default:
		return "unknown"
	}
}

// DroppedReason enumerates why a record was dropped before it reached the wire.
type DroppedReason int

const (
	// DroppedOfflineStorageSaveFailed means the record could not be spilled to
	// local storage and was discarded.
	DroppedOfflineStorageSaveFailed DroppedReason = iota
	// DroppedRetryExceeded means the record's batch exhausted its retry budget.
	DroppedRetryExceeded
	// DroppedOther covers reasons the pipeline doesn't break out individually.
	DroppedOther
)

// RejectedReason enumerates why a record was rejected by validation before ingestion.
// Several source reasons pack into one output key at snapshot time (spec §4.4).
type RejectedReason int

const (
	RejectedInvalidClientMessageType RejectedReason = iota
	RejectedRequiredArgumentMissing
	RejectedEventNameMissing
	RejectedValidationFailed
	RejectedOldRecordVersion
	RejectedEventExpired
	RejectedServerDeclined
	RejectedTenantKilled
	RejectedEventSizeLimitExceeded
)
