package metastats

import "github.com/dk-github-acc/metastats-go/constants"

// TelemetryStats is the composite aggregate the engine keeps one of per tenant, plus
// one global instance (spec §3). Every mutator in the engine's public contract ends
// up touching one or two of these.
type TelemetryStats struct {
	TenantID  string
	SessionID string

	SessionStartMs   int64
	StatsStartMs     int64
	SessionStartupMs int64
	StatsSequenceNum int64

	OfflineStorageEnabled bool

	Package *PackageStats
	RTT     *LatencyStats
	Record  *RecordStats

	RecordByLatency         map[constants.LatencyClass]*RecordStats
	LogToSendLatencyByClass map[constants.LatencyClass]*LatencyStats

	RetriesCountDistribution *Distribution
	Offline                  *OfflineStorageStats
}

// NewTelemetryStats builds a fresh TelemetryStats with empty per-class maps and no
// histogram keys. The engine's resetRow with start=true (re)establishes the
// histogram shapes.
func NewTelemetryStats(tenantID string, offlineEnabled bool) *TelemetryStats {
	t := &TelemetryStats{
		TenantID:                 tenantID,
		OfflineStorageEnabled:    offlineEnabled,
		Package:                  NewPackageStats(),
		RTT:                      NewLatencyStats(),
		Record:                   NewRecordStats(),
		RetriesCountDistribution: NewDistribution(),
		Offline:                  NewOfflineStorageStats(),
	}
	t.clearPerClassMaps()
	return t
}

func (t *TelemetryStats) clearPerClassMaps() {
	t.RecordByLatency = make(map[constants.LatencyClass]*RecordStats)
	t.LogToSendLatencyByClass = make(map[constants.LatencyClass]*LatencyStats)
	for _, class := range []constants.LatencyClass{constants.Normal, constants.CostDeferred, constants.RealTime, constants.Max} {
		t.RecordByLatency[class] = NewRecordStats()
		t.LogToSendLatencyByClass[class] = NewLatencyStats()
	}
}
