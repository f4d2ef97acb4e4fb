// Package metastats implements the meta-statistics aggregation core: a single
// engine that ingests lifecycle observations from a telemetry pipeline (events
// received, batches posted/acked/retried, records dropped/rejected, storage
// opened/failed) and rolls them up into per-tenant and global records on demand.
package metastats

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dk-github-acc/metastats-go/conf"
	"github.com/dk-github-acc/metastats-go/constants"
	"github.com/dk-github-acc/metastats-go/dto"
)

// retryDist* parameterize retriesCountDistribution's key set. No external
// configuration surface covers this histogram, so the shape is a fixed, generously
// sized linear scale rather than a tunable.
const (
	retryDistFirst      = 1
	retryDistStep       = 1
	retryDistTotalSpots = 16
)

// nowMs returns the current time in epoch milliseconds. Overridden in tests so
// rollup timestamps are deterministic.
var nowMs = func() int64 { return time.Now().UnixMilli() }

// MetaStatsEngine is the concrete implementation of Engine (spec §4.2). It owns one
// global TelemetryStats and a lazily populated map of per-tenant rows, all guarded
// by a single mutex per spec §5 — no mutator or reader blocks on I/O while holding
// it.
type MetaStatsEngine struct {
	mu sync.Mutex

	cfg           *conf.Config
	sessionID     string
	statsTenantID string

	global  *TelemetryStats
	tenants map[string]*TelemetryStats
}

var _ Engine = (*MetaStatsEngine)(nil)

// New builds a MetaStatsEngine from cfg, normalizing it first. The global row is
// initialized as if a Start rollup had already run, so the engine is immediately
// ready to accept mutator calls.
func New(cfg *conf.Config) (*MetaStatsEngine, error) {
	if err := conf.Normalize(cfg); err != nil {
		return nil, err
	}

	e := &MetaStatsEngine{
		cfg:           cfg,
		sessionID:     uuid.NewString(),
		statsTenantID: deriveTenantID(cfg.MetaStatsTenantToken),
		tenants:       make(map[string]*TelemetryStats),
	}
	e.global = NewTelemetryStats(e.statsTenantID, cfg.Offline.Enabled)
	e.resetRow(e.global, true, nowMs())
	cfg.Logger.Info("metastats: engine constructed, session", e.sessionID, "tenant", e.statsTenantID)
	return e, nil
}

// deriveTenantID extracts the tenant id from a tenant token: the segment before
// the first '-' (spec §3, GLOSSARY). A token with no '-' is its own tenant id.
func deriveTenantID(token string) string {
	if idx := strings.IndexByte(token, '-'); idx >= 0 {
		return token[:idx]
	}
	return token
}

// getOrCreateTenant returns the tenant row for tenantID, lazily creating and
// Start-initializing it on first use. Must be called with e.mu held.
func (e *MetaStatsEngine) getOrCreateTenant(tenantID string) *TelemetryStats {
	t, ok := e.tenants[tenantID]
	if ok {
		return t
	}
	t = NewTelemetryStats(tenantID, e.cfg.Offline.Enabled)
	e.resetRow(t, true, nowMs())
	e.tenants[tenantID] = t
	return t
}

func inClassRange(class constants.LatencyClass) bool {
	return class >= constants.Normal && class <= constants.Max
}

func allLatencyClasses() []constants.LatencyClass {
	return []constants.LatencyClass{constants.Normal, constants.CostDeferred, constants.RealTime, constants.Max}
}

// OnEventIncoming implements Mutator.
func (e *MetaStatsEngine) OnEventIncoming(tenantToken string, sizeBytes int64, class constants.LatencyClass, isMetaStats bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	applyEventIncoming(e.global, sizeBytes, class)
	if isMetaStats {
		e.global.Record.ReceivedMetaStats++
		return
	}
	tenantID := deriveTenantID(tenantToken)
	t := e.getOrCreateTenant(tenantID)
	applyEventIncoming(t, sizeBytes, class)
}

func applyEventIncoming(t *TelemetryStats, sizeBytes int64, class constants.LatencyClass) {
	t.Record.Received++
	t.Record.ObserveSize(sizeBytes)
	if !inClassRange(class) {
		return
	}
	cr := t.RecordByLatency[class]
	cr.Received++
	cr.ObserveSize(sizeBytes)
}

// OnPostData implements Mutator. Global only: PackageStats has no per-tenant
// meaning since a batch mixes records from every tenant.
func (e *MetaStatsEngine) OnPostData(bytes int64, metaStatsOnly bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.global.Package.BytesConsumed += bytes
	e.global.Package.Posted++
	if metaStatsOnly {
		e.global.Package.MetastatsOnlyPosted++
	}
}

// OnPackageSentSucceeded implements Mutator.
func (e *MetaStatsEngine) OnPackageSentSucceeded(recordIDsByTenant map[string]int, class constants.LatencyClass, retryFailedTimes int, durationMs int64, perRecordLatenciesMs []int64, metaStatsOnly bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.global.Package.Acked++
	e.global.Package.AckedSuccess++
	if metaStatsOnly {
		e.global.Package.MetastatsOnlyAcked++
	}
	e.global.RetriesCountDistribution.Observe(int64(retryFailedTimes))
	e.global.RTT.Observe(durationMs)

	if inClassRange(class) {
		globalClassLatency := e.global.LogToSendLatencyByClass[class]
		for _, latency := range perRecordLatenciesMs {
			globalClassLatency.Observe(latency)
		}
	}

	for tenantToken, count := range recordIDsByTenant {
		if count <= 0 {
			continue
		}
		tenantID := deriveTenantID(tenantToken)
		t, ok := e.tenants[tenantID]
		if !ok {
			continue
		}
		t.Record.Sent += int64(count)
		t.Record.SentCurrentSession += int64(count)
		if !inClassRange(class) {
			continue
		}
		cr := t.RecordByLatency[class]
		cr.Sent += int64(count)
		cr.SentCurrentSession += int64(count)
		classLatency := t.LogToSendLatencyByClass[class]
		for _, latency := range perRecordLatenciesMs {
			classLatency.Observe(latency)
		}
	}
}

// OnPackageFailed implements Mutator.
func (e *MetaStatsEngine) OnPackageFailed(httpStatus int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.global.Package.Acked++
	e.global.Package.AckedDropped++
	e.global.Package.DropByHTTPCode[httpStatus]++
}

// OnPackageRetry implements Mutator.
func (e *MetaStatsEngine) OnPackageRetry(httpStatus int, retryFailedTimes int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.global.Package.Acked++
	e.global.Package.AckedRetry++
	e.global.Package.RetryByHTTPCode[httpStatus]++
	e.global.RetriesCountDistribution.Observe(int64(retryFailedTimes))
}

// OnRecordsDropped implements Mutator.
func (e *MetaStatsEngine) OnRecordsDropped(reason constants.DroppedReason, countsByTenant map[string]int64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for tenantToken, count := range countsByTenant {
		if count <= 0 {
			continue
		}
		tenantID := deriveTenantID(tenantToken)
		t := e.getOrCreateTenant(tenantID)
		t.Record.Dropped += count
		t.Record.DroppedByReason[reason] += count
		e.global.Record.Dropped += count
		e.global.Record.DroppedByReason[reason] += count
	}
}

// OnRecordsOverflown implements Mutator.
func (e *MetaStatsEngine) OnRecordsOverflown(countsByTenant map[string]int64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for tenantToken, count := range countsByTenant {
		if count <= 0 {
			continue
		}
		tenantID := deriveTenantID(tenantToken)
		t := e.getOrCreateTenant(tenantID)
		t.Record.Overflown += count
		e.global.Record.Overflown += count
	}
}

// OnRecordsRejected implements Mutator.
func (e *MetaStatsEngine) OnRecordsRejected(reason constants.RejectedReason, countsByTenant map[string]int64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for tenantToken, count := range countsByTenant {
		if count <= 0 {
			continue
		}
		tenantID := deriveTenantID(tenantToken)
		t := e.getOrCreateTenant(tenantID)
		t.Record.Rejected += count
		t.Record.RejectedByReason[reason] += count
		e.global.Record.Rejected += count
		e.global.Record.RejectedByReason[reason] += count
	}
}

// OnStorageOpened implements Mutator.
func (e *MetaStatsEngine) OnStorageOpened(formatLabel string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.global.Offline.StorageFormat = formatLabel
}

// OnStorageFailed implements Mutator.
func (e *MetaStatsEngine) OnStorageFailed(reason string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.global.Offline.LastFailureReason = reason
}

// HasStatsDataAvailable implements Reader.
func (e *MetaStatsEngine) HasStatsDataAvailable() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hasStatsDataAvailableLocked()
}

func (e *MetaStatsEngine) hasStatsDataAvailableLocked() bool {
	for _, t := range e.tenants {
		if t.TenantID == e.statsTenantID {
			continue
		}
		nonMetaStatsReceived := t.Record.Received - t.Record.ReceivedMetaStats
		if t.Record.Rejected > 0 || t.Record.Banned > 0 || t.Record.Dropped > 0 || nonMetaStatsReceived > 0 {
			return true
		}
	}
	pkg := e.global.Package
	if pkg.Posted > pkg.MetastatsOnlyPosted || pkg.Acked > pkg.MetastatsOnlyAcked {
		return true
	}
	return false
}

// GenerateStatsEvent implements Reader (the rollup state machine, spec §4.3).
func (e *MetaStatsEngine) GenerateStatsEvent(kind constants.RollupKind) []*dto.Record {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := nowMs()
	var records []*dto.Record

	if kind != constants.Ongoing || e.hasStatsDataAvailableLocked() {
		for _, t := range e.tenants {
			records = append(records, e.snapshotRow(t, kind, now))
		}
		if kind != constants.Ongoing {
			records = append(records, e.snapshotRow(e.global, kind, now))
		}
		e.resetAllLocked(kind == constants.Start, now)
	}

	if kind == constants.Stop {
		e.clearAllLocked()
	}

	return records
}
