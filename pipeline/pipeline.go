// Package pipeline is a small demonstration harness for wiring a metastats.Engine
// into a telemetry pipeline. Following the source's route-sink pattern (spec §9),
// the pipeline holds a metastats.Engine and calls its mutator methods directly —
// no event bus, no listener registration.
package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/dk-github-acc/metastats-go/constants"
	"github.com/dk-github-acc/metastats-go/dto"
	"github.com/dk-github-acc/metastats-go/logging"
	"github.com/dk-github-acc/metastats-go/metastats"
	"github.com/dk-github-acc/metastats-go/storage"
)

// Sink receives the records a rollup produces. Record emission happens outside the
// engine's lock (spec §5); Pipeline calls Sink after GenerateStatsEvent returns.
type Sink interface {
	Emit(records []*dto.Record)
}

// Pipeline routes ingress events and transport outcomes into a metastats.Engine,
// and forwards spilled batches to an offline-storage collaborator.
type Pipeline struct {
	engine  metastats.Engine
	offline *storage.OfflineStore
	sink    Sink
	logger  logging.LoggerInterface
}

// New builds a Pipeline. offline may be nil if offline storage is disabled.
func New(engine metastats.Engine, offline *storage.OfflineStore, sink Sink, logger logging.LoggerInterface) *Pipeline {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Pipeline{engine: engine, offline: offline, sink: sink, logger: logger}
}

// IngestEvent reports one application event received from tenantToken. isMetaStats
// should be true only for the engine's own synthetic act_stats events, so they
// don't feed back into the counters they're describing.
func (p *Pipeline) IngestEvent(tenantToken string, payload []byte, class constants.LatencyClass, isMetaStats bool) {
	p.engine.OnEventIncoming(tenantToken, int64(len(payload)), class, isMetaStats)
}

// PostBatch reports a batch handed to the transport. It returns a batch id (a
// fresh UUID) the caller can use to correlate the later Ack*/Retry call and, if
// offline storage is enabled, to spill the batch before the transport call.
func (p *Pipeline) PostBatch(totalBytes int64, metaStatsOnly bool) string {
	p.engine.OnPostData(totalBytes, metaStatsOnly)
	return uuid.NewString()
}

// SpillBatch saves batch to the offline-storage collaborator under batchID. A
// no-op if offline storage wasn't configured.
func (p *Pipeline) SpillBatch(ctx context.Context, batchID string, batch []byte) error {
	if p.offline == nil {
		return nil
	}
	return p.offline.Save(ctx, batchID, batch)
}

// AckSuccess reports that the batch was accepted by the collection endpoint.
func (p *Pipeline) AckSuccess(recordIDsByTenant map[string]int, class constants.LatencyClass, retryFailedTimes int, durationMs int64, perRecordLatenciesMs []int64, metaStatsOnly bool) {
	p.engine.OnPackageSentSucceeded(recordIDsByTenant, class, retryFailedTimes, durationMs, perRecordLatenciesMs, metaStatsOnly)
}

// AckFailed reports that the collection endpoint rejected the batch outright.
func (p *Pipeline) AckFailed(httpStatus int) {
	p.engine.OnPackageFailed(httpStatus)
}

// AckRetry reports a transient failure that will be retried.
func (p *Pipeline) AckRetry(httpStatus, retryFailedTimes int) {
	p.engine.OnPackageRetry(httpStatus, retryFailedTimes)
}

// DropRecords reports records dropped before ever reaching the transport.
func (p *Pipeline) DropRecords(reason constants.DroppedReason, countsByTenant map[string]int64) {
	p.engine.OnRecordsDropped(reason, countsByTenant)
}

// OverflowRecords reports records discarded because a local queue was full.
func (p *Pipeline) OverflowRecords(countsByTenant map[string]int64) {
	p.engine.OnRecordsOverflown(countsByTenant)
}

// RejectRecords reports records the collection endpoint refused to accept.
func (p *Pipeline) RejectRecords(reason constants.RejectedReason, countsByTenant map[string]int64) {
	p.engine.OnRecordsRejected(reason, countsByTenant)
}

// OpenOfflineStorage opens the offline-storage collaborator and mirrors the
// outcome into the engine. A no-op if offline storage wasn't configured.
func (p *Pipeline) OpenOfflineStorage(ctx context.Context) error {
	if p.offline == nil {
		return nil
	}
	return p.offline.Open(ctx)
}

// Rollup runs one rollup tick and forwards any produced records to the sink.
func (p *Pipeline) Rollup(kind constants.RollupKind) {
	records := p.engine.GenerateStatsEvent(kind)
	if len(records) == 0 || p.sink == nil {
		return
	}
	p.sink.Emit(records)
}
