package metastats

import (
	"github.com/dk-github-acc/metastats-go/constants"
	"github.com/dk-github-acc/metastats-go/dto"
)

// Mutator is the ingress surface pipeline stages call into (spec §4.2). Every
// method is a total function: no error is returned, and malformed input degrades
// gracefully rather than panicking.
type Mutator interface {
	OnEventIncoming(tenantToken string, sizeBytes int64, class constants.LatencyClass, isMetaStats bool)
	OnPostData(bytes int64, metaStatsOnly bool)
	OnPackageSentSucceeded(recordIDsByTenant map[string]int, class constants.LatencyClass, retryFailedTimes int, durationMs int64, perRecordLatenciesMs []int64, metaStatsOnly bool)
	OnPackageFailed(httpStatus int)
	OnPackageRetry(httpStatus int, retryFailedTimes int)
	OnRecordsDropped(reason constants.DroppedReason, countsByTenant map[string]int64)
	OnRecordsOverflown(countsByTenant map[string]int64)
	OnRecordsRejected(reason constants.RejectedReason, countsByTenant map[string]int64)
	OnStorageOpened(formatLabel string)
	OnStorageFailed(reason string)
}

// Reader is the query surface: the self-exclusion predicate and the rollup
// entry point (spec §4.2/§4.3).
type Reader interface {
	HasStatsDataAvailable() bool
	GenerateStatsEvent(kind constants.RollupKind) []*dto.Record
}

// Engine is the full public contract of the metastats engine.
type Engine interface {
	Mutator
	Reader
}
