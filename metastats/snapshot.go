package metastats

import (
	"math"
	"strconv"

	"github.com/dk-github-acc/metastats-go/constants"
	"github.com/dk-github-acc/metastats-go/dto"
)

var classPrefix = map[constants.LatencyClass]string{
	constants.Normal:       "ln_",
	constants.CostDeferred: "ld_",
	constants.RealTime:     "lr_",
	constants.Max:          "lm_",
}

// snapshotRow projects one TelemetryStats into a Record (spec §4.4). Must be
// called with e.mu held.
func (e *MetaStatsEngine) snapshotRow(t *TelemetryStats, kind constants.RollupKind, now int64) *dto.Record {
	rec := dto.NewRecord("o:" + t.TenantID)

	rec.Set("act_stats_id", t.SessionID)
	rec.Set("s_stime", i64(t.SessionStartMs))
	rec.Set("stats_stime", i64(t.StatsStartMs))
	rec.Set("stats_etime", i64(now))
	rec.Set("s_Firststime", nonZero(t.SessionStartupMs))
	rec.Set("stats_rollup_kind", kind.String())
	rec.Set("st_freq", i64(e.cfg.MetaStatsSendIntervalSec))

	rec.Set("off_type", t.Offline.StorageFormat)
	rec.Set("off_last_failure", t.Offline.LastFailureReason)
	if t.OfflineStorageEnabled {
		rec.Set("config_off_size", t.Offline.SaveSizeHistogram.Serialize(true))
	}

	snapshotPackage(rec, t.Package)
	rec.Set("rqs_fail_on_HTTP_retries_count_distribution", t.RetriesCountDistribution.Serialize(false))
	snapshotRTT(rec, t.RTT)
	snapshotRecordStats(rec, "", t.Record)

	for _, class := range allLatencyClasses() {
		prefix := classPrefix[class]
		snapshotRecordStats(rec, prefix, t.RecordByLatency[class])
		snapshotClassLatency(rec, prefix, t.LogToSendLatencyByClass[class])
	}

	return rec
}

func i64(v int64) string { return strconv.FormatInt(v, 10) }

func nonZero(v int64) string {
	if v == 0 {
		return ""
	}
	return i64(v)
}

func snapshotPackage(rec *dto.Record, p *PackageStats) {
	rec.Set("rqs_to_be_acked", nonZero(p.Posted))
	rec.Set("rqs_acked", nonZero(p.Acked))
	rec.Set("rqs_acked_succ", nonZero(p.AckedSuccess))
	rec.Set("rqs_acked_ret", nonZero(p.AckedRetry))
	rec.Set("rqs_acked_drp", nonZero(p.AckedDropped))
	rec.Set("rm_bw_bytes_consumed_count", nonZero(p.BytesConsumed))

	for code, count := range p.RetryByHTTPCode {
		rec.Set("rqs_acked_ret_on_HTTP_"+strconv.Itoa(code), nonZero(count))
	}
	for code, count := range p.DropByHTTPCode {
		rec.Set("rqs_acked_drp_on_HTTP_"+strconv.Itoa(code), nonZero(count))
	}
}

func snapshotRTT(rec *dto.Record, rtt *LatencyStats) {
	if rtt.Empty() {
		return
	}
	rec.Set("rtt_millisec_max", i64(rtt.Max))
	rec.Set("rtt_millisec_min", i64(rtt.Min))
	rec.Set("rtt_millisec_distribution", rtt.Dist.Serialize(true))
}

// snapshotRecordStats writes the record-level fields common to the global block
// (prefix "") and each per-priority block (prefix "ln_"/"ld_"/"lr_"/"lm_"). Only
// the global block gets the extended fields (per-HTTP-code drop maps, rejection
// reason breakdown, per-event-type maps, the size-in-bytes min/max, and the
// KiB-bucketed size distribution) — the per-priority blocks in the ground truth
// stop at the same handful of counters plus the received-size total.
func snapshotRecordStats(rec *dto.Record, prefix string, r *RecordStats) {
	rec.Set(prefix+"r_ban", nonZero(r.Banned))
	rec.Set(prefix+"rcv", nonZero(r.Received))
	rec.Set(prefix+"snt", nonZero(r.Sent))
	rec.Set(prefix+"rcds_sent_curr_session", nonZero(r.SentCurrentSession))
	rec.Set(prefix+"rcds_sent_prev_session", nonZero(r.SentPreviousSession))
	rec.Set(prefix+"rej", nonZero(r.Rejected))
	rec.Set(prefix+"drp", nonZero(r.Dropped))
	rec.Set(prefix+"d_disk_full", nonZero(r.Overflown))
	if r.Received > 0 {
		rec.Set(prefix+"rcds_received_size_bytes", nonZero(r.TotalBytes))
	}

	if prefix != "" {
		return
	}

	rec.Set("d_io_fail", nonZero(r.DroppedByReason[constants.DroppedOfflineStorageSaveFailed]))
	rec.Set("d_retry_lmt", nonZero(r.DroppedByReason[constants.DroppedRetryExceeded]))

	for code, count := range r.DroppedByHTTPCode {
		rec.Set("rcds_drp_on_HTTP_"+strconv.Itoa(code), nonZero(count))
	}

	snapshotRejectedReasons(rec, "", r.RejectedByReason)

	for eventType, count := range r.CountByEventType {
		rec.Set("rcds_per_eventtype_count_"+eventType, nonZero(count))
	}
	for eventType, count := range r.ExceptionsByEventType {
		rec.Set("exceptions_per_eventtype_count_"+eventType, nonZero(count))
	}

	if r.MinSizeBytes != math.MaxInt64 {
		rec.Set("rcd_size_bytes_min", i64(r.MinSizeBytes))
	}
	if r.MaxSizeBytes != 0 {
		rec.Set("rcd_size_bytes_max", i64(r.MaxSizeBytes))
	}
	rec.Set("rcd_size_kb_distribution", r.SizeKiB.Serialize(true))
}

// snapshotRejectedReasons packs the fine-grained rejection reasons into the
// output's small key set (spec §4.4): every "invalid"-family reason sums into
// r_inv, the rest map one-to-one.
func snapshotRejectedReasons(rec *dto.Record, prefix string, byReason map[constants.RejectedReason]int64) {
	var invalidSum int64
	for _, reason := range []constants.RejectedReason{
		constants.RejectedInvalidClientMessageType,
		constants.RejectedRequiredArgumentMissing,
		constants.RejectedEventNameMissing,
		constants.RejectedValidationFailed,
		constants.RejectedOldRecordVersion,
	} {
		invalidSum += byReason[reason]
	}
	rec.Set(prefix+"r_inv", nonZero(invalidSum))
	rec.Set(prefix+"r_exp", nonZero(byReason[constants.RejectedEventExpired]))
	rec.Set(prefix+"r_403", nonZero(byReason[constants.RejectedServerDeclined]))
	rec.Set(prefix+"r_kl", nonZero(byReason[constants.RejectedTenantKilled]))
	rec.Set(prefix+"r_size", nonZero(byReason[constants.RejectedEventSizeLimitExceeded]))
}

func snapshotClassLatency(rec *dto.Record, prefix string, l *LatencyStats) {
	if l.Empty() {
		return
	}
	rec.Set(prefix+"log_to_send_latency_millisec_max", i64(l.Max))
	rec.Set(prefix+"log_to_send_latency_millisec_min", i64(l.Min))
	rec.Set(prefix+"log_to_send_latency_millisec_distribution", l.Dist.Serialize(true))
}
