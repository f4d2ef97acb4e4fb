package metastats

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dk-github-acc/metastats-go/conf"
	"github.com/dk-github-acc/metastats-go/constants"
	"github.com/dk-github-acc/metastats-go/dto"
)

func newTestEngine(t *testing.T) *MetaStatsEngine {
	t.Helper()
	cfg := conf.Default()
	cfg.MetaStatsTenantToken = "statstenantprefix-abcd1234"
	e, err := New(cfg)
	require.NoError(t, err)
	return e
}

func recordByIKey(t *testing.T, records []*dto.Record, ikey string) *dto.Record {
	t.Helper()
	for _, r := range records {
		if r.IKey == ikey {
			return r
		}
	}
	require.Failf(t, "record not found", "no record with iKey %q among %d records", ikey, len(records))
	return nil
}

func prop(rec *dto.Record, key string) string {
	return rec.Data[0].Properties[key].StringValue
}

func TestHasStatsDataAvailableFalseAtConstruction(t *testing.T) {
	e := newTestEngine(t)
	require.False(t, e.HasStatsDataAvailable())
}

// Scenario 1 (spec §8): a single non-metastats event, then a Start rollup.
func TestScenarioEventIncomingThenStart(t *testing.T) {
	e := newTestEngine(t)
	e.OnEventIncoming("abc-def", 500, constants.Normal, false)

	records := e.GenerateStatsEvent(constants.Start)
	require.Len(t, records, 2)

	tenant := recordByIKey(t, records, "o:abc")
	require.Equal(t, "1", prop(tenant, "rcv"))
	require.Equal(t, "1", prop(tenant, "ln_rcv"))
	require.Equal(t, "500", prop(tenant, "rcds_received_size_bytes"))

	recordByIKey(t, records, "o:statstenantprefix")
}

// Scenario 2: metastats-only traffic never trips the self-exclusion gate.
func TestScenarioMetaStatsOnlyTrafficSuppressesOngoing(t *testing.T) {
	e := newTestEngine(t)
	e.OnPostData(2048, true)

	records := e.GenerateStatsEvent(constants.Ongoing)
	require.Empty(t, records)
	require.False(t, e.HasStatsDataAvailable())
}

// Scenario 3: two retries at the same HTTP code accumulate into both the
// distribution and the per-code counter.
func TestScenarioPackageRetryAccumulates(t *testing.T) {
	e := newTestEngine(t)
	e.OnPackageRetry(503, 2)
	e.OnPackageRetry(503, 2)

	// A Start rollup always includes the global row; an Ongoing rollup emits only
	// tenant rows, never the global row.
	records := e.GenerateStatsEvent(constants.Start)
	global := recordByIKey(t, records, "o:statstenantprefix")

	require.Equal(t, "2", prop(global, "rqs_acked_ret_on_HTTP_503"))
	require.Contains(t, prop(global, "rqs_fail_on_HTTP_retries_count_distribution"), ",2:2,")
}

// Scenario 4: dropped records fan out to tenant rows and sum into the global row.
func TestScenarioRecordsDroppedFanOut(t *testing.T) {
	e := newTestEngine(t)
	e.OnRecordsDropped(constants.DroppedRetryExceeded, map[string]int64{
		"t1-x": 3,
		"t2-y": 1,
	})

	records := e.GenerateStatsEvent(constants.Start)

	global := recordByIKey(t, records, "o:statstenantprefix")
	require.Equal(t, "4", prop(global, "drp"))
	require.Equal(t, "4", prop(global, "d_retry_lmt"))

	t1 := recordByIKey(t, records, "o:t1")
	require.Equal(t, "3", prop(t1, "drp"))
	t2 := recordByIKey(t, records, "o:t2")
	require.Equal(t, "1", prop(t2, "drp"))
}

// Scenario 6: after a Stop, a fresh Start reuses the engine's session id and
// starts the sequence number back at zero.
func TestScenarioStopThenStartReusesSessionID(t *testing.T) {
	e := newTestEngine(t)
	e.OnEventIncoming("abc-def", 100, constants.Normal, false)
	e.GenerateStatsEvent(constants.Stop)

	sessionBefore := e.sessionID

	e.OnEventIncoming("abc-def", 100, constants.Normal, false)
	records := e.GenerateStatsEvent(constants.Start)

	tenant := recordByIKey(t, records, "o:abc")
	require.Equal(t, sessionBefore, prop(tenant, "act_stats_id"))
	require.Zero(t, e.tenants["abc"].StatsSequenceNum)
}

func TestGenerateStatsEventStartZeroesTenantCounters(t *testing.T) {
	e := newTestEngine(t)
	e.OnEventIncoming("abc-def", 100, constants.Normal, false)
	e.GenerateStatsEvent(constants.Start)

	tenant := e.tenants["abc"]
	require.Zero(t, tenant.Record.Received)
	require.Zero(t, tenant.StatsSequenceNum)
}

func TestGenerateStatsEventStopClearsTenantMap(t *testing.T) {
	e := newTestEngine(t)
	e.OnEventIncoming("abc-def", 100, constants.Normal, false)
	e.GenerateStatsEvent(constants.Stop)

	require.Empty(t, e.tenants)
	require.False(t, e.HasStatsDataAvailable())
	require.Empty(t, e.global.Package.RetryByHTTPCode)
}

func TestOngoingRollupZeroesCountersButKeepsHistogramKeys(t *testing.T) {
	e := newTestEngine(t)
	e.OnEventIncoming("abc-def", 100, constants.Normal, false)
	e.OnPackageRetry(503, 1)

	before := e.tenants["abc"].Record.SizeKiB.Keys()

	e.GenerateStatsEvent(constants.Ongoing)

	tenant := e.tenants["abc"]
	require.Zero(t, tenant.Record.Received, "scalar counters are zeroed on an Ongoing rollup")
	require.Equal(t, before, tenant.Record.SizeKiB.Keys(), "histogram key set survives an Ongoing rollup")
	require.Empty(t, e.global.Package.RetryByHTTPCode, "HTTP-code maps clear on Ongoing")
	require.Zero(t, e.global.Package.AckedRetry, "package counters are zeroed on an Ongoing rollup")
	require.EqualValues(t, 1, e.global.StatsSequenceNum)
}
