package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dk-github-acc/metastats-go/conf"
	"github.com/dk-github-acc/metastats-go/constants"
	"github.com/dk-github-acc/metastats-go/metastats"
)

func newTestPipeline(t *testing.T) (*Pipeline, *CollectingSink) {
	t.Helper()
	cfg := conf.Default()
	cfg.MetaStatsTenantToken = "statstenant-abcd1234"
	engine, err := metastats.New(cfg)
	require.NoError(t, err)
	sink := &CollectingSink{}
	return New(engine, nil, sink, nil), sink
}

func TestPipelineIngestAndRollupProducesRecords(t *testing.T) {
	p, sink := newTestPipeline(t)

	p.IngestEvent("tenant-a-key", []byte("hello world"), constants.Normal, false)
	p.Rollup(constants.Start)

	require.Len(t, sink.Records, 2, "expected tenant + global records")
}

func TestPipelineBatchLifecycle(t *testing.T) {
	p, _ := newTestPipeline(t)

	batchID := p.PostBatch(4096, false)
	require.NotEmpty(t, batchID)

	p.AckRetry(503, 1)
	p.AckSuccess(map[string]int{"tenant-a-key": 2}, constants.Normal, 1, 120, []int64{50, 75}, false)

	p.Rollup(constants.Start)
}

func TestPipelineDropAndRejectFanOut(t *testing.T) {
	p, sink := newTestPipeline(t)

	p.DropRecords(constants.DroppedRetryExceeded, map[string]int64{"tenanta-key1": 2})
	p.RejectRecords(constants.RejectedEventExpired, map[string]int64{"tenantb-key2": 1})

	sink.Records = nil
	p.Rollup(constants.Start)

	require.Len(t, sink.Records, 3, "expected two tenants plus global")
}
