package metastats

// resetRow applies the reset(start) semantics from spec §4.3 to a single
// TelemetryStats row. Must be called with e.mu held.
func (e *MetaStatsEngine) resetRow(t *TelemetryStats, start bool, now int64) {
	t.StatsStartMs = now
	t.SessionID = e.sessionID

	if start {
		t.StatsSequenceNum = 0
		t.SessionStartMs = t.StatsStartMs

		t.RTT.Init(e.cfg.RTT.FirstValue, e.cfg.RTT.NextFactor, e.cfg.RTT.TotalSpots, true)
		for _, class := range allLatencyClasses() {
			t.LogToSendLatencyByClass[class].Init(e.cfg.Latency.FirstValue, e.cfg.Latency.NextFactor, e.cfg.Latency.TotalSpots, true)
			t.RecordByLatency[class].Init(e.cfg.RecordSize.FirstValue, e.cfg.RecordSize.NextFactor, e.cfg.RecordSize.TotalSpots)
		}
		t.Record.Init(e.cfg.RecordSize.FirstValue, e.cfg.RecordSize.NextFactor, e.cfg.RecordSize.TotalSpots)
		t.RetriesCountDistribution.Init(retryDistFirst, retryDistStep, retryDistTotalSpots, false)
		t.Package.ResetValues()
		if t.OfflineStorageEnabled {
			t.Offline.Init(e.cfg.Offline.SizeHistogram.FirstValue, e.cfg.Offline.SizeHistogram.NextFactor, e.cfg.Offline.SizeHistogram.TotalSpots)
		}
		return
	}

	t.StatsSequenceNum++

	// The ground truth's resetStats() calls recordStats.Reset(), packageStats.Reset(),
	// and each per-latency recordStats.Reset() unconditionally, before branching on
	// start (MetaStats.cpp:290-306) — so scalar counters never survive an Ongoing
	// rollup, only the histogram key sets and configured shape do.
	t.Package.ClearHTTPCodeMaps()
	t.RetriesCountDistribution.ResetValues()
	for _, class := range allLatencyClasses() {
		t.LogToSendLatencyByClass[class].ResetValues()
		t.RecordByLatency[class].ResetValues()
	}
	t.Record.ResetValues()
	t.RTT.ResetValues()
	if t.OfflineStorageEnabled {
		t.Offline.ResetValues()
	}
}

// resetAllLocked resets every tenant row plus the global row. Must be called with
// e.mu held.
func (e *MetaStatsEngine) resetAllLocked(start bool, now int64) {
	for _, t := range e.tenants {
		e.resetRow(t, start, now)
	}
	e.resetRow(e.global, start, now)
}

// clearAllLocked empties the tenant map and every map inside the global row (spec
// §4.3, Stop rollup). Must be called with e.mu held.
func (e *MetaStatsEngine) clearAllLocked() {
	e.tenants = make(map[string]*TelemetryStats)

	e.global.Package.ResetValues()
	e.global.Record.Init(e.cfg.RecordSize.FirstValue, e.cfg.RecordSize.NextFactor, e.cfg.RecordSize.TotalSpots)
	for _, class := range allLatencyClasses() {
		e.global.RecordByLatency[class].Init(e.cfg.RecordSize.FirstValue, e.cfg.RecordSize.NextFactor, e.cfg.RecordSize.TotalSpots)
		e.global.LogToSendLatencyByClass[class].Init(e.cfg.Latency.FirstValue, e.cfg.Latency.NextFactor, e.cfg.Latency.TotalSpots, true)
	}
	e.global.RTT.Init(e.cfg.RTT.FirstValue, e.cfg.RTT.NextFactor, e.cfg.RTT.TotalSpots, true)
	e.global.RetriesCountDistribution.Init(retryDistFirst, retryDistStep, retryDistTotalSpots, false)
	if e.global.OfflineStorageEnabled {
		e.global.Offline.Init(e.cfg.Offline.SizeHistogram.FirstValue, e.cfg.Offline.SizeHistogram.NextFactor, e.cfg.Offline.SizeHistogram.TotalSpots)
	}
}
