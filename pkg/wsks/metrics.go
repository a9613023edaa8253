package wsks

// Metrics is the pluggable, measurement-only counters struct required by
// §9 of the specification: global counters (subsumption-cache hits,
// continuation unfoldings, fixpoint steps, ...) must never affect the
// semantics of the core, so they live behind this interface rather than as
// package-level globals. Modeled on the teacher's SolverMetrics, which plays
// the same role for its constraint solvers; unlike SolverMetrics this one
// carries no mutex, since the engine is single-threaded by spec (§5).
type Metrics interface {
	// IncSubsumedByHits counts a positive result from a fixpoint subsumption
	// test hitting its cache.
	IncSubsumedByHits()
	// IncSubsumptionCacheHit/Miss count is_subsumed cache lookups.
	IncSubsumptionCacheHit()
	IncSubsumptionCacheMiss()
	// IncIntersectCacheHit/Miss count intersect_nonempty memo lookups.
	IncIntersectCacheHit()
	IncIntersectCacheMiss()
	// IncContinuationUnfolding counts a CONTINUATION being unfolded.
	IncContinuationUnfolding()
	// IncFixpointStep counts one compute_next_fixpoint / compute_next_pre
	// iteration.
	IncFixpointStep()
	// IncSubsumptionResult counts a subsumption verdict by kind (NO/YES/PARTIAL).
	IncSubsumptionResult(result SubsumeResult)
	// IncWorkshopHit/Miss count hash-consing cache lookups in the Workshop.
	IncWorkshopHit()
	IncWorkshopMiss()
	// Snapshot returns a point-in-time copy of all counters for reporting.
	Snapshot() MetricsSnapshot
}

// MetricsSnapshot is an immutable, independently readable copy of counter
// values, suitable for a --stats style report.
type MetricsSnapshot struct {
	SubsumedByHits         int64
	SubsumptionCacheHits   int64
	SubsumptionCacheMisses int64
	IntersectCacheHits     int64
	IntersectCacheMisses   int64
	ContinuationUnfoldings int64
	FixpointSteps          int64
	SubsumptionNO          int64
	SubsumptionYES         int64
	SubsumptionPARTIAL     int64
	WorkshopHits           int64
	WorkshopMisses         int64
}

// counterMetrics is the default in-memory Metrics implementation. It is the
// zero-value behavior when a driver does not supply its own sink.
type counterMetrics struct {
	snap MetricsSnapshot
}

// NewMetrics returns the default in-memory Metrics sink.
func NewMetrics() Metrics {
	return &counterMetrics{}
}

func (m *counterMetrics) IncSubsumedByHits()        { m.snap.SubsumedByHits++ }
func (m *counterMetrics) IncSubsumptionCacheHit()   { m.snap.SubsumptionCacheHits++ }
func (m *counterMetrics) IncSubsumptionCacheMiss()  { m.snap.SubsumptionCacheMisses++ }
func (m *counterMetrics) IncIntersectCacheHit()     { m.snap.IntersectCacheHits++ }
func (m *counterMetrics) IncIntersectCacheMiss()    { m.snap.IntersectCacheMisses++ }
func (m *counterMetrics) IncContinuationUnfolding() { m.snap.ContinuationUnfoldings++ }
func (m *counterMetrics) IncFixpointStep()          { m.snap.FixpointSteps++ }
func (m *counterMetrics) IncWorkshopHit()           { m.snap.WorkshopHits++ }
func (m *counterMetrics) IncWorkshopMiss()          { m.snap.WorkshopMisses++ }

func (m *counterMetrics) IncSubsumptionResult(result SubsumeResult) {
	switch result {
	case SubsumeNO:
		m.snap.SubsumptionNO++
	case SubsumeYES:
		m.snap.SubsumptionYES++
	case SubsumePARTIAL:
		m.snap.SubsumptionPARTIAL++
	}
}

func (m *counterMetrics) Snapshot() MetricsSnapshot {
	return m.snap
}

// noopMetrics discards every counter; used when a caller has no interest in
// measurement overhead at all.
type noopMetrics struct{}

// NewNoopMetrics returns a Metrics sink that discards every update.
func NewNoopMetrics() Metrics { return noopMetrics{} }

func (noopMetrics) IncSubsumedByHits()                       {}
func (noopMetrics) IncSubsumptionCacheHit()                  {}
func (noopMetrics) IncSubsumptionCacheMiss()                 {}
func (noopMetrics) IncIntersectCacheHit()                    {}
func (noopMetrics) IncIntersectCacheMiss()                   {}
func (noopMetrics) IncContinuationUnfolding()                {}
func (noopMetrics) IncFixpointStep()                         {}
func (noopMetrics) IncWorkshopHit()                          {}
func (noopMetrics) IncWorkshopMiss()                         {}
func (noopMetrics) IncSubsumptionResult(result SubsumeResult) {}
func (noopMetrics) Snapshot() MetricsSnapshot                { return MetricsSnapshot{} }
