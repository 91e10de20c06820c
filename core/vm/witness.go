package vm

// WitnessEntry is one captured collaborator operation, mirroring the
// reference VM's StructLogEntry deep-copy-on-capture pattern: each field
// is captured by value at trace time so later mutation of the live
// query can't retroactively change a recorded witness entry.
type WitnessEntry struct {
	Cycle  uint64
	Kind   string
	Query  LogQuery
	Result *PrecompileResult
}

// RecordingWitnessTracer is the reference WitnessTracer collaborator: it
// appends a WitnessEntry for every storage/event/precompile operation,
// in call order, for the cmd/logvm harness and for tests to assert
// against.
type RecordingWitnessTracer struct {
	entries []WitnessEntry
}

// NewRecordingWitnessTracer returns an empty tracer.
func NewRecordingWitnessTracer() *RecordingWitnessTracer {
	return &RecordingWitnessTracer{}
}

func (t *RecordingWitnessTracer) TraceStorage(cycle uint64, query LogQuery) {
	t.entries = append(t.entries, WitnessEntry{Cycle: cycle, Kind: "storage", Query: query})
}

func (t *RecordingWitnessTracer) TraceEvent(cycle uint64, query LogQuery) {
	t.entries = append(t.entries, WitnessEntry{Cycle: cycle, Kind: "event", Query: query})
}

func (t *RecordingWitnessTracer) TracePrecompile(cycle uint64, query LogQuery, result PrecompileResult) {
	r := result
	t.entries = append(t.entries, WitnessEntry{Cycle: cycle, Kind: "precompile", Query: query, Result: &r})
}

// Entries returns every captured entry, in order.
func (t *RecordingWitnessTracer) Entries() []WitnessEntry {
	return t.entries
}
