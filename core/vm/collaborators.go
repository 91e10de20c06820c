package vm

import "github.com/holiman/uint256"

// Storage, Memory, EventSink, PrecompilesProcessor, and WitnessTracer are
// independent capabilities (§9 "Polymorphism over collaborators"). The
// dispatcher is generic over all five rather than depending on a single
// god-object.

// Storage is the collaborator that services storage reads and writes.
type Storage interface {
	// AccessStorage fills ReadValue for a read, or commits a write and
	// returns the query for witness recording. Must be deterministic
	// given the oracle's current state.
	AccessStorage(cycle uint64, query LogQuery) (LogQuery, error)
}

// RefundOracle answers the speculative pubdata-refund query a storage
// write must form before its real access (§4.C, §9 "speculative-then-commit").
type RefundOracle interface {
	RefundForPartialQuery(cycle uint64, partial *LogQuery) PubdataRefund
}

// PubdataRefund exposes the refund amount an oracle computed for a
// partial storage-write query.
type PubdataRefund interface {
	PubdataRefundBytes() uint32
}

// EventSink is an append-only collaborator for Event and ToL1Message
// queries.
type EventSink interface {
	EmitEvent(cycle uint64, query LogQuery)
}

// PrecompileResult carries the reads/writes/witness a precompile
// processor produced, only meaningful when Ok is true.
type PrecompileResult struct {
	Reads   []MemoryQuery
	Writes  []MemoryQuery
	Witness any
	Ok      bool
}

// PrecompilesProcessor dispatches a precompile-class LogQuery to the
// round function its low-16-bit address tag selects. It must succeed
// silently for unrecognized tags (§4.F) rather than erroring.
type PrecompilesProcessor interface {
	ExecutePrecompile(cycle uint64, query LogQuery, memory Memory) PrecompileResult
}

// Memory is the destination-update and paged-storage surface the
// dispatcher and precompile processor write through.
type Memory interface {
	// PerformDst0Update writes a PrimitiveValue-shaped value to the
	// destination location named by a cycle's PreState.
	PerformDst0Update(cycle uint64, value *uint256.Int, isPointer bool, location DestinationLocation)
	// HeapPageFromBase derives the heap page for a call frame's
	// base memory page, used to default zeroed precompile memory pages.
	HeapPageFromBase(basePage uint32) uint32
	// ReadRange and WriteRange give the precompile processor the raw
	// byte access it needs to run keccak/sha256/ecrecover over a
	// caller-supplied input region and write the result back.
	ReadRange(page, offset, length uint32) []byte
	WriteRange(page, offset uint32, data []byte)
}

// DestinationLocation identifies where a dst0 update is written: a
// register slot or a memory page index, depending on the opcode's
// PreState.
type DestinationLocation struct {
	Register     uint8
	UsesRegister bool
	Page         uint32
	Index        uint32
}

// WitnessTracer records every collaborator operation for downstream
// proving. It is implicit on all of the interfaces above (§6.1): the
// Dispatcher calls it directly after each collaborator call rather than
// threading a sixth parameter through every call.
type WitnessTracer interface {
	TraceStorage(cycle uint64, query LogQuery)
	TraceEvent(cycle uint64, query LogQuery)
	TracePrecompile(cycle uint64, query LogQuery, result PrecompileResult)
}
