package vm

import "github.com/zkaxon/logvm/core/types"

// CallStackFrame is consumed, not owned: the dispatcher re-reads the
// current frame after any collaborator call that may mutate it rather
// than holding a reference across the call (§9 "Cyclic / back-pointer-
// shaped state").
type CallStackFrame struct {
	ThisAddress    types.Address
	ThisShardID    uint8
	ErgsRemaining  uint64
	BaseMemoryPage uint32
}

// IsRollup reports whether this frame's shard posts pubdata (§4.C).
func (f *CallStackFrame) IsRollup() bool {
	return f.ThisShardID == RollupShardID
}

// VmState is the consumed, per-cycle state the dispatcher reads from and
// writes back to. VmState owns both timestamp slots (§9):
// TimestampForFirstDecommitOrPrecompileRead is idempotent within a
// cycle; TimestampForSecondDecommitOrPrecompileWrite may be called at
// most once per cycle and returns ErrTimestampReuse otherwise.
type VmState struct {
	TxNumberInBlock        uint16
	MonotonicCycleCounter  uint64
	CurrentErgsPerPubdataByte uint32
	SpentPubdataCounter    uint64

	// Supplemented chain/block identity (§3 "Supplemented identifiers"),
	// read-only context the dispatcher never branches on.
	ChainID         types.ChainID
	L1Batch         types.L1BatchNumber
	Miniblock       types.MiniblockNumber

	firstTimestamp  uint32
	secondRequested bool
}

// NewVmState constructs a VmState for a fresh cycle. AdvanceCycle must be
// called before the next cycle reuses the struct.
func NewVmState(txNumberInBlock uint16, cycleCounter uint64, ergsPerPubdataByte uint32) *VmState {
	return &VmState{
		TxNumberInBlock:           txNumberInBlock,
		MonotonicCycleCounter:     cycleCounter,
		CurrentErgsPerPubdataByte: ergsPerPubdataByte,
	}
}

// TimestampForFirstDecommitOrPrecompileRead returns this cycle's first
// reserved sub-timestamp. It is derived once per cycle from the
// monotonic cycle counter and is idempotent across repeated calls within
// the same cycle (§5 "Timestamp allocation").
func (s *VmState) TimestampForFirstDecommitOrPrecompileRead() uint32 {
	if s.firstTimestamp == 0 {
		s.firstTimestamp = uint32(s.MonotonicCycleCounter)*2 + 1
	}
	return s.firstTimestamp
}

// TimestampForSecondDecommitOrPrecompileWrite returns the second
// reserved sub-timestamp, always exactly one past the first. It asserts
// (returns an error) if called more than once within a cycle.
func (s *VmState) TimestampForSecondDecommitOrPrecompileWrite() (uint32, error) {
	if s.secondRequested {
		return 0, ErrTimestampReuse
	}
	s.secondRequested = true
	return s.TimestampForFirstDecommitOrPrecompileRead() + 1, nil
}

// AdvanceCycle resets the per-cycle timestamp bookkeeping so the next
// cycle gets a fresh reservation pair.
func (s *VmState) AdvanceCycle() {
	s.MonotonicCycleCounter++
	s.firstTimestamp = 0
	s.secondRequested = false
}
