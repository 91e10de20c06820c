// Package vm implements the log/interaction opcode dispatcher: the
// zkVM's sole interface to storage, events, L1 messages, and
// precompiled cryptographic functions.
package vm

import (
	"github.com/holiman/uint256"

	"github.com/zkaxon/logvm/internal/logging"
)

// LogOpcodeVariant distinguishes the five log-opcode shapes the
// dispatcher handles (§2 "Control flow per cycle").
type LogOpcodeVariant uint8

const (
	StorageRead LogOpcodeVariant = iota
	StorageWrite
	Event
	ToL1Message
	PrecompileCall
)

func (v LogOpcodeVariant) String() string {
	switch v {
	case StorageRead:
		return "StorageRead"
	case StorageWrite:
		return "StorageWrite"
	case Event:
		return "Event"
	case ToL1Message:
		return "ToL1Message"
	case PrecompileCall:
		return "PrecompileCall"
	default:
		return "Unknown"
	}
}

// PreState is the snapshot the outer fetch-decode loop hands the
// dispatcher at cycle entry: source operands, destination location, and
// the next program counter.
type PreState struct {
	Variant         LogOpcodeVariant
	Operand0        *uint256.Int
	Operand1        *uint256.Int
	Destination     DestinationLocation
	NewPC           uint64
	IsFirstMessage  bool
}

// DispatchResult reports what happened on a single cycle, for the
// caller's own bookkeeping and for the testable properties in §8.
type DispatchResult struct {
	NotEnoughPower bool
	ErgsOnPubdata  uint64
	QueryEmitted   bool
	Query          LogQuery
}

// Dispatcher is the log-opcode execution step. It holds no cross-cycle
// mutable state of its own beyond its collaborators; CallStackFrame and
// VmState are passed in and mutated per cycle, consistent with §9
// "polymorphism over collaborators" and "cyclic / back-pointer-shaped
// state."
type Dispatcher struct {
	accountant   *GasPubdataAccountant
	storage      Storage
	refundOracle RefundOracle
	eventSink    EventSink
	precompiles  PrecompilesProcessor
	memory       Memory
	tracer       WitnessTracer
	log          *logging.Logger
}

// NewDispatcher wires a Dispatcher over its five collaborators and a
// gas/pubdata config.
func NewDispatcher(
	cfg GasPubdataConfig,
	storage Storage,
	refundOracle RefundOracle,
	eventSink EventSink,
	precompiles PrecompilesProcessor,
	memory Memory,
	tracer WitnessTracer,
) *Dispatcher {
	return &Dispatcher{
		accountant:   NewGasPubdataAccountant(cfg),
		storage:      storage,
		refundOracle: refundOracle,
		eventSink:    eventSink,
		precompiles:  precompiles,
		memory:       memory,
		tracer:       tracer,
		log:          logging.Default().Module("dispatcher"),
	}
}

// NewDispatcherWithDefaults builds a Dispatcher using the protocol's
// published gas/pubdata constants.
func NewDispatcherWithDefaults(
	storage Storage,
	refundOracle RefundOracle,
	eventSink EventSink,
	precompiles PrecompilesProcessor,
	memory Memory,
	tracer WitnessTracer,
) *Dispatcher {
	return NewDispatcher(DefaultGasPubdataConfig(), storage, refundOracle, eventSink, precompiles, memory, tracer)
}

// Dispatch executes one log-opcode cycle against frame and state,
// following the state machine in §4 "State machine (per log-opcode
// cycle)": ADVANCE_PC, COMPUTE_COST, then either EXECUTE_VARIANT or
// APPLY_FAILURE_POLICY.
//
// The returned error is always either nil or a *FatalError; a non-nil
// error means the VM must abort (§7.2) and DispatchResult must be
// ignored.
func (d *Dispatcher) Dispatch(cycle uint64, pre PreState, frame *CallStackFrame, state *VmState) (DispatchResult, error) {
	// 1. ADVANCE_PC: owned by the outer fetch-decode loop in a real VM;
	// here we only observe that it has already happened via pre.NewPC.
	_ = pre.NewPC

	timestamp := state.TimestampForFirstDecommitOrPrecompileRead()
	ergsAvailable := frame.ErgsRemaining

	partialQuery := d.buildPartialQuery(pre, frame, state, timestamp)

	result, fatal := d.accountant.Account(cycle, pre.Variant, pre.Operand1.Uint64(), d.refundOracle, &partialQuery, frame, state)
	if fatal != nil {
		d.log.Error("fatal invariant violation", "cycle", cycle, "variant", pre.Variant.String(), "reason", fatal.Reason)
		return DispatchResult{}, fatal
	}

	if result.NotEnoughPower {
		d.log.Warn("not enough power", "cycle", cycle, "variant", pre.Variant.String(), "ergs_available", ergsAvailable, "ergs_on_pubdata", result.ErgsOnPubdata)
	} else {
		d.log.Debug("dispatch", "cycle", cycle, "variant", pre.Variant.String(), "ergs_on_pubdata", result.ErgsOnPubdata)
	}

	switch pre.Variant {
	case StorageRead:
		return d.dispatchStorageRead(cycle, pre, frame, state, partialQuery, result)
	case StorageWrite:
		return d.dispatchStorageWrite(cycle, pre, frame, state, partialQuery, result)
	case Event:
		return d.dispatchEvent(cycle, pre, frame, state, partialQuery, result)
	case ToL1Message:
		return d.dispatchToL1Message(cycle, pre, frame, state, partialQuery, result)
	case PrecompileCall:
		return d.dispatchPrecompileCall(cycle, pre, frame, state, partialQuery, result)
	default:
		return DispatchResult{}, newFatalError(ErrUnreachableVariant, cycle, pre.Variant)
	}
}

// buildPartialQuery forms the speculative query template shared by every
// variant: timestamp, tx_number_in_block, shard_id, and address are
// always copied from the current frame/state, regardless of which
// variant ultimately consumes it (§9 "speculative-then-commit gas path").
func (d *Dispatcher) buildPartialQuery(pre PreState, frame *CallStackFrame, state *VmState, timestamp uint32) LogQuery {
	q := emptyLogQuery()
	q.Timestamp = timestamp
	q.TxNumberInBlock = state.TxNumberInBlock
	q.ShardID = frame.ThisShardID
	q.Address = frame.ThisAddress
	q.IsService = pre.IsFirstMessage
	return q
}
