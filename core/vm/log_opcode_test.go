package vm

import (
	"testing"

	"github.com/holiman/uint256"

	"github.com/zkaxon/logvm/core/types"
)

func newTestDispatcher(cfg GasPubdataConfig) (*Dispatcher, *InMemoryStorageOracle, *InMemoryEventSink, *SliceMemory, *RecordingWitnessTracer) {
	storage := NewInMemoryStorageOracle(cfg)
	events := NewInMemoryEventSink()
	precompiles := NewDefaultPrecompilesProcessor(true)
	memory := NewSliceMemory()
	tracer := NewRecordingWitnessTracer()
	d := NewDispatcher(cfg, storage, storage, events, precompiles, memory, tracer)
	return d, storage, events, memory, tracer
}

func TestDispatchScenario5PrecompileNotEnoughPower(t *testing.T) {
	cfg := DefaultGasPubdataConfig()
	d, _, _, memory, _ := newTestDispatcher(cfg)

	frame := &CallStackFrame{ThisShardID: RollupShardID, ErgsRemaining: 50}
	state := NewVmState(0, 0, 16)

	pre := PreState{
		Variant:     PrecompileCall,
		Operand0:    uint256.NewInt(0),
		Operand1:    uint256.NewInt(200),
		Destination: DestinationLocation{UsesRegister: true, Register: 0},
	}

	result, err := d.Dispatch(0, pre, frame, state)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if !result.NotEnoughPower {
		t.Fatalf("expected not enough power")
	}
	if frame.ErgsRemaining != 0 {
		t.Fatalf("ergs_remaining = %d, want 0", frame.ErgsRemaining)
	}
	if memory.Register(0).Sign() != 0 {
		t.Fatalf("destination register = %s, want 0", memory.Register(0).Hex())
	}
}

func TestDispatchScenario6PrecompileDefaultsMemoryPages(t *testing.T) {
	cfg := DefaultGasPubdataConfig()
	d, _, _, memory, tracer := newTestDispatcher(cfg)

	frame := &CallStackFrame{ThisShardID: RollupShardID, ErgsRemaining: 10_000, BaseMemoryPage: 7}
	state := NewVmState(0, 0, 16)

	abi := PrecompileCallABI{PrecompileInterpretedData: 0xAB}
	pre := PreState{
		Variant:     PrecompileCall,
		Operand0:    abi.EncodeToUint256(),
		Operand1:    uint256.NewInt(100),
		Destination: DestinationLocation{UsesRegister: true, Register: 2},
	}

	result, err := d.Dispatch(0, pre, frame, state)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if result.NotEnoughPower {
		t.Fatalf("expected enough power")
	}
	if memory.Register(2).Uint64() != 1 {
		t.Fatalf("destination register = %s, want 1", memory.Register(2).Hex())
	}

	emittedABI := DecodePrecompileCallABI(result.Query.Key)
	wantPage := memory.HeapPageFromBase(7)
	if emittedABI.MemoryPageToRead != wantPage || emittedABI.MemoryPageToWrite != wantPage {
		t.Fatalf("memory pages not defaulted: got read=%d write=%d, want %d",
			emittedABI.MemoryPageToRead, emittedABI.MemoryPageToWrite, wantPage)
	}

	if len(tracer.Entries()) != 1 {
		t.Fatalf("witness entries = %d, want 1", len(tracer.Entries()))
	}
}

func TestDispatchStorageWriteEmitsQueryWithWrittenValue(t *testing.T) {
	cfg := GasPubdataConfig{InitialStorageWritePubdataBytes: 5000}
	d, _, _, _, _ := newTestDispatcher(cfg)

	frame := &CallStackFrame{ThisShardID: RollupShardID, ErgsRemaining: 1_000_000, ThisAddress: types.BytesToAddress([]byte{0x1})}
	state := NewVmState(0, 0, 16)

	pre := PreState{
		Variant:  StorageWrite,
		Operand0: uint256.NewInt(7),
		Operand1: uint256.NewInt(42),
	}

	result, err := d.Dispatch(0, pre, frame, state)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if !result.QueryEmitted {
		t.Fatalf("expected a query to be emitted")
	}
	if result.Query.AuxByte != StorageAuxByte {
		t.Fatalf("aux_byte = %v, want STORAGE", result.Query.AuxByte)
	}
	if !result.Query.RwFlag {
		t.Fatalf("rw_flag = false, want true")
	}
	if result.Query.WrittenValue.Uint64() != 42 {
		t.Fatalf("written_value = %s, want 42", result.Query.WrittenValue.Hex())
	}
}

func TestDispatchToL1MessageNotEnoughPowerEmitsNoQuery(t *testing.T) {
	cfg := GasPubdataConfig{L1MessagePubdataBytes: 500}
	d, _, events, memory, _ := newTestDispatcher(cfg)

	frame := &CallStackFrame{ThisShardID: RollupShardID, ErgsRemaining: 1000}
	state := NewVmState(0, 0, 16)

	pre := PreState{
		Variant:     ToL1Message,
		Operand0:    uint256.NewInt(1),
		Operand1:    uint256.NewInt(2),
		Destination: DestinationLocation{UsesRegister: true, Register: 3},
	}

	before := memory.Register(3).Clone()
	result, err := d.Dispatch(0, pre, frame, state)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if !result.NotEnoughPower {
		t.Fatalf("expected not enough power")
	}
	if events.Count() != 0 {
		t.Fatalf("expected no event emitted, got %d", events.Count())
	}
	if memory.Register(3).Cmp(before) != 0 {
		t.Fatalf("destination register was touched on ToL1Message drop path")
	}
}

func TestTimestampSecondCallAfterFirstExactlyOneApart(t *testing.T) {
	state := NewVmState(0, 5, 16)
	first := state.TimestampForFirstDecommitOrPrecompileRead()
	second, err := state.TimestampForSecondDecommitOrPrecompileWrite()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != first+1 {
		t.Fatalf("second timestamp = %d, want %d", second, first+1)
	}

	if _, err := state.TimestampForSecondDecommitOrPrecompileWrite(); err != ErrTimestampReuse {
		t.Fatalf("expected ErrTimestampReuse on repeated call, got %v", err)
	}
}

func TestTimestampFirstIsIdempotentWithinCycle(t *testing.T) {
	state := NewVmState(0, 5, 16)
	a := state.TimestampForFirstDecommitOrPrecompileRead()
	b := state.TimestampForFirstDecommitOrPrecompileRead()
	if a != b {
		t.Fatalf("first timestamp not idempotent: %d != %d", a, b)
	}
}
