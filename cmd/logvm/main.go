// Command logvm replays a small hardcoded log-opcode cycle sequence
// against the reference in-memory collaborators and prints the
// resulting gas/pubdata ledger. It exists to give the module a runnable
// entry point; it is not part of the protocol surface.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/holiman/uint256"

	"github.com/zkaxon/logvm/core/types"
	"github.com/zkaxon/logvm/core/vm"
	"github.com/zkaxon/logvm/internal/logging"
)

func main() {
	textLog := flag.Bool("text-log", false, "use the text formatter instead of JSON for stderr logging")
	flag.Parse()

	if *textLog {
		logging.SetDefault(logging.NewWithFormatter(slog.LevelInfo, &logging.TextFormatter{}))
	}

	cfg := vm.DefaultGasPubdataConfig()
	storage := vm.NewInMemoryStorageOracle(cfg)
	events := vm.NewInMemoryEventSink()
	precompiles := vm.NewDefaultPrecompilesProcessor(true)
	memory := vm.NewSliceMemory()
	tracer := vm.NewRecordingWitnessTracer()

	dispatcher := vm.NewDispatcher(cfg, storage, storage, events, precompiles, memory, tracer)

	frames := vm.NewCallStackFrameStack(1024)
	root := &vm.CallStackFrame{
		ThisAddress:    types.BytesToAddress([]byte{0x42}),
		ThisShardID:    vm.RollupShardID,
		ErgsRemaining:  1_000_000,
		BaseMemoryPage: 7,
	}
	if err := frames.Push(root); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
	state := vm.NewVmState(0, 0, 16)

	cycles := []vm.PreState{
		{
			Variant:     vm.StorageWrite,
			Operand0:    uint256.NewInt(7),
			Operand1:    uint256.NewInt(42),
			Destination: vm.DestinationLocation{UsesRegister: true, Register: 0},
		},
		{
			Variant:     vm.StorageRead,
			Operand0:    uint256.NewInt(7),
			Operand1:    uint256.NewInt(0),
			Destination: vm.DestinationLocation{UsesRegister: true, Register: 1},
		},
	}

	for i, pre := range cycles {
		cycle := uint64(i)
		active := frames.Current()
		result, err := dispatcher.Dispatch(cycle, pre, active, state)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("cycle=%d variant=%s ergs_remaining=%d spent_pubdata=%d not_enough_power=%v\n",
			cycle, pre.Variant, active.ErgsRemaining, state.SpentPubdataCounter, result.NotEnoughPower)
		state.AdvanceCycle()
	}

	// Enter a nested frame carrying 63/64 of the caller's remaining ergs,
	// the way a CALL-like opcode would before issuing a PrecompileCall on
	// the callee's behalf.
	caller := frames.Current()
	forwarded := vm.ForwardErgs(caller.ErgsRemaining, caller.ErgsRemaining)
	nested := &vm.CallStackFrame{
		ThisAddress:    types.BytesToAddress([]byte{0x43}),
		ThisShardID:    vm.RollupShardID,
		ErgsRemaining:  forwarded,
		BaseMemoryPage: 9,
	}
	if err := frames.Push(nested); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}

	precompileCycle := uint64(len(cycles))
	precompilePre := vm.PreState{
		Variant:     vm.PrecompileCall,
		Operand0:    (vm.PrecompileCallABI{InputMemoryLength: 4, OutputMemoryLength: 32}).EncodeToUint256(),
		Operand1:    uint256.NewInt(0),
		Destination: vm.DestinationLocation{UsesRegister: true, Register: 2},
	}
	active := frames.Current()
	result, err := dispatcher.Dispatch(precompileCycle, precompilePre, active, state)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("cycle=%d variant=%s ergs_remaining=%d spent_pubdata=%d not_enough_power=%v (depth=%d)\n",
		precompileCycle, precompilePre.Variant, active.ErgsRemaining, state.SpentPubdataCounter, result.NotEnoughPower, frames.Depth())
	state.AdvanceCycle()
	frames.Pop()

	fmt.Printf("witness entries recorded: %d\n", len(tracer.Entries()))
}
