package vm

import (
	stdsha256 "crypto/sha256"

	"github.com/zkaxon/logvm/crypto"
)

// RoundFunction is a single precompile's execution contract: given the
// raw input bytes read from memory, produce the output bytes. The memory
// accesses reported for the witness are built by the processor, not here.
type RoundFunction interface {
	Name() string
	Run(input []byte) (output []byte, err error)
}

// RoundFunctionRegistry maps a precompile's low-16-bit address tag to
// its round function, mirroring the reference VM's registry/router
// split (a lookup table plus a dispatch layer) without the fork
// versioning this domain has no use for.
type RoundFunctionRegistry struct {
	functions map[uint16]RoundFunction
}

// NewRoundFunctionRegistry registers the three round functions named in
// §6.3.
func NewRoundFunctionRegistry() *RoundFunctionRegistry {
	r := &RoundFunctionRegistry{functions: make(map[uint16]RoundFunction)}
	r.Register(KeccakRoundFunctionTag, keccak256RoundFunction{})
	r.Register(Sha256RoundFunctionTag, sha256RoundFunction{})
	r.Register(EcrecoverInnerFunction, ecrecoverRoundFunction{})
	return r
}

// Register adds or replaces the round function for a tag.
func (r *RoundFunctionRegistry) Register(tag uint16, fn RoundFunction) {
	r.functions[tag] = fn
}

// Lookup returns the round function for a tag, or (nil, false) for an
// unrecognized tag.
func (r *RoundFunctionRegistry) Lookup(tag uint16) (RoundFunction, bool) {
	fn, ok := r.functions[tag]
	return fn, ok
}

// DefaultPrecompilesProcessor is the reference PrecompilesProcessor
// collaborator (§4.F "Precompile processor contract"). Unrecognized
// address tags succeed silently — the registry miss is not surfaced as
// an error, so an unknown precompile address just burns the caller's
// ergs without reverting.
type DefaultPrecompilesProcessor struct {
	registry          *RoundFunctionRegistry
	witnessGeneration bool
}

// NewDefaultPrecompilesProcessor builds a processor over the standard
// registry. witnessGeneration controls whether ExecutePrecompile reports
// Ok=true with reads/writes/witness, or performs the work silently and
// reports Ok=false (§6.1).
func NewDefaultPrecompilesProcessor(witnessGeneration bool) *DefaultPrecompilesProcessor {
	return &DefaultPrecompilesProcessor{registry: NewRoundFunctionRegistry(), witnessGeneration: witnessGeneration}
}

// ExecutePrecompile implements PrecompilesProcessor.
func (p *DefaultPrecompilesProcessor) ExecutePrecompile(cycle uint64, query LogQuery, memory Memory) PrecompileResult {
	abi := DecodePrecompileCallABI(query.Key)
	tag := query.Address.LowU16()

	fn, ok := p.registry.Lookup(tag)
	if !ok {
		// Unrecognized address: intentional silent no-op. Privileged
		// contracts legitimately "call precompiles" purely to burn gas.
		return PrecompileResult{Ok: false}
	}

	input := memory.ReadRange(abi.MemoryPageToRead, abi.InputMemoryOffset, abi.InputMemoryLength)
	output, err := fn.Run(input)
	if err != nil {
		// A malformed call (e.g. bad ecrecover signature) produces an
		// all-zero output rather than propagating an error: precompiles
		// are total functions from the dispatcher's point of view (§7.3).
		output = make([]byte, abi.OutputMemoryLength)
	}
	memory.WriteRange(abi.MemoryPageToWrite, abi.OutputMemoryOffset, output)

	if !p.witnessGeneration {
		return PrecompileResult{Ok: false}
	}

	reads := []MemoryQuery{{Location: MemoryLocation{Page: abi.MemoryPageToRead, Index: abi.InputMemoryOffset}}}
	writes := []MemoryQuery{{Location: MemoryLocation{Page: abi.MemoryPageToWrite, Index: abi.OutputMemoryOffset}}}
	return PrecompileResult{Reads: reads, Writes: writes, Witness: roundFunctionWitness{Name: fn.Name(), InputLen: len(input), OutputLen: len(output)}, Ok: true}
}

// roundFunctionWitness is the precompile-specific witness payload
// returned when witness generation is enabled.
type roundFunctionWitness struct {
	Name      string
	InputLen  int
	OutputLen int
}

type keccak256RoundFunction struct{}

func (keccak256RoundFunction) Name() string { return "keccak256" }

func (keccak256RoundFunction) Run(input []byte) ([]byte, error) {
	return crypto.Keccak256(input), nil
}

type sha256RoundFunction struct{}

func (sha256RoundFunction) Name() string { return "sha256" }

func (sha256RoundFunction) Run(input []byte) ([]byte, error) {
	sum := stdsha256.Sum256(input)
	return sum[:], nil
}

// ecrecoverRoundFunction matches the standard 128-byte ecrecover
// precompile input layout: hash(32) || v(32, right-aligned byte) ||
// r(32) || s(32), output is the 32-byte address (left-padded).
type ecrecoverRoundFunction struct{}

func (ecrecoverRoundFunction) Name() string { return "ecrecover" }

func (ecrecoverRoundFunction) Run(input []byte) ([]byte, error) {
	padded := make([]byte, 128)
	copy(padded, input)

	var hash, r, s [32]byte
	copy(hash[:], padded[0:32])
	copy(r[:], padded[64:96])
	copy(s[:], padded[96:128])

	v := padded[63]
	if v < 27 {
		return nil, errInvalidRecoveryID
	}
	addr, err := crypto.Ecrecover(hash, r, s, v-27)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 32)
	copy(out[12:], addr[:])
	return out, nil
}

var errInvalidRecoveryID = errUnsupported("ecrecover: recovery id byte below 27")

type errUnsupported string

func (e errUnsupported) Error() string { return string(e) }
