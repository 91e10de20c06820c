package vm

import "github.com/holiman/uint256"

// PrecompileCallABI is the packed descriptor carried in operand 0 of a
// PrecompileCall and, after memory-page defaulting, re-encoded into the
// key field of the emitted query (§3, §4.B).
type PrecompileCallABI struct {
	InputMemoryOffset         uint32
	InputMemoryLength         uint32
	OutputMemoryOffset        uint32
	OutputMemoryLength        uint32
	MemoryPageToRead          uint32
	MemoryPageToWrite         uint32
	PrecompileInterpretedData uint64
}

// DecodePrecompileCallABI unpacks a 256-bit value into its six 32-bit
// fields and one 64-bit field, per the four-limb layout in §3. Decoding
// has no failure modes.
func DecodePrecompileCallABI(v *uint256.Int) PrecompileCallABI {
	limb0 := v[0]
	limb1 := v[1]
	limb2 := v[2]
	limb3 := v[3]

	return PrecompileCallABI{
		InputMemoryOffset:         uint32(limb0),
		InputMemoryLength:         uint32(limb0 >> 32),
		OutputMemoryOffset:        uint32(limb1),
		OutputMemoryLength:        uint32(limb1 >> 32),
		MemoryPageToRead:          uint32(limb2),
		MemoryPageToWrite:         uint32(limb2 >> 32),
		PrecompileInterpretedData: limb3,
	}
}

// EncodeToUint256 packs the ABI back into a 256-bit value. Round-trip
// invariant: DecodePrecompileCallABI(a.EncodeToUint256()) == a for every
// representable a (invariants 5-6, §8).
func (a PrecompileCallABI) EncodeToUint256() *uint256.Int {
	limb0 := uint64(a.InputMemoryOffset) | uint64(a.InputMemoryLength)<<32
	limb1 := uint64(a.OutputMemoryOffset) | uint64(a.OutputMemoryLength)<<32
	limb2 := uint64(a.MemoryPageToRead) | uint64(a.MemoryPageToWrite)<<32
	limb3 := a.PrecompileInterpretedData

	var out uint256.Int
	out[0] = limb0
	out[1] = limb1
	out[2] = limb2
	out[3] = limb3
	return &out
}
