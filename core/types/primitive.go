package types

import "github.com/holiman/uint256"

// PrimitiveValue is a 256-bit VM word paired with a pointer tag. Log
// opcodes never propagate pointer-ness from their operands: every
// PrimitiveValue this package produces carries IsPointer=false.
type PrimitiveValue struct {
	Value     *uint256.Int
	IsPointer bool
}

// EmptyPrimitiveValue returns the zero, non-pointer value written to the
// destination register on precompile not-enough-power.
func EmptyPrimitiveValue() PrimitiveValue {
	return PrimitiveValue{Value: uint256.NewInt(0), IsPointer: false}
}

// PrimitiveValueFromUint64 builds a non-pointer PrimitiveValue from a
// small integer, used for the precompile success marker (value 1).
func PrimitiveValueFromUint64(v uint64) PrimitiveValue {
	return PrimitiveValue{Value: uint256.NewInt(v), IsPointer: false}
}
