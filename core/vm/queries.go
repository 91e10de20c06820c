package vm

import (
	"github.com/holiman/uint256"

	"github.com/zkaxon/logvm/core/types"
)

// LogQuery is the canonical cross-boundary record (§3). A record is
// append-only: once emitted by the dispatcher it is never mutated by
// this package again. Collaborators may retain copies; the dispatcher
// does not.
type LogQuery struct {
	Timestamp        uint32
	TxNumberInBlock  uint16
	AuxByte          AuxByte
	ShardID          uint8
	Address          types.Address
	Key              *uint256.Int
	ReadValue        *uint256.Int
	WrittenValue     *uint256.Int
	RwFlag           bool
	Rollback         bool
	IsService        bool
}

// emptyLogQuery returns a LogQuery with all value fields zeroed, ready
// for a caller to fill in the fields that distinguish each variant.
func emptyLogQuery() LogQuery {
	return LogQuery{
		Key:          uint256.NewInt(0),
		ReadValue:    uint256.NewInt(0),
		WrittenValue: uint256.NewInt(0),
	}
}

// MemoryQuery records a single memory access, used by the precompile
// processor to report the reads/writes it performed for witness
// generation.
type MemoryQuery struct {
	Timestamp     uint32
	Location      MemoryLocation
	Value         *uint256.Int
	RwFlag        bool
	ValueIsPointer bool
}

// MemoryLocation identifies a slot within a memory page.
type MemoryLocation struct {
	Page   uint32
	Index  uint32
}

// emptyMemoryQuery mirrors the empty-constructor convention used
// throughout the data model (§3, §4.A).
func emptyMemoryQuery() MemoryQuery {
	return MemoryQuery{Value: uint256.NewInt(0)}
}
