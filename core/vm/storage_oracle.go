package vm

import (
	"github.com/holiman/uint256"

	"github.com/zkaxon/logvm/core/types"
	"github.com/zkaxon/logvm/crypto"
)

// slotWarmthCosts mirrors the reference VM's SlotAccessCosts shape
// (cold/warm distinction, injectable defaults) applied to pubdata
// instead of gas: a slot's base pubdata cost is only charged once per
// oracle; repeated writes to an already-touched slot are refunded in
// full, since only the final value needs posting. The oracle has no
// batch boundary: a slot stays warm for the oracle's whole lifetime.
type slotWarmthCosts struct {
	baseWriteBytes uint32
}

func defaultSlotWarmthCosts(cfg GasPubdataConfig) slotWarmthCosts {
	return slotWarmthCosts{baseWriteBytes: cfg.InitialStorageWritePubdataBytes}
}

// InMemoryStorageOracle is the reference Storage + RefundOracle
// collaborator used by the cmd/logvm harness and by the dispatcher's own
// tests. It tracks, per derived slot, the current value and whether the
// slot has already been written through this oracle.
type InMemoryStorageOracle struct {
	costs  slotWarmthCosts
	values map[types.Hash]*uint256.Int
	warm   map[types.Hash]bool
}

// NewInMemoryStorageOracle builds an oracle over the given pubdata
// config.
func NewInMemoryStorageOracle(cfg GasPubdataConfig) *InMemoryStorageOracle {
	return &InMemoryStorageOracle{
		costs:  defaultSlotWarmthCosts(cfg),
		values: make(map[types.Hash]*uint256.Int),
		warm:   make(map[types.Hash]bool),
	}
}

func (o *InMemoryStorageOracle) slotFor(query *LogQuery) types.Hash {
	return crypto.DeriveStorageSlot(query.Address, query.Key)
}

// AccessStorage implements Storage. Reads fill ReadValue from the
// tracked map (defaulting to zero for untouched slots); writes commit
// the new value and mark the slot warm.
func (o *InMemoryStorageOracle) AccessStorage(cycle uint64, query LogQuery) (LogQuery, error) {
	slot := o.slotFor(&query)

	if !query.RwFlag {
		if v, ok := o.values[slot]; ok {
			query.ReadValue = v.Clone()
		} else {
			query.ReadValue = uint256.NewInt(0)
		}
		return query, nil
	}

	o.values[slot] = query.WrittenValue.Clone()
	o.warm[slot] = true
	return query, nil
}

// RefundForPartialQuery implements RefundOracle. A slot already written
// through this oracle refunds its full base cost (net pubdata zero); a first
// write to a slot refunds nothing.
func (o *InMemoryStorageOracle) RefundForPartialQuery(cycle uint64, partial *LogQuery) PubdataRefund {
	slot := o.slotFor(partial)
	if o.warm[slot] {
		return flatRefund(o.costs.baseWriteBytes)
	}
	return flatRefund(0)
}

type flatRefund uint32

func (r flatRefund) PubdataRefundBytes() uint32 { return uint32(r) }
