package vm

import "github.com/holiman/uint256"

// dispatchPrecompileCall implements §4.F. It is the only variant that
// writes the destination register on the not-enough-power path.
func (d *Dispatcher) dispatchPrecompileCall(cycle uint64, pre PreState, frame *CallStackFrame, state *VmState, partial LogQuery, acc accountResult) (DispatchResult, error) {
	if acc.NotEnoughPower {
		empty := uint256.NewInt(0)
		d.memory.PerformDst0Update(cycle, empty, false, pre.Destination)
		return DispatchResult{NotEnoughPower: true, ErgsOnPubdata: acc.ErgsOnPubdata}, nil
	}

	abi := DecodePrecompileCallABI(pre.Operand0)

	if abi.MemoryPageToRead == 0 {
		abi.MemoryPageToRead = d.memory.HeapPageFromBase(frame.BaseMemoryPage)
	}
	if abi.MemoryPageToWrite == 0 {
		abi.MemoryPageToWrite = d.memory.HeapPageFromBase(frame.BaseMemoryPage)
	}

	tRead := state.TimestampForFirstDecommitOrPrecompileRead()
	tWrite, err := state.TimestampForSecondDecommitOrPrecompileWrite()
	if err != nil {
		return DispatchResult{}, newFatalError(err, cycle, PrecompileCall)
	}
	if tWrite != tRead+1 {
		return DispatchResult{}, newFatalError(ErrTimestampReuse, cycle, PrecompileCall)
	}

	query := partial
	query.AuxByte = PrecompileAuxByte
	query.RwFlag = false
	query.Key = abi.EncodeToUint256()

	result := d.precompiles.ExecutePrecompile(cycle, query, d.memory)
	d.tracer.TracePrecompile(cycle, query, result)

	success := uint256.NewInt(1)
	d.memory.PerformDst0Update(cycle, success, false, pre.Destination)

	return DispatchResult{ErgsOnPubdata: acc.ErgsOnPubdata, QueryEmitted: true, Query: query}, nil
}
