package vm

import "github.com/zkaxon/logvm/core/types"

// dispatchStorageRead implements §4.D's read half. Not-enough-power is
// impossible here because StorageRead carries zero cost; the accountant
// signaling otherwise is a broken-accountant invariant violation, not a
// program-visible outcome.
func (d *Dispatcher) dispatchStorageRead(cycle uint64, pre PreState, frame *CallStackFrame, state *VmState, partial LogQuery, acc accountResult) (DispatchResult, error) {
	if acc.NotEnoughPower {
		return DispatchResult{}, newFatalError(ErrNotEnoughPowerImpossible, cycle, StorageRead)
	}

	query := partial
	query.AuxByte = StorageAuxByte
	query.RwFlag = false
	query.Key = pre.Operand0.Clone()

	completed, err := d.storage.AccessStorage(cycle, query)
	if err != nil {
		return DispatchResult{}, newFatalError(err, cycle, StorageRead)
	}
	d.tracer.TraceStorage(cycle, completed)

	value := types.PrimitiveValue{Value: completed.ReadValue.Clone(), IsPointer: false}
	d.memory.PerformDst0Update(cycle, value.Value, value.IsPointer, pre.Destination)

	return DispatchResult{ErgsOnPubdata: acc.ErgsOnPubdata, QueryEmitted: true, Query: completed}, nil
}

// dispatchStorageWrite implements §4.D's write half. On not-enough-power
// it returns immediately: the destination register is never touched for
// StorageWrite, matching the per-variant failure table in §9.
func (d *Dispatcher) dispatchStorageWrite(cycle uint64, pre PreState, frame *CallStackFrame, state *VmState, partial LogQuery, acc accountResult) (DispatchResult, error) {
	if acc.NotEnoughPower {
		return DispatchResult{NotEnoughPower: true, ErgsOnPubdata: acc.ErgsOnPubdata}, nil
	}

	query := partial
	query.AuxByte = StorageAuxByte
	query.RwFlag = true
	query.Key = pre.Operand0.Clone()
	query.WrittenValue = pre.Operand1.Clone()

	completed, err := d.storage.AccessStorage(cycle, query)
	if err != nil {
		return DispatchResult{}, newFatalError(err, cycle, StorageWrite)
	}
	d.tracer.TraceStorage(cycle, completed)

	return DispatchResult{ErgsOnPubdata: acc.ErgsOnPubdata, QueryEmitted: true, Query: completed}, nil
}
