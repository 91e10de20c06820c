package vm

// dispatchEvent and dispatchToL1Message implement §4.E. Both variants
// share a query template (rw_flag=true, read_value=0) but differ in
// aux_byte and in their not-enough-power policy: Event cannot occur
// (cost is zero, asserted); ToL1Message silently drops.

func (d *Dispatcher) dispatchEvent(cycle uint64, pre PreState, frame *CallStackFrame, state *VmState, partial LogQuery, acc accountResult) (DispatchResult, error) {
	if acc.NotEnoughPower {
		return DispatchResult{}, newFatalError(ErrNotEnoughPowerImpossible, cycle, Event)
	}

	query := partial
	query.AuxByte = EventAuxByte
	query.RwFlag = true
	query.Key = pre.Operand0.Clone()
	query.WrittenValue = pre.Operand1.Clone()

	d.eventSink.EmitEvent(cycle, query)
	d.tracer.TraceEvent(cycle, query)

	return DispatchResult{ErgsOnPubdata: acc.ErgsOnPubdata, QueryEmitted: true, Query: query}, nil
}

func (d *Dispatcher) dispatchToL1Message(cycle uint64, pre PreState, frame *CallStackFrame, state *VmState, partial LogQuery, acc accountResult) (DispatchResult, error) {
	if acc.NotEnoughPower {
		return DispatchResult{NotEnoughPower: true, ErgsOnPubdata: acc.ErgsOnPubdata}, nil
	}

	query := partial
	query.AuxByte = L1MessageAuxByte
	query.RwFlag = true
	query.Key = pre.Operand0.Clone()
	query.WrittenValue = pre.Operand1.Clone()

	d.eventSink.EmitEvent(cycle, query)
	d.tracer.TraceEvent(cycle, query)

	return DispatchResult{ErgsOnPubdata: acc.ErgsOnPubdata, QueryEmitted: true, Query: query}, nil
}
