package vm

// GasPubdataAccountant implements §4.C: it never fails visibly to the
// program — insufficient gas becomes a signal consumed by the variant
// handler. Fatal invariant violations (unsigned underflow in net-cost,
// nonzero refund on validium) abort execution via the returned
// *FatalError.
type GasPubdataAccountant struct {
	cfg GasPubdataConfig
}

// NewGasPubdataAccountant builds an accountant over the given config.
func NewGasPubdataAccountant(cfg GasPubdataConfig) *GasPubdataAccountant {
	return &GasPubdataAccountant{cfg: cfg}
}

// NewGasPubdataAccountantWithDefaults builds an accountant using the
// protocol's published constants.
func NewGasPubdataAccountantWithDefaults() *GasPubdataAccountant {
	return NewGasPubdataAccountant(DefaultGasPubdataConfig())
}

// accountResult carries the accountant's verdict for a single cycle.
type accountResult struct {
	NotEnoughPower bool
	ErgsOnPubdata  uint64
}

// Account runs the four-step algorithm in §4.C and mutates frame and
// state in place: frame.ErgsRemaining and state.SpentPubdataCounter are
// updated according to whether the subtraction in step 4 succeeds or
// underflows.
func (a *GasPubdataAccountant) Account(
	cycle uint64,
	variant LogOpcodeVariant,
	operand1 uint64,
	refundOracle RefundOracle,
	partialQuery *LogQuery,
	frame *CallStackFrame,
	state *VmState,
) (accountResult, *FatalError) {
	extraCost := uint64(0)
	if variant == PrecompileCall {
		extraCost = uint64(uint32(operand1))
	}

	ergsOnPubdata, fatal := a.ergsOnPubdata(cycle, variant, refundOracle, partialQuery, frame, state)
	if fatal != nil {
		return accountResult{}, fatal
	}

	totalCost := extraCost + ergsOnPubdata
	ergsAvailable := frame.ErgsRemaining

	if totalCost <= ergsAvailable {
		frame.ErgsRemaining = ergsAvailable - totalCost
		state.SpentPubdataCounter += ergsOnPubdata
		return accountResult{NotEnoughPower: false, ErgsOnPubdata: ergsOnPubdata}, nil
	}

	frame.ErgsRemaining = 0
	spent := ergsOnPubdata
	if ergsAvailable < spent {
		spent = ergsAvailable
	}
	state.SpentPubdataCounter += spent
	return accountResult{NotEnoughPower: true, ErgsOnPubdata: ergsOnPubdata}, nil
}

func (a *GasPubdataAccountant) ergsOnPubdata(
	cycle uint64,
	variant LogOpcodeVariant,
	refundOracle RefundOracle,
	partialQuery *LogQuery,
	frame *CallStackFrame,
	state *VmState,
) (uint64, *FatalError) {
	switch variant {
	case StorageWrite:
		refund := refundOracle.RefundForPartialQuery(cycle, partialQuery)
		pubdataRefund := refund.PubdataRefundBytes()

		var netPubdata uint32
		if frame.IsRollup() {
			if pubdataRefund > a.cfg.InitialStorageWritePubdataBytes {
				return 0, newFatalError(ErrNetPubdataUnderflow, cycle, variant)
			}
			netPubdata = a.cfg.InitialStorageWritePubdataBytes - pubdataRefund
		} else {
			if pubdataRefund != 0 {
				return 0, newFatalError(ErrNonzeroRefundOnValidium, cycle, variant)
			}
			netPubdata = 0
		}
		return uint64(state.CurrentErgsPerPubdataByte) * uint64(netPubdata), nil

	case ToL1Message:
		return uint64(state.CurrentErgsPerPubdataByte) * uint64(a.cfg.L1MessagePubdataBytes), nil

	default:
		return 0, nil
	}
}
