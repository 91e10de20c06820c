package vm

// AuxByte identifies which sink class a LogQuery targets. The pair
// (AuxByte, RwFlag) uniquely determines the sink (§3).
type AuxByte uint8

// Aux-byte constants, bit-exact: these values must match the downstream
// proving circuit's constants exactly.
const (
	StorageAuxByte    AuxByte = 0
	EventAuxByte      AuxByte = 1
	L1MessageAuxByte  AuxByte = 2
	PrecompileAuxByte AuxByte = 3
)

func (a AuxByte) String() string {
	switch a {
	case StorageAuxByte:
		return "STORAGE"
	case EventAuxByte:
		return "EVENT"
	case L1MessageAuxByte:
		return "L1_MESSAGE"
	case PrecompileAuxByte:
		return "PRECOMPILE"
	default:
		return "UNKNOWN"
	}
}

// RollupShardID is the reserved shard id for the rollup (pubdata-posting)
// shard. Any other shard id is a validium shard.
const RollupShardID uint8 = 0

// Precompile low-address tags (§6.3): the low 16 bits of a precompile
// call's address select which round function the processor dispatches
// to. Unrecognized tags are a silent no-op (§4.F) rather than an error.
const (
	KeccakRoundFunctionTag uint16 = 0x0001
	Sha256RoundFunctionTag uint16 = 0x0002
	EcrecoverInnerFunction uint16 = 0x0003
)

// GasPubdataConfig carries the protocol's published system parameters
// (§6.3). It is threaded into the Dispatcher at construction time rather
// than hardcoded, following the reference repo's injectable-config
// pattern (LogGasConfig, SlotAccessCosts).
type GasPubdataConfig struct {
	// InitialStorageWritePubdataBytes is the base pubdata cost of a cold
	// storage write on a rollup shard.
	InitialStorageWritePubdataBytes uint32
	// L1MessagePubdataBytes is the flat pubdata cost of an L1 message.
	L1MessagePubdataBytes uint32
}

// DefaultGasPubdataConfig returns the protocol's published constants.
func DefaultGasPubdataConfig() GasPubdataConfig {
	return GasPubdataConfig{
		InitialStorageWritePubdataBytes: 5000,
		L1MessagePubdataBytes:           500,
	}
}
