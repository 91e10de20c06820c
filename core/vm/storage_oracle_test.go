package vm

import (
	"testing"

	"github.com/holiman/uint256"

	"github.com/zkaxon/logvm/core/types"
)

func TestInMemoryStorageOracleReadAfterWrite(t *testing.T) {
	cfg := DefaultGasPubdataConfig()
	o := NewInMemoryStorageOracle(cfg)

	addr := types.BytesToAddress([]byte{0x9})
	write := LogQuery{Address: addr, Key: uint256.NewInt(5), WrittenValue: uint256.NewInt(99), RwFlag: true}
	if _, err := o.AccessStorage(0, write); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	read := LogQuery{Address: addr, Key: uint256.NewInt(5), RwFlag: false}
	completed, err := o.AccessStorage(1, read)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if completed.ReadValue.Uint64() != 99 {
		t.Fatalf("read_value = %s, want 99", completed.ReadValue.Hex())
	}
}

func TestInMemoryStorageOracleUnwrittenSlotReadsZero(t *testing.T) {
	o := NewInMemoryStorageOracle(DefaultGasPubdataConfig())
	read := LogQuery{Address: types.BytesToAddress([]byte{0x1}), Key: uint256.NewInt(123), RwFlag: false}
	completed, err := o.AccessStorage(0, read)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if completed.ReadValue.Sign() != 0 {
		t.Fatalf("read_value = %s, want 0", completed.ReadValue.Hex())
	}
}

func TestInMemoryStorageOracleRefundsSecondWriteToSameSlot(t *testing.T) {
	cfg := GasPubdataConfig{InitialStorageWritePubdataBytes: 5000}
	o := NewInMemoryStorageOracle(cfg)

	addr := types.BytesToAddress([]byte{0x2})
	key := uint256.NewInt(1)
	partial := LogQuery{Address: addr, Key: key}

	firstRefund := o.RefundForPartialQuery(0, &partial)
	if firstRefund.PubdataRefundBytes() != 0 {
		t.Fatalf("first write to a slot should have zero refund, got %d", firstRefund.PubdataRefundBytes())
	}

	write := LogQuery{Address: addr, Key: key, WrittenValue: uint256.NewInt(1), RwFlag: true}
	if _, err := o.AccessStorage(0, write); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	secondRefund := o.RefundForPartialQuery(1, &partial)
	if secondRefund.PubdataRefundBytes() != cfg.InitialStorageWritePubdataBytes {
		t.Fatalf("second write to the same slot should refund the full base cost, got %d", secondRefund.PubdataRefundBytes())
	}
}
