package crypto

import (
	"testing"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"
)

func TestEcrecoverRecoversSignerAddress(t *testing.T) {
	priv, err := gethcrypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	var hash [32]byte
	copy(hash[:], Keccak256([]byte("log dispatcher precompile test")))

	sig, err := gethcrypto.Sign(hash[:], priv)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	var r, s [32]byte
	copy(r[:], sig[0:32])
	copy(s[:], sig[32:64])
	v := sig[64]

	got, err := Ecrecover(hash, r, s, v)
	if err != nil {
		t.Fatalf("Ecrecover: %v", err)
	}

	want := gethcrypto.PubkeyToAddress(priv.PublicKey)
	if got.Hex() != want.Hex() {
		t.Fatalf("recovered address = %s, want %s", got.Hex(), want.Hex())
	}
}

func TestEcrecoverRejectsInvalidRecoveryID(t *testing.T) {
	var hash, r, s [32]byte
	if _, err := Ecrecover(hash, r, s, 2); err == nil {
		t.Fatalf("expected error for recovery id > 1")
	}
}
