package crypto

import (
	"encoding/hex"
	"testing"
)

func TestKeccak256EmptyInput(t *testing.T) {
	got := hex.EncodeToString(Keccak256())
	want := "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"
	if got != want {
		t.Fatalf("Keccak256() = %s, want %s", got, want)
	}
}

func TestKeccak256MultipleChunks(t *testing.T) {
	a := Keccak256([]byte("foo"), []byte("bar"))
	b := Keccak256([]byte("foobar"))
	if hex.EncodeToString(a) != hex.EncodeToString(b) {
		t.Fatalf("Keccak256 over split chunks should equal Keccak256 over the concatenation")
	}
}
