package crypto

import (
	"github.com/holiman/uint256"
	"golang.org/x/crypto/blake2s"

	"github.com/zkaxon/logvm/core/types"
)

// DeriveStorageSlot computes the final storage slot address for an
// (address, key) pair: the 20-byte address occupies bytes 12..32 of a
// 64-byte buffer, the 32-byte big-endian key occupies bytes 32..64, and
// the buffer is hashed with Blake2s-256. This must be byte-exact — it is
// the storage-slot identity every downstream circuit agrees on.
func DeriveStorageSlot(address types.Address, key *uint256.Int) types.Hash {
	var buf [64]byte
	copy(buf[12:32], address[:])
	keyBytes := key.Bytes32()
	copy(buf[32:64], keyBytes[:])

	digest := blake2s.Sum256(buf[:])
	return types.BytesToHash(digest[:])
}
