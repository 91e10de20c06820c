package crypto

import (
	"errors"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/zkaxon/logvm/core/types"
)

// secp256k1HalfN is half the order of the secp256k1 curve, used to
// bounds-check the s component per EIP-2 before recovery is attempted.
var secp256k1HalfN = func() [32]byte {
	// 0x7FFFFFFF FFFFFFFF FFFFFFFF FFFFFFFF 5D576E73 57A4501D DFE92F46 681B20A0
	return [32]byte{
		0x7f, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0x5d, 0x57, 0x6e, 0x73, 0x57, 0xa4, 0x50, 0x1d,
		0xdf, 0xe9, 0x2f, 0x46, 0x68, 0x1b, 0x20, 0xa0,
	}
}()

// Ecrecover recovers the 20-byte address that produced the given
// signature over hash, following the Homestead low-s rule. It delegates
// the actual curve recovery to go-ethereum's crypto package rather than
// rolling secp256k1 by hand (see DESIGN.md for why).
func Ecrecover(hash [32]byte, r, s [32]byte, v byte) (types.Address, error) {
	if v > 1 {
		return types.Address{}, errors.New("ecrecover: invalid recovery id")
	}
	if greaterThan(s, secp256k1HalfN) {
		return types.Address{}, errors.New("ecrecover: signature s value too high")
	}

	sig := make([]byte, 65)
	copy(sig[0:32], r[:])
	copy(sig[32:64], s[:])
	sig[64] = v

	pub, err := gethcrypto.Ecrecover(hash[:], sig)
	if err != nil {
		return types.Address{}, err
	}
	digest := Keccak256(pub[1:])
	return types.BytesToAddress(digest[12:]), nil
}

func greaterThan(a, b [32]byte) bool {
	for i := 0; i < 32; i++ {
		if a[i] != b[i] {
			return a[i] > b[i]
		}
	}
	return false
}
