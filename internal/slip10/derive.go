package slip10

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"math"
)

const (
	// masterHMACKey is the SLIP-0010 domain-separation key for the ed25519
	// curve: the literal ASCII string is the HMAC key, the seed is the message.
	masterHMACKey = "ed25519 seed"

	// DefaultHardenedOffset is the conventional BIP-32 hardening offset.
	DefaultHardenedOffset = uint32(0x80000000)
)

// ExtendedKey is one node of the derivation tree: a 32-byte private scalar
// and the 32-byte chain code used to derive its children. The chain code is
// HMAC key material only, never signing key material. The fixed-size arrays
// enforce the length invariant; values are passed by value, so a derivation
// step can never mutate its parent.
type ExtendedKey struct {
	Key       [32]byte
	ChainCode [32]byte
}

// MasterKeyFromSeed derives the SLIP-0010 ed25519 master key:
// I = HMAC-SHA512(Key="ed25519 seed", Data=seed), key = I[:32],
// chainCode = I[32:]. Total for any seed, including an empty one.
func MasterKeyFromSeed(seed []byte) ExtendedKey {
	mac := hmac.New(sha512.New, []byte(masterHMACKey))
	mac.Write(seed)
	return splitHMAC(mac.Sum(nil))
}

// childMessage builds the fixed 37-byte hardened-derivation message:
// [0] = 0x00, [1:33] = parent key, [33:37] = index big-endian.
// The leading zero byte marks private-key-based (hardened) derivation.
func childMessage(parentKey [32]byte, index uint32) [37]byte {
	var msg [37]byte
	msg[0] = 0x00
	copy(msg[1:33], parentKey[:])
	binary.BigEndian.PutUint32(msg[33:37], index)
	return msg
}

// deriveChild performs one hardened child derivation step. index carries
// the hardening offset already.
func deriveChild(parent ExtendedKey, index uint32) ExtendedKey {
	msg := childMessage(parent.Key, index)

	mac := hmac.New(sha512.New, parent.ChainCode[:])
	mac.Write(msg[:])
	return splitHMAC(mac.Sum(nil))
}

func splitHMAC(sum []byte) ExtendedKey {
	var k ExtendedKey
	copy(k.Key[:], sum[:32])
	copy(k.ChainCode[:], sum[32:])
	return k
}

// Deriver folds hardened child derivation over a path, starting from the
// master key. The hardening offset is explicit configuration so alternative
// offset schemes can be exercised in tests without touching the algorithm.
type Deriver struct {
	HardenedOffset uint32
}

// NewDeriver returns a Deriver with the conventional 0x80000000 offset.
func NewDeriver() Deriver {
	return Deriver{HardenedOffset: DefaultHardenedOffset}
}

// Derive parses path and derives the extended key for it from seed.
// Validation happens before any cryptographic work begins, so no partial
// derivation result is ever returned on error.
func (d Deriver) Derive(seed []byte, path string) (ExtendedKey, error) {
	segments, err := ParsePath(path)
	if err != nil {
		return ExtendedKey{}, err
	}
	return d.DeriveIndices(seed, segments)
}

// DeriveIndices derives the extended key for an already-parsed path. This is
// a strict left fold: segment 0 derives from the master, segment 1 from
// segment 0's result, and so on. An empty path yields the master key itself.
func (d Deriver) DeriveIndices(seed []byte, path DerivationPath) (ExtendedKey, error) {
	current := MasterKeyFromSeed(seed)

	for i, v := range path {
		// Reject rather than wrap around the 32-bit index space.
		if uint64(v)+uint64(d.HardenedOffset) > math.MaxUint32 {
			return ExtendedKey{}, fmt.Errorf("derive segment %d: index %d overflows hardening offset %#x: %w", i, v, d.HardenedOffset, ErrInvalidPath)
		}
		current = deriveChild(current, v+d.HardenedOffset)
	}

	return current, nil
}
