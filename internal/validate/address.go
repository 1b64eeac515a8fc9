package validate

import (
	"bytes"
	"fmt"
	"log/slog"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// Address validates that addr is a well-formed Solana address: base58,
// decoding to exactly 32 bytes (an ed25519 public key).
func Address(addr string) error {
	slog.Debug("validating address", "address", addr)

	decoded, err := base58.Decode(addr)
	if err != nil {
		return fmt.Errorf("invalid SOL address %q: base58 decode failed: %w", addr, err)
	}
	if len(decoded) != 32 {
		return fmt.Errorf("invalid SOL address %q: decoded to %d bytes, expected 32", addr, len(decoded))
	}
	return nil
}

// WalletAddress validates addr as Address does and additionally requires the
// public key to be a canonically encoded curve point. Derived wallet keys
// are always on-curve; program-derived addresses are deliberately off-curve
// and fail this check.
func WalletAddress(addr string) error {
	if err := Address(addr); err != nil {
		return err
	}

	decoded, _ := base58.Decode(addr)
	point, err := new(edwards25519.Point).SetBytes(decoded)
	if err != nil {
		return fmt.Errorf("invalid SOL wallet address %q: not a curve point: %w", addr, err)
	}

	// SetBytes tolerates some non-canonical encodings of valid points.
	// A wallet address must round-trip to the exact same 32 bytes.
	if !bytes.Equal(point.Bytes(), decoded) {
		return fmt.Errorf("invalid SOL wallet address %q: non-canonical point encoding", addr)
	}
	return nil
}
