package wallet

import (
	"crypto/ed25519"
	"fmt"
	"log/slog"

	"github.com/mr-tron/base58"

	"github.com/Fantasim/solvault/internal/config"
	"github.com/Fantasim/solvault/internal/slip10"
)

// AccountPath returns the standard Solana derivation path for an account
// index: m/44'/501'/N'/0' (all hardened, Phantom/Solflare convention).
func AccountPath(index uint32) string {
	return fmt.Sprintf("m/%d'/%d'/%d'/0'", config.BIP44Purpose, config.SOLCoinType, index)
}

// DeriveAddress derives the base58-encoded Solana address (the ed25519
// public key) for an arbitrary hardened derivation path.
func DeriveAddress(seed []byte, path string) (string, error) {
	key, err := slip10.NewDeriver().Derive(seed, path)
	if err != nil {
		return "", fmt.Errorf("derive address at %s: %w", path, err)
	}

	pub, _ := key.Keypair()
	addr := base58.Encode(pub)

	slog.Debug("derived SOL address",
		"path", path,
		"address", addr,
	)
	return addr, nil
}

// DeriveAccountAddress derives the Solana address at the standard account
// path for the given index.
func DeriveAccountAddress(seed []byte, index uint32) (string, error) {
	return DeriveAddress(seed, AccountPath(index))
}

// DeriveAccountKeypair derives the full ed25519 keypair at the standard
// account path. The caller must discard the
// private key immediately after use (see Wipe).
func DeriveAccountKeypair(seed []byte, index uint32) (ed25519.PublicKey, ed25519.PrivateKey, error) {
	path := AccountPath(index)

	key, err := slip10.NewDeriver().Derive(seed, path)
	if err != nil {
		return nil, nil, fmt.Errorf("derive keypair at %s: %w", path, err)
	}

	pub, priv := key.Keypair()

	slog.Debug("derived SOL keypair for signing", "index", index)
	return pub, priv, nil
}

// DeriveExtendedKey exposes the raw (key, chainCode) pair for a path.
// The chain code is needed by callers that continue derivation themselves.
func DeriveExtendedKey(seed []byte, path string) (slip10.ExtendedKey, error) {
	key, err := slip10.NewDeriver().Derive(seed, path)
	if err != nil {
		return slip10.ExtendedKey{}, fmt.Errorf("derive extended key at %s: %w", path, err)
	}
	return key, nil
}
