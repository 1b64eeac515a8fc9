package wallet

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"log/slog"

	"github.com/Fantasim/solvault/internal/config"
)

// Keyring derives key material on demand from the mnemonic file.
// The mnemonic is read fresh each time to minimize time secrets spend in memory.
type Keyring struct {
	mnemonicFilePath string
}

// NewKeyring creates a key derivation service backed by a mnemonic file.
func NewKeyring(mnemonicFilePath string) *Keyring {
	slog.Info("keyring created",
		"mnemonicFileConfigured", mnemonicFilePath != "",
	)
	return &Keyring{mnemonicFilePath: mnemonicFilePath}
}

// DeriveAddress derives the Solana address for an arbitrary hardened path.
func (kr *Keyring) DeriveAddress(ctx context.Context, path string) (string, error) {
	seed, err := kr.readSeed(ctx)
	if err != nil {
		return "", err
	}
	defer Wipe(seed)

	addr, err := DeriveAddress(seed, path)
	if err != nil {
		return "", err
	}
	return addr, nil
}

// DeriveKeypair derives the full ed25519 keypair at the standard account
// path. The caller MUST wipe the returned private key after use.
func (kr *Keyring) DeriveKeypair(ctx context.Context, index uint32) (ed25519.PublicKey, ed25519.PrivateKey, error) {
	slog.Debug("deriving SOL keypair", "index", index)

	seed, err := kr.readSeed(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer Wipe(seed)

	pub, priv, err := DeriveAccountKeypair(seed, index)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: SOL index %d: %s", config.ErrKeyDerivation, index, err)
	}

	slog.Debug("SOL keypair derived", "index", index)
	return pub, priv, nil
}

// readSeed reads the mnemonic file and converts it to a BIP-39 seed.
func (kr *Keyring) readSeed(ctx context.Context) ([]byte, error) {
	if kr.mnemonicFilePath == "" {
		return nil, config.ErrMnemonicFileNotSet
	}

	// Check context before potentially slow file I/O.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled before key derivation: %w", err)
	}

	mnemonic, err := ReadMnemonicFromFile(kr.mnemonicFilePath)
	if err != nil {
		return nil, fmt.Errorf("read mnemonic: %w", err)
	}

	seed, err := MnemonicToSeed(mnemonic)
	if err != nil {
		return nil, fmt.Errorf("mnemonic to seed: %w", err)
	}

	return seed, nil
}
