package wallet

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Fantasim/solvault/internal/config"
)

func testKeyring(t *testing.T) *Keyring {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mnemonic.txt")
	if err := os.WriteFile(path, []byte(testMnemonic12+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return NewKeyring(path)
}

func TestKeyringDeriveAddress(t *testing.T) {
	kr := testKeyring(t)

	addr, err := kr.DeriveAddress(context.Background(), "m/44'/501'/0'/0'")
	if err != nil {
		t.Fatalf("DeriveAddress() error = %v", err)
	}

	if want := "HAgk14JpMQLgt6rVgv7cBQFJWFto5Dqxi472uT3DKpqk"; addr != want {
		t.Errorf("DeriveAddress() = %v, want %v", addr, want)
	}
}

func TestKeyringDeriveKeypair(t *testing.T) {
	kr := testKeyring(t)

	pub, priv, err := kr.DeriveKeypair(context.Background(), 0)
	if err != nil {
		t.Fatalf("DeriveKeypair() error = %v", err)
	}
	defer Wipe(priv)

	if len(pub) != 32 || len(priv) != 64 {
		t.Errorf("DeriveKeypair() lengths = %d/%d, want 32/64", len(pub), len(priv))
	}
}

func TestKeyringNoMnemonicFile(t *testing.T) {
	kr := NewKeyring("")

	_, err := kr.DeriveAddress(context.Background(), "m/44'/501'/0'/0'")
	if !errors.Is(err, config.ErrMnemonicFileNotSet) {
		t.Errorf("DeriveAddress() error = %v, want ErrMnemonicFileNotSet", err)
	}
}

func TestKeyringCancelledContext(t *testing.T) {
	kr := testKeyring(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := kr.DeriveAddress(ctx, "m/44'/501'/0'/0'")
	if err == nil {
		t.Error("DeriveAddress() expected error for cancelled context")
	}
}
