package main

import (
	"encoding/hex"
	"fmt"

	"github.com/Fantasim/solvault/internal/slip10"
	"github.com/Fantasim/solvault/internal/wallet"
)

// Manual sanity check against the published SLIP-0010 ed25519 test vectors
// and the standard Phantom/Solflare test mnemonic.
func main() {
	seed, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	d := slip10.NewDeriver()

	fmt.Println("=== SLIP-0010 vector 1 ===")
	for _, path := range []string{"m/0'", "m/0'/1'", "m/0'/1'/2'", "m/0'/1'/2'/2'", "m/0'/1'/2'/2'/1000000000'"} {
		ext, _ := d.Derive(seed, path)
		fmt.Printf("  %-28s key=%x chain=%x\n", path, ext.Key, ext.ChainCode)
	}

	fmt.Println("\n=== SOL ===")
	mnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	solSeed, _ := wallet.MnemonicToSeed(mnemonic)
	for i := uint32(0); i < 3; i++ {
		addr, _ := wallet.DeriveAccountAddress(solSeed, i)
		fmt.Printf("  index %d: %s\n", i, addr)
	}

	fmt.Println("\n=== Expected ===")
	fmt.Println("m/0' key:   68e0fe46dfb67e368c75379acec591dad19df3cde26e63b93a8e704f1dade7a3")
	fmt.Println("SOL[0]:     HAgk14JpMQLgt6rVgv7cBQFJWFto5Dqxi472uT3DKpqk")
}
