package slip10

import "crypto/ed25519"

// Keypair expands the 32-byte private scalar into an ed25519 keypair.
// The key is passed verbatim as the seed to crypto/ed25519's expansion;
// no independent cryptography happens here.
func (k ExtendedKey) Keypair() (ed25519.PublicKey, ed25519.PrivateKey) {
	priv := ed25519.NewKeyFromSeed(k.Key[:])
	return priv.Public().(ed25519.PublicKey), priv
}
