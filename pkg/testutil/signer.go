package testutil

import (
	"crypto/ecdsa"
	"fmt"
	"testing"

	gethCrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"coldchain/pkg/domain"
)

// Signer is a disposable secp256k1 identity standing in for the external
// key-signing facility.
type Signer struct {
	Key *ecdsa.PrivateKey
	ID  domain.EntityID
}

// NewSigner generates a fresh key pair.
func NewSigner(t *testing.T) *Signer {
	t.Helper()
	key, err := gethCrypto.GenerateKey()
	require.NoError(t, err)
	return &Signer{
		Key: key,
		ID:  domain.EntityID(gethCrypto.PubkeyToAddress(key.PublicKey)),
	}
}

// Sign produces a recoverable signature over the keccak256 hash of message,
// applying the same signed-message envelope as eth_sign, with v encoded as
// 27/28 the way web3 clients emit it.
func (s *Signer) Sign(t *testing.T, message string) []byte {
	t.Helper()
	return s.SignHash(t, gethCrypto.Keccak256([]byte(message)))
}

// SignHash signs a precomputed 32-byte digest.
func (s *Signer) SignHash(t *testing.T, messageHash []byte) []byte {
	t.Helper()
	prefix := fmt.Sprintf("\x19Ethereum Signed Message:\n%d", len(messageHash))
	digest := gethCrypto.Keccak256([]byte(prefix), messageHash)
	sig, err := gethCrypto.Sign(digest, s.Key)
	require.NoError(t, err)
	sig[64] += 27
	return sig
}
