package certificate

import (
	"fmt"

	gethCrypto "github.com/ethereum/go-ethereum/crypto"

	"coldchain/pkg/domain"
)

const (
	hashLength      = 32
	signatureLength = 65
)

// signedMessageDigest wraps a 32-byte digest in the standard signed-message
// envelope before recovery. Signing facilities (eth_sign and kin) apply this
// prefix so raw transaction signatures can never be replayed as custody
// attestations.
func signedMessageDigest(messageHash []byte) []byte {
	prefix := fmt.Sprintf("\x19Ethereum Signed Message:\n%d", len(messageHash))
	return gethCrypto.Keccak256([]byte(prefix), messageHash)
}

// RecoverSigner derives the identity implied by (messageHash, sig) using
// secp256k1 public-key recovery. sig is 65 bytes r||s||v; both v encodings
// (0/1 and 27/28) are accepted. The elliptic-curve math is delegated
// entirely to go-ethereum's audited primitive.
func RecoverSigner(messageHash, sig []byte) (domain.EntityID, error) {
	if len(messageHash) != hashLength {
		return domain.EntityID{}, fmt.Errorf("message hash must be %d bytes, got %d", hashLength, len(messageHash))
	}
	if len(sig) != signatureLength {
		return domain.EntityID{}, fmt.Errorf("signature must be %d bytes, got %d", signatureLength, len(sig))
	}

	normalized := make([]byte, signatureLength)
	copy(normalized, sig)
	if normalized[64] >= 27 {
		normalized[64] -= 27
	}

	pub, err := gethCrypto.SigToPub(signedMessageDigest(messageHash), normalized)
	if err != nil {
		return domain.EntityID{}, fmt.Errorf("recover signer: %w", err)
	}
	return domain.EntityID(gethCrypto.PubkeyToAddress(*pub)), nil
}
