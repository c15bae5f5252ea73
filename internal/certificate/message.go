package certificate

import (
	"fmt"

	gethCrypto "github.com/ethereum/go-ethereum/crypto"

	"coldchain/pkg/domain"
)

// CertificationMessage renders the canonical statement an issuer signs. The
// template binds issuer, batch and prover and is a bit-for-bit contract with
// the signing facility: any formatting deviation changes the hash and
// therefore every verification outcome.
func CertificationMessage(issuer domain.EntityID, batchID domain.BatchID, prover domain.EntityID) string {
	return fmt.Sprintf("Inspector %s has certified vaccine batch #%d for Manufacturer %s",
		issuer, batchID, prover)
}

// MessageHash is the keccak256 digest of the canonical message, the value
// callers pass to IsMatchingSignature.
func MessageHash(message string) []byte {
	return gethCrypto.Keccak256([]byte(message))
}
