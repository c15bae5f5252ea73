// Package domain holds the shared vocabulary of the cold-chain registry:
// typed identifiers and the closed role/custody enumerations. Keeping these in
// one place lets the ledger modules reference each other's records without
// importing each other.
package domain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// EntityID identifies a registered participant. Identities are 20-byte
// secp256k1 addresses so that the signature verifier can compare a recovered
// signer against a claimed one directly.
type EntityID common.Address

// ParseEntityID parses a 0x-prefixed hex address.
func ParseEntityID(s string) (EntityID, error) {
	if !common.IsHexAddress(s) {
		return EntityID{}, fmt.Errorf("invalid entity id %q: not a hex address", s)
	}
	return EntityID(common.HexToAddress(s)), nil
}

// Address returns the underlying address for crypto interop.
func (e EntityID) Address() common.Address {
	return common.Address(e)
}

func (e EntityID) String() string {
	return common.Address(e).Hex()
}

// IsZero reports whether the id is the zero address, which is never a valid
// participant identity.
func (e EntityID) IsZero() bool {
	return e == EntityID{}
}

func (e EntityID) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *EntityID) UnmarshalText(text []byte) error {
	id, err := ParseEntityID(string(text))
	if err != nil {
		return err
	}
	*e = id
	return nil
}

// BatchID is a dense sequential vaccine batch identifier, assigned by the
// batch ledger starting at 0 with no gaps and no reuse.
type BatchID uint64

// CertificateID is a dense sequential certificate identifier with its own
// counter, independent of batch numbering.
type CertificateID uint64
