package domain

import "fmt"

// Role is the capability a registered entity holds. The set is closed and the
// numeric values are positional: they are the wire and storage encoding and
// must never be reordered.
type Role uint8

const (
	// RoleIssuer may certify the custody state of a batch.
	RoleIssuer Role = iota
	// RoleProver is the subject of a certification, typically the custody holder.
	RoleProver
	// RoleVerifier consumes certificates; it is not a writer.
	RoleVerifier
)

var roleNames = [...]string{
	RoleIssuer:   "ISSUER",
	RoleProver:   "PROVER",
	RoleVerifier: "VERIFIER",
}

// ParseRole maps a canonical role name to its Role. Unknown names are
// rejected so an invalid role can never enter the registry.
func ParseRole(s string) (Role, error) {
	for r, name := range roleNames {
		if s == name {
			return Role(r), nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

// Valid reports whether the role is one of the closed set. Roles built by
// conversion from untrusted integers must pass through this.
func (r Role) Valid() bool {
	return int(r) < len(roleNames)
}

func (r Role) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Role(%d)", uint8(r))
	}
	return roleNames[r]
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid role %d", uint8(r))
	}
	return []byte(roleNames[r]), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
