package domain

import "fmt"

// CustodyState is the cold-chain pipeline stage recorded on a certificate.
// Positional values are the storage encoding; DELIVERED is the only terminal
// state. State changes are explicit assertions by the owner, never computed.
type CustodyState uint8

const (
	StateManufactured CustodyState = iota
	StateDeliveringInternational
	StateStored
	StateDeliveringLocal
	StateDelivered
)

var custodyStateNames = [...]string{
	StateManufactured:            "MANUFACTURED",
	StateDeliveringInternational: "DELIVERING_INTERNATIONAL",
	StateStored:                  "STORED",
	StateDeliveringLocal:         "DELIVERING_LOCAL",
	StateDelivered:               "DELIVERED",
}

// ParseCustodyState maps a canonical state name to its CustodyState.
func ParseCustodyState(s string) (CustodyState, error) {
	for cs, name := range custodyStateNames {
		if s == name {
			return CustodyState(cs), nil
		}
	}
	return 0, fmt.Errorf("unknown custody state %q", s)
}

// Valid reports whether the state is one of the closed set.
func (c CustodyState) Valid() bool {
	return int(c) < len(custodyStateNames)
}

func (c CustodyState) String() string {
	if !c.Valid() {
		return fmt.Sprintf("CustodyState(%d)", uint8(c))
	}
	return custodyStateNames[c]
}

func (c CustodyState) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid custody state %d", uint8(c))
	}
	return []byte(custodyStateNames[c]), nil
}

func (c *CustodyState) UnmarshalText(text []byte) error {
	parsed, err := ParseCustodyState(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
