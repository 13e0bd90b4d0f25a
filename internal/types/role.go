package types

import "fmt"

// Role is the closed set of account roles. Anything else is rejected at the
// signup and token boundaries.
type Role string

const (
	RoleFounder  Role = "founder"
	RoleInvestor Role = "investor"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleFounder:
		return RoleFounder, nil
	case RoleInvestor:
		return RoleInvestor, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r Role) String() string {
	return string(r)
}
