// Package role holds the closed set of caller roles.
package role

import (
	"errors"
	"fmt"
	"strings"
)

type Role string

const (
	Staff   Role = "staff"
	Doctor  Role = "doctor"
	Patient Role = "patient"
)

var ErrUnknownRole = errors.New("unknown role")

// All lists every role in a stable order.
func All() []Role {
	return []Role{Staff, Doctor, Patient}
}

// Parse accepts a role name case-insensitively.
func Parse(value string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(value))); r {
	case Staff, Doctor, Patient:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, value)
	}
}

func (r Role) String() string {
	return string(r)
}

func (r Role) Valid() bool {
	_, err := Parse(string(r))

	return err == nil
}
