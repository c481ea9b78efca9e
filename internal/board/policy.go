package board

import (
	"strings"

	"github.com/pkg/errors"
)

// RegisterPolicy decides what Register does with a button that already has a track
type RegisterPolicy uint8

const (
	// RegisterOverwrite replaces the existing track and logs a warning
	RegisterOverwrite RegisterPolicy = iota
	// RegisterReject keeps the existing track and returns ErrOccupied
	RegisterReject
)

func (p RegisterPolicy) String() string {
	if p == RegisterReject {
		return "reject"
	}
	return "overwrite"
}

func (p RegisterPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *RegisterPolicy) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "overwrite":
		*p = RegisterOverwrite
	case "reject":
		*p = RegisterReject
	default:
		return errors.Errorf("unknown registration policy %q", text)
	}
	return nil
}
