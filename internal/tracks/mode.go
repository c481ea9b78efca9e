package tracks

import (
	"strings"

	"github.com/pkg/errors"
)

// Mode selects how a track reacts to its button
type Mode uint8

const (
	// ModeToggle plays and pauses; a long press rewinds
	ModeToggle Mode = iota
	// ModeFire restarts from the beginning on every press; a long press stops
	ModeFire
	// ModeFireForget starts an independent copy of the sound on every press
	ModeFireForget
)

var modeNames = map[Mode]string{
	ModeToggle:     "toggle",
	ModeFire:       "fire",
	ModeFireForget: "fireforget",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// ParseMode accepts toggle, fire and fireforget (also fire_forget and fire-and-forget)
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "toggle":
		return ModeToggle, nil
	case "fire":
		return ModeFire, nil
	case "fireforget", "fire_forget", "fire-forget", "fire-and-forget", "fire_and_forget":
		return ModeFireForget, nil
	}
	return 0, errors.Errorf("unknown track mode %q", s)
}

func (m Mode) MarshalText() ([]byte, error) {
	if _, ok := modeNames[m]; !ok {
		return nil, errors.Errorf("unknown track mode %d", m)
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// LongPressPolicy is the state a toggle track is left in after a long-press rewind
type LongPressPolicy uint8

const (
	LongPressPause LongPressPolicy = iota
	LongPressPlay
)

func (p LongPressPolicy) String() string {
	if p == LongPressPlay {
		return "play"
	}
	return "pause"
}

func (p LongPressPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *LongPressPolicy) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "pause", "paused":
		*p = LongPressPause
	case "play", "playing":
		*p = LongPressPlay
	default:
		return errors.Errorf("unknown long press policy %q", text)
	}
	return nil
}
