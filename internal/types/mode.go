package types

import (
	"fmt"
	"strings"
)

// InputMode is the state of an input session. ModeHangul composes typed
// letters; ModeLatin passes them through.
type InputMode int

const (
	ModeLatin InputMode = iota
	ModeHangul
)

func (m InputMode) String() string {
	switch m {
	case ModeHangul:
		return "hangul"
	case ModeLatin:
		return "latin"
	default:
		return "unknown"
	}
}

// Toggled returns the other mode.
func (m InputMode) Toggled() InputMode {
	if m == ModeHangul {
		return ModeLatin
	}
	return ModeHangul
}

func ParseMode(name string) (InputMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "hangul", "korean", "on":
		return ModeHangul, nil
	case "", "latin", "english", "off":
		return ModeLatin, nil
	default:
		return ModeLatin, fmt.Errorf("unknown input mode %q", name)
	}
}
