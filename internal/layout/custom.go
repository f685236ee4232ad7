package layout

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Override replaces what a single letter key produces.
type Override struct {
	Key     rune
	Normal  rune
	Shifted rune
}

// ParseOverride reads a "[keys]" entry such as `Y = ㅛ,ㅛ`. The key is a
// single Latin letter in either case; the value is one jamo optionally
// followed by a comma and the shifted jamo.
func ParseOverride(key, value string) (Override, error) {
	code, err := resolveKeyCode(key)
	if err != nil {
		return Override{}, err
	}

	parts := strings.SplitN(value, ",", 2)
	normal, err := singleRune(parts[0])
	if err != nil {
		return Override{}, fmt.Errorf("key %s: %w", key, err)
	}
	override := Override{Key: code, Normal: normal}
	if len(parts) == 2 {
		shifted, err := singleRune(parts[1])
		if err != nil {
			return Override{}, fmt.Errorf("key %s shifted: %w", key, err)
		}
		override.Shifted = shifted
	}
	return override, nil
}

// ApplyOverrides returns a copy of l with the overrides applied in order.
func ApplyOverrides(l *Layout, overrides []Override) (*Layout, error) {
	out := l.Clone()
	for _, o := range overrides {
		if err := out.Set(o.Key, Entry{Normal: o.Normal, Shifted: o.Shifted}); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func singleRune(value string) (rune, error) {
	value = strings.TrimSpace(value)
	if utf8.RuneCountInString(value) != 1 {
		return 0, fmt.Errorf("%w: value must be a single jamo, got %q", ErrInvalidOverride, value)
	}
	r, _ := utf8.DecodeRuneInString(value)
	return r, nil
}

func resolveKeyCode(name string) (rune, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	normalized = strings.TrimPrefix(normalized, "KEY_")
	if len(normalized) != 1 || normalized[0] < 'A' || normalized[0] > 'Z' {
		return 0, fmt.Errorf("%w: unknown key name %q", ErrInvalidOverride, name)
	}
	return rune(normalized[0]), nil
}
