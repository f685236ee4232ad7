package engine

import (
	"strings"
)

// DefaultTrigger toggles Hangul input when nothing else is configured.
const DefaultTrigger = "ctrl+space"

var modifierAliases = map[string]string{
	"control": "ctrl",
	"ctl":     "ctrl",
	"c":       "ctrl",
	"option":  "alt",
	"opt":     "alt",
	"meta":    "alt",
	"m":       "alt",
	"s":       "shift",
}

var keyAliases = map[string]string{
	"spc":    "space",
	" ":      "space",
	"escape": "esc",
	"return": "enter",
	"bs":     "backspace",
}

// chordAliases covers chords that terminals report under another name.
var chordAliases = map[string]string{
	"ctrl+@": "ctrl+space",
	"ctrl+2": "ctrl+space",
	"ctrl+`": "ctrl+space",
}

// NormalizeKey canonicalizes a chord name such as "Ctrl-Space" or "C+spc" to
// the form bubbletea reports ("ctrl+space"). Modifiers keep ctrl, alt, shift
// order.
func NormalizeKey(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	if len(name) == 1 {
		return name
	}

	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '+' || r == '-' })
	if strings.HasSuffix(name, "++") || strings.HasSuffix(name, "+-") || strings.HasSuffix(name, "--") {
		parts = append(parts, name[len(name)-1:])
	}
	if len(parts) == 0 {
		return name
	}

	var ctrl, alt, shift bool
	for _, part := range parts[:len(parts)-1] {
		if alias, ok := modifierAliases[part]; ok {
			part = alias
		}
		switch part {
		case "ctrl":
			ctrl = true
		case "alt":
			alt = true
		case "shift":
			shift = true
		}
	}

	key := parts[len(parts)-1]
	if alias, ok := keyAliases[key]; ok {
		key = alias
	}

	var b strings.Builder
	if ctrl {
		b.WriteString("ctrl+")
	}
	if alt {
		b.WriteString("alt+")
	}
	if shift {
		b.WriteString("shift+")
	}
	b.WriteString(key)

	chord := b.String()
	if alias, ok := chordAliases[chord]; ok {
		return alias
	}
	return chord
}
