package layout

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"hanim/internal/hangul"
)

var (
	ErrUnknownLayout   = errors.New("unknown layout")
	ErrInvalidOverride = errors.New("invalid key override")
)

const DefaultName = "dubeolsik"

// Entry is what one letter key produces. Shifted is zero when the key has no
// shifted variant, in which case the shifted lookup falls back to Normal.
type Entry struct {
	Normal  rune
	Shifted rune
}

// Layout maps the base keycodes 'A' through 'Z' to compatibility jamo.
type Layout struct {
	name    string
	mapping map[rune]Entry
}

func NewLayout(name string) *Layout {
	return &Layout{name: name, mapping: make(map[rune]Entry)}
}

func (l *Layout) Name() string { return l.name }

// Lookup returns the jamo produced by the key, picking the shifted variant
// when shifted is set and the key has one.
func (l *Layout) Lookup(code rune, shifted bool) (rune, bool) {
	if l == nil {
		return 0, false
	}
	entry, ok := l.mapping[code]
	if !ok {
		return 0, false
	}
	if shifted && entry.Shifted != 0 {
		return entry.Shifted, true
	}
	if entry.Normal != 0 {
		return entry.Normal, true
	}
	return 0, false
}

// Keys returns the mapped keycodes in ascending order.
func (l *Layout) Keys() []rune {
	keys := lo.Keys(l.mapping)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (l *Layout) Entry(code rune) (Entry, bool) {
	entry, ok := l.mapping[code]
	return entry, ok
}

// Clone returns a copy that can be overridden without touching l.
func (l *Layout) Clone() *Layout {
	out := NewLayout(l.name)
	for code, entry := range l.mapping {
		out.mapping[code] = entry
	}
	return out
}

// Set replaces the entry for a key. Both symbols must be compatibility jamo;
// shifted may be zero.
func (l *Layout) Set(code rune, entry Entry) error {
	if code < 'A' || code > 'Z' {
		return fmt.Errorf("%w: key %q is not a letter key", ErrInvalidOverride, code)
	}
	if !hangul.IsJamo(entry.Normal) {
		return fmt.Errorf("%w: %q is not a jamo", ErrInvalidOverride, entry.Normal)
	}
	if entry.Shifted != 0 && !hangul.IsJamo(entry.Shifted) {
		return fmt.Errorf("%w: %q is not a jamo", ErrInvalidOverride, entry.Shifted)
	}
	l.mapping[code] = entry
	return nil
}

func addRow(mapping map[rune]Entry, keys string, symbols [][]rune) {
	for i, code := range keys {
		entry := Entry{Normal: symbols[i][0]}
		if len(symbols[i]) > 1 {
			entry.Shifted = symbols[i][1]
		}
		mapping[code] = entry
	}
}

func rowOf(s string) [][]rune {
	return lo.Map([]rune(s), func(r rune, _ int) []rune { return []rune{r} })
}

// Dubeolsik builds the standard two-set layout.
func Dubeolsik() *Layout {
	layout := NewLayout(DefaultName)
	mapping := layout.mapping

	addRow(mapping, "QWERTYUIOP", [][]rune{
		{'ㅂ', 'ㅃ'}, {'ㅈ', 'ㅉ'}, {'ㄷ', 'ㄸ'}, {'ㄱ', 'ㄲ'}, {'ㅅ', 'ㅆ'},
		{'ㅛ'}, {'ㅕ'}, {'ㅑ'}, {'ㅐ', 'ㅒ'}, {'ㅔ', 'ㅖ'},
	})
	addRow(mapping, "ASDFGHJKL", rowOf("ㅁㄴㅇㄹㅎㅗㅓㅏㅣ"))
	addRow(mapping, "ZXCVBNM", rowOf("ㅋㅌㅊㅍㅠㅜㅡ"))

	return layout
}

func normalizeName(name string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default", "dubeolsik", "2beolsik", "두벌식":
		return DefaultName, true
	default:
		return "", false
	}
}

func AvailableLayouts() []string {
	return []string{DefaultName}
}

// Load returns a fresh copy of the named layout.
func Load(name string) (*Layout, error) {
	normalized, ok := normalizeName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownLayout, name, strings.Join(AvailableLayouts(), ", "))
	}
	switch normalized {
	case DefaultName:
		return Dubeolsik(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, name)
	}
}
