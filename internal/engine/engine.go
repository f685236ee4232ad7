package engine

import (
	"log/slog"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"

	"hanim/internal/hangul"
	"hanim/internal/layout"
	"hanim/internal/logger"
	"hanim/internal/types"
)

// Buffer is the host text field. Offsets are rune offsets into Text. SetText
// may reset the cursor and selection; the session restores both afterwards.
type Buffer interface {
	Text() string
	CursorPosition() int
	SelectionAnchor() int
	SetText(text string)
	SetCursorPosition(pos int)
	SetSelectionAnchor(pos int)
}

// SelectionSetter is implemented by buffers that can move the cursor and the
// selection anchor in a single update.
type SelectionSetter interface {
	SetSelection(cursor, anchor int)
}

// Limiter is implemented by buffers that hold at most Limit runes. A
// non-positive limit means no cap.
type Limiter interface {
	Limit() int
}

// TextWriter is implemented by buffers with their own "replace the selection
// with text" operation. Type and Insert use it when available.
type TextWriter interface {
	WriteText(text string)
}

// Session holds the input state of one text field. It is driven from the
// host's event loop and is not safe for concurrent use; give every field its
// own Session.
type Session struct {
	layout  *layout.Layout
	trigger string
	mode    types.InputMode
	log     *slog.Logger
}

type Option func(*Session)

// WithTrigger sets the key chord that toggles the session.
func WithTrigger(name string) Option {
	return func(s *Session) {
		if key := NormalizeKey(name); key != "" {
			s.trigger = key
		}
	}
}

// WithMode sets the initial mode. Sessions start in ModeLatin otherwise.
func WithMode(mode types.InputMode) Option {
	return func(s *Session) { s.mode = mode }
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

func New(l *layout.Layout, opts ...Option) *Session {
	s := &Session{
		layout:  l,
		trigger: DefaultTrigger,
		mode:    types.ModeLatin,
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Mode() types.InputMode { return s.mode }

func (s *Session) Enabled() bool { return s.mode == types.ModeHangul }

func (s *Session) Trigger() string { return s.trigger }

func (s *Session) Layout() *layout.Layout { return s.layout }

func (s *Session) SetMode(mode types.InputMode) {
	if s.mode == mode {
		return
	}
	s.mode = mode
	s.log.Debug("input mode changed", "mode", mode)
}

// Toggle flips the session between Hangul and Latin input. It never touches
// the buffer.
func (s *Session) Toggle() types.InputMode {
	s.SetMode(s.mode.Toggled())
	return s.mode
}

// HandleKey toggles the session when name is the trigger chord. A true result
// means the keystroke was consumed and must not reach the buffer.
func (s *Session) HandleKey(name string) bool {
	if NormalizeKey(name) != s.trigger {
		return false
	}
	s.Toggle()
	return true
}

// HandleInput is called with the text the host is about to write. When the
// session is enabled and typed is a single letter, the letter is mapped
// through the layout. If the character right before the selection is a
// syllable or a jamo, the new jamo is merged into it: that character is
// removed from the buffer, the cursor and anchor move left by one, and the
// returned fragment holds the recomposed text. Otherwise, or when the
// recomposed text would not fit a Limiter's cap, the mapped jamo is returned
// as is and the buffer is left untouched. The host writes the returned
// fragment over the selection.
func (s *Session) HandleInput(buf Buffer, typed string, shifted bool) string {
	if !s.Enabled() {
		return typed
	}
	ch, ok := singleLetter(typed)
	if !ok {
		return typed
	}

	jamo, ok := s.layout.Lookup(keycode(ch), shifted)
	if !ok {
		s.log.Debug("key not in layout", "key", typed)
		return typed
	}

	text := []rune(buf.Text())
	cursor := clamp(buf.CursorPosition(), len(text))
	anchor := clamp(buf.SelectionAnchor(), len(text))
	start, end := min(cursor, anchor), max(cursor, anchor)

	if start == 0 || !hangul.Mergeable(text[start-1]) {
		return string(jamo)
	}

	prev := text[start-1]
	merged := merge(prev, jamo)
	if limit := limitOf(buf); limit > 0 && len(text)-1-(end-start)+utf8.RuneCountInString(merged) > limit {
		// Leave prev in place; the host drops the jamo when the field is full.
		s.log.Debug("merge exceeds buffer limit", "previous", string(prev), "jamo", string(jamo), "limit", limit)
		return string(jamo)
	}

	buf.SetText(string(text[:start-1]) + string(text[start:]))
	moveSelection(buf, cursor-1, anchor-1)

	s.log.Debug("merged jamo", "previous", string(prev), "jamo", string(jamo), "result", merged)
	return merged
}

// Type runs HandleInput and writes the result into the buffer the way the
// host would.
func (s *Session) Type(buf Buffer, typed string, shifted bool) {
	Insert(buf, s.HandleInput(buf, typed, shifted))
}

// Backspace removes the last atomic jamo from the character before the cursor
// (값 -> 갑 -> 가 -> ㄱ). It reports false when the host should delete the
// character itself: the session is disabled, a selection is active, or there
// is nothing to take apart.
func (s *Session) Backspace(buf Buffer) bool {
	if !s.Enabled() {
		return false
	}
	text := []rune(buf.Text())
	cursor := clamp(buf.CursorPosition(), len(text))
	anchor := clamp(buf.SelectionAnchor(), len(text))
	if cursor != anchor || cursor == 0 {
		return false
	}

	prev := text[cursor-1]
	parts := hangul.DecomposeAtomic(prev)
	if len(parts) < 2 {
		return false
	}
	replacement := []rune(hangul.Compose(parts[:len(parts)-1]))

	out := make([]rune, 0, len(text)+len(replacement))
	out = append(out, text[:cursor-1]...)
	out = append(out, replacement...)
	out = append(out, text[cursor:]...)
	buf.SetText(string(out))

	pos := cursor - 1 + len(replacement)
	moveSelection(buf, pos, pos)
	s.log.Debug("split syllable", "previous", string(prev), "result", string(replacement))
	return true
}

// Insert replaces the selection of buf with fragment and puts the cursor
// after it.
func Insert(buf Buffer, fragment string) {
	if w, ok := buf.(TextWriter); ok {
		w.WriteText(fragment)
		return
	}

	text := []rune(buf.Text())
	cursor := clamp(buf.CursorPosition(), len(text))
	anchor := clamp(buf.SelectionAnchor(), len(text))
	start, end := min(cursor, anchor), max(cursor, anchor)
	ins := []rune(fragment)
	if limit := limitOf(buf); limit > 0 {
		room := limit - (len(text) - (end - start))
		ins = ins[:max(0, min(len(ins), room))]
	}

	out := make([]rune, 0, len(text)-(end-start)+len(ins))
	out = append(out, text[:start]...)
	out = append(out, ins...)
	out = append(out, text[end:]...)
	buf.SetText(string(out))

	pos := start + len(ins)
	moveSelection(buf, pos, pos)
}

// merge recomposes prev with a newly typed jamo. The composition is kept only
// when it produced syllables; otherwise the old character is kept and the
// jamo follows it, so ㄱ + ㅅ stays ㄱㅅ and a following vowel can still take
// the ㅅ.
func merge(prev, jamo rune) string {
	seq := append(hangul.DecomposeAtomic(prev), jamo)
	composed := []rune(hangul.Compose(seq))
	if allSyllables(composed) {
		return string(composed)
	}
	return string([]rune{prev, jamo})
}

func limitOf(buf Buffer) int {
	if l, ok := buf.(Limiter); ok {
		return l.Limit()
	}
	return 0
}

func allSyllables(text []rune) bool {
	for _, r := range text {
		if !hangul.IsSyllable(r) {
			return false
		}
	}
	return true
}

func moveSelection(buf Buffer, cursor, anchor int) {
	if setter, ok := buf.(SelectionSetter); ok {
		setter.SetSelection(cursor, anchor)
		return
	}
	buf.SetCursorPosition(cursor)
	buf.SetSelectionAnchor(anchor)
}

func singleLetter(typed string) (rune, bool) {
	if utf8.RuneCountInString(typed) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(typed)
	return r, unicode.IsLetter(r)
}

// keycode maps a typed letter to its base key: fullwidth Latin is folded to
// ASCII and the result uppercased.
func keycode(ch rune) rune {
	if narrow := width.LookupRune(ch).Narrow(); narrow != 0 {
		ch = narrow
	}
	return unicode.ToUpper(ch)
}

func clamp(pos, n int) int {
	if pos < 0 {
		return 0
	}
	if pos > n {
		return n
	}
	return pos
}
