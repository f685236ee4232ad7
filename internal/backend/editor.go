package backend

// TextBuffer is a single-line text field with a cursor and a selection
// anchor, addressed in runes. The selection spans the runes between cursor
// and anchor; both equal means no selection.
type TextBuffer struct {
	text   []rune
	cursor int
	anchor int
	limit  int
}

// NewTextBuffer returns an empty buffer. A positive limit caps the number of
// runes the buffer holds.
func NewTextBuffer(limit int) *TextBuffer {
	return &TextBuffer{limit: limit}
}

func (b *TextBuffer) Text() string { return string(b.text) }

func (b *TextBuffer) Len() int { return len(b.text) }

func (b *TextBuffer) Limit() int { return b.limit }

func (b *TextBuffer) CursorPosition() int { return b.cursor }

func (b *TextBuffer) SelectionAnchor() int { return b.anchor }

// SetText replaces the content, trimmed to the limit, and moves the cursor
// to the end.
func (b *TextBuffer) SetText(text string) {
	b.text = trimToLimit([]rune(text), b.limit)
	b.cursor = len(b.text)
	b.anchor = b.cursor
}

// SetCursorPosition moves the cursor and clears the selection.
func (b *TextBuffer) SetCursorPosition(pos int) {
	b.cursor = b.clamp(pos)
	b.anchor = b.cursor
}

func (b *TextBuffer) SetSelectionAnchor(pos int) {
	b.anchor = b.clamp(pos)
}

func (b *TextBuffer) SetSelection(cursor, anchor int) {
	b.cursor = b.clamp(cursor)
	b.anchor = b.clamp(anchor)
}

// Selection returns the selected range as start <= end.
func (b *TextBuffer) Selection() (int, int) {
	return min(b.cursor, b.anchor), max(b.cursor, b.anchor)
}

func (b *TextBuffer) SelectedText() string {
	start, end := b.Selection()
	return string(b.text[start:end])
}

// Select marks start..end with the cursor at end.
func (b *TextBuffer) Select(start, end int) {
	b.anchor = b.clamp(start)
	b.cursor = b.clamp(end)
}

func (b *TextBuffer) SelectAll() {
	b.anchor = 0
	b.cursor = len(b.text)
}

// WriteText replaces the selection with text and places the cursor after it.
// Text that would push the buffer past its limit is cut off.
func (b *TextBuffer) WriteText(text string) {
	start, end := b.Selection()
	ins := []rune(text)
	if b.limit > 0 {
		room := b.limit - (len(b.text) - (end - start))
		if room <= 0 {
			ins = nil
		} else {
			ins = trimToLimit(ins, room)
		}
	}

	out := make([]rune, 0, len(b.text)-(end-start)+len(ins))
	out = append(out, b.text[:start]...)
	out = append(out, ins...)
	out = append(out, b.text[end:]...)
	b.text = out
	b.cursor = start + len(ins)
	b.anchor = b.cursor
}

// DeleteBackward removes the selection, or the rune before the cursor when
// nothing is selected.
func (b *TextBuffer) DeleteBackward() {
	start, end := b.Selection()
	if start == end {
		if start == 0 {
			return
		}
		start--
	}
	b.text = append(b.text[:start], b.text[end:]...)
	b.cursor = start
	b.anchor = start
}

// DeleteForward removes the selection, or the rune after the cursor.
func (b *TextBuffer) DeleteForward() {
	start, end := b.Selection()
	if start == end {
		if end == len(b.text) {
			return
		}
		end++
	}
	b.text = append(b.text[:start], b.text[end:]...)
	b.cursor = start
	b.anchor = start
}

// MoveLeft moves the cursor one rune left. With extend the anchor stays
// put and the selection grows; without it an active selection collapses to
// its start.
func (b *TextBuffer) MoveLeft(extend bool) {
	start, end := b.Selection()
	if !extend && start != end {
		b.moveTo(start, false)
		return
	}
	b.moveTo(b.cursor-1, extend)
}

func (b *TextBuffer) MoveRight(extend bool) {
	start, end := b.Selection()
	if !extend && start != end {
		b.moveTo(end, false)
		return
	}
	b.moveTo(b.cursor+1, extend)
}

func (b *TextBuffer) Home(extend bool) { b.moveTo(0, extend) }

func (b *TextBuffer) End(extend bool) { b.moveTo(len(b.text), extend) }

func (b *TextBuffer) Reset() {
	b.text = nil
	b.cursor = 0
	b.anchor = 0
}

func (b *TextBuffer) moveTo(pos int, extend bool) {
	b.cursor = b.clamp(pos)
	if !extend {
		b.anchor = b.cursor
	}
}

func (b *TextBuffer) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(b.text) {
		return len(b.text)
	}
	return pos
}

func trimToLimit(text []rune, limit int) []rune {
	if limit <= 0 || len(text) <= limit {
		return text
	}
	return text[:limit]
}
