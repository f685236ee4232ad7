package backend

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hanim/internal/engine"
	"hanim/internal/layout"
	"hanim/internal/types"
)

func newSession(t *testing.T) *engine.Session {
	t.Helper()
	l, err := layout.Load(layout.DefaultName)
	require.NoError(t, err)
	return engine.New(l, engine.WithMode(types.ModeHangul))
}

var (
	_ engine.Buffer          = (*TextBuffer)(nil)
	_ engine.SelectionSetter = (*TextBuffer)(nil)
	_ engine.TextWriter      = (*TextBuffer)(nil)
)

func TestSetTextMovesCursorToEnd(t *testing.T) {
	b := NewTextBuffer(0)
	b.SetText("한글")

	assert.Equal(t, "한글", b.Text())
	assert.Equal(t, 2, b.CursorPosition())
	assert.Equal(t, 2, b.SelectionAnchor())
}

func TestCursorIsClamped(t *testing.T) {
	b := NewTextBuffer(0)
	b.SetText("abc")

	b.SetCursorPosition(-4)
	assert.Equal(t, 0, b.CursorPosition())
	b.SetCursorPosition(99)
	assert.Equal(t, 3, b.CursorPosition())

	b.SetSelection(10, -1)
	assert.Equal(t, 3, b.CursorPosition())
	assert.Equal(t, 0, b.SelectionAnchor())
}

func TestSetCursorClearsSelection(t *testing.T) {
	b := NewTextBuffer(0)
	b.SetText("abcd")
	b.SetSelection(3, 1)
	assert.Equal(t, "bc", b.SelectedText())

	b.SetCursorPosition(2)
	assert.Equal(t, "", b.SelectedText())
	assert.Equal(t, 2, b.SelectionAnchor())

	b.Select(0, 2)
	assert.Equal(t, "ab", b.SelectedText())
	assert.Equal(t, 2, b.CursorPosition())
}

func TestWriteTextReplacesSelection(t *testing.T) {
	b := NewTextBuffer(0)
	b.SetText("가나다")
	b.SetSelection(1, 2)

	b.WriteText("XY")
	assert.Equal(t, "가XY다", b.Text())
	assert.Equal(t, 3, b.CursorPosition())
	assert.Equal(t, 3, b.SelectionAnchor())
}

func TestWriteTextHonoursLimit(t *testing.T) {
	b := NewTextBuffer(4)
	b.SetText(strings.Repeat("가", 10))
	require.Equal(t, 4, b.Len(), "SetText trims to the limit")

	b.WriteText("나")
	assert.Equal(t, "가가가가", b.Text(), "full buffer drops input")

	b.SetSelection(4, 2)
	b.WriteText("나다라")
	assert.Equal(t, "가가나다", b.Text())
	assert.Equal(t, 4, b.CursorPosition())
}

func TestDelete(t *testing.T) {
	b := NewTextBuffer(0)
	b.SetText("abcd")

	b.DeleteBackward()
	assert.Equal(t, "abc", b.Text())

	b.SetCursorPosition(0)
	b.DeleteBackward()
	assert.Equal(t, "abc", b.Text(), "nothing before the cursor")

	b.DeleteForward()
	assert.Equal(t, "bc", b.Text())

	b.SelectAll()
	b.DeleteBackward()
	assert.Equal(t, "", b.Text())
	assert.Equal(t, 0, b.CursorPosition())

	b.DeleteForward()
	assert.Equal(t, "", b.Text())
}

func TestMovement(t *testing.T) {
	b := NewTextBuffer(0)
	b.SetText("abcd")

	b.MoveLeft(false)
	b.MoveLeft(true)
	assert.Equal(t, 2, b.CursorPosition())
	assert.Equal(t, 3, b.SelectionAnchor())
	assert.Equal(t, "c", b.SelectedText())

	b.MoveRight(false)
	assert.Equal(t, 3, b.CursorPosition(), "collapses to the selection end")
	assert.Equal(t, 3, b.SelectionAnchor())

	b.Home(true)
	assert.Equal(t, "abc", b.SelectedText())
	b.End(false)
	assert.Equal(t, 4, b.CursorPosition())

	b.MoveRight(false)
	assert.Equal(t, 4, b.CursorPosition())

	b.Reset()
	assert.Equal(t, "", b.Text())
	assert.Equal(t, 0, b.CursorPosition())
}

func TestSessionKeepsCommittedTextAtLimit(t *testing.T) {
	session := newSession(t)
	b := NewTextBuffer(2)
	b.SetText("a안")

	session.Type(b, "k", false)
	assert.Equal(t, "a안", b.Text())
	assert.Equal(t, 2, b.CursorPosition())

	b.SetText("a아")
	session.Type(b, "s", false)
	assert.Equal(t, "a안", b.Text())
}

func TestSessionTypesIntoTextBuffer(t *testing.T) {
	session := newSession(t)
	b := NewTextBuffer(0)

	for _, key := range "dkssudgktpdy" {
		session.Type(b, string(key), false)
	}
	assert.Equal(t, "안녕하세요", b.Text())
	assert.Equal(t, 5, b.CursorPosition())
}
