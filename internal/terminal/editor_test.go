package terminal

import (
	"bytes"
	"testing"

	"github.com/eiannone/keyboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hanim/internal/engine"
	"hanim/internal/layout"
)

func newEditor(t *testing.T) (*Editor, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	l, err := layout.Load(layout.DefaultName)
	require.NoError(t, err)

	var out, screen bytes.Buffer
	return NewEditor(engine.New(l), &out, &screen, nil), &out, &screen
}

func typeRunes(e *Editor, text string) {
	for _, r := range text {
		if r == ' ' {
			e.Handle(0, keyboard.KeySpace)
			continue
		}
		e.Handle(r, 0)
	}
}

func TestEditorTogglesAndComposes(t *testing.T) {
	e, out, _ := newEditor(t)

	typeRunes(e, "hi ")
	assert.False(t, e.Handle(0, keyboard.KeyCtrlSpace))
	assert.True(t, e.session.Enabled())
	typeRunes(e, "gksrmf")
	assert.Equal(t, "hi 한글", e.Buffer().Text())

	e.Handle(0, keyboard.KeyEnter)
	assert.Equal(t, "hi 한글\n", out.String())
	assert.Equal(t, "", e.Buffer().Text())
	assert.True(t, e.session.Enabled(), "mode survives a commit")
}

func TestEditorBackspace(t *testing.T) {
	e, _, _ := newEditor(t)
	typeRunes(e, "a ")
	e.Handle(0, keyboard.KeyCtrlSpace)
	typeRunes(e, "rkqt")
	require.Equal(t, "a 값", e.Buffer().Text())

	e.Handle(0, keyboard.KeyBackspace2)
	assert.Equal(t, "a 갑", e.Buffer().Text())
	e.Handle(0, keyboard.KeyBackspace)
	e.Handle(0, keyboard.KeyBackspace)
	assert.Equal(t, "a ㄱ", e.Buffer().Text())
	e.Handle(0, keyboard.KeyBackspace)
	assert.Equal(t, "a ", e.Buffer().Text())
	e.Handle(0, keyboard.KeyBackspace)
	assert.Equal(t, "a", e.Buffer().Text())
}

func TestEditorCursorMovement(t *testing.T) {
	e, _, _ := newEditor(t)
	e.Handle(0, keyboard.KeyCtrlSpace)
	typeRunes(e, "rkek")
	require.Equal(t, "가다", e.Buffer().Text())

	e.Handle(0, keyboard.KeyArrowLeft)
	typeRunes(e, "s")
	assert.Equal(t, "간다", e.Buffer().Text())

	e.Handle(0, keyboard.KeyHome)
	e.Handle(0, keyboard.KeyDelete)
	assert.Equal(t, "다", e.Buffer().Text())

	e.Handle(0, keyboard.KeyEnd)
	e.Handle(0, keyboard.KeyCtrlU)
	assert.Equal(t, "", e.Buffer().Text())
}

func TestEditorQuit(t *testing.T) {
	e, _, _ := newEditor(t)
	assert.True(t, e.Handle(0, keyboard.KeyEsc))
	assert.True(t, e.Handle(0, keyboard.KeyCtrlC))
	assert.True(t, e.Handle(0, keyboard.KeyCtrlD))

	typeRunes(e, "x")
	assert.False(t, e.Handle(0, keyboard.KeyCtrlD), "ctrl+d only quits on an empty line")
}

func TestEditorRender(t *testing.T) {
	e, _, screen := newEditor(t)
	e.Handle(0, keyboard.KeyCtrlSpace)
	typeRunes(e, "gksrmf")
	e.Handle(0, keyboard.KeyArrowLeft)

	e.render()
	assert.Contains(t, screen.String(), badgeOn+"한글")
	assert.Contains(t, screen.String(), "\033[2D", "cursor steps back over one wide character")
}

func TestKeyName(t *testing.T) {
	assert.Equal(t, "ctrl+space", KeyName(0, keyboard.KeyCtrlSpace))
	assert.Equal(t, "a", KeyName('a', 0))
	assert.Equal(t, "ctrl+k", KeyName(0, keyboard.KeyCtrlK))
	assert.Equal(t, "enter", KeyName(0, keyboard.KeyEnter))
	assert.Equal(t, "f5", KeyName(0, keyboard.KeyF5))
	assert.Equal(t, "ctrl+space", engine.NormalizeKey(KeyName(0, keyboard.KeyCtrlSpace)))
}

func TestEditorCustomTrigger(t *testing.T) {
	l, err := layout.Load(layout.DefaultName)
	require.NoError(t, err)
	e := NewEditor(engine.New(l, engine.WithTrigger("ctrl+k")), &bytes.Buffer{}, &bytes.Buffer{}, nil)

	e.Handle(0, keyboard.KeyCtrlSpace)
	assert.False(t, e.session.Enabled())
	e.Handle(0, keyboard.KeyCtrlK)
	assert.True(t, e.session.Enabled())
}
