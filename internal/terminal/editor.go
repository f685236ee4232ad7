// Package terminal is a raw-mode line editor that types Hangul through an
// engine.Session.
package terminal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"unicode"

	"github.com/eiannone/keyboard"
	"github.com/mattn/go-runewidth"

	"hanim/internal/backend"
	"hanim/internal/engine"
	"hanim/internal/logger"
)

const (
	clearLine = "\r\033[2K"
	badgeOn   = "[한] "
	badgeOff  = "[EN] "
)

// Editor owns one line of input. Enter writes the line to the output writer
// and starts a new one; Esc, Ctrl+C and Ctrl+D on an empty line end the
// session.
type Editor struct {
	session *engine.Session
	buf     *backend.TextBuffer
	out     io.Writer
	screen  io.Writer
	log     *slog.Logger
}

func NewEditor(session *engine.Session, out, screen io.Writer, log *slog.Logger) *Editor {
	if log == nil {
		log = logger.Discard()
	}
	return &Editor{
		session: session,
		buf:     backend.NewTextBuffer(0),
		out:     out,
		screen:  screen,
		log:     log,
	}
}

func (e *Editor) Buffer() *backend.TextBuffer { return e.buf }

// Run reads keys until the user quits or ctx is cancelled.
func (e *Editor) Run(ctx context.Context) error {
	events, err := keyboard.GetKeys(16)
	if err != nil {
		return fmt.Errorf("opening keyboard: %w", err)
	}
	defer keyboard.Close()

	e.log.Info("line editor started", "trigger", e.session.Trigger(), "mode", e.session.Mode())
	e.render()
	for {
		select {
		case <-ctx.Done():
			fmt.Fprint(e.screen, "\r\n")
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Err != nil {
				return fmt.Errorf("reading key: %w", ev.Err)
			}
			if done := e.Handle(ev.Rune, ev.Key); done {
				fmt.Fprint(e.screen, "\r\n")
				return nil
			}
			e.render()
		}
	}
}

// Handle applies one key event and reports whether the editor should stop.
func (e *Editor) Handle(ch rune, key keyboard.Key) bool {
	if e.session.HandleKey(KeyName(ch, key)) {
		e.log.Debug("toggled input mode", "mode", e.session.Mode())
		return false
	}

	if key == 0 && ch != 0 {
		e.session.Type(e.buf, string(ch), unicode.IsUpper(ch))
		return false
	}

	switch key {
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		return true
	case keyboard.KeyCtrlD:
		return e.buf.Len() == 0
	case keyboard.KeyEnter:
		e.commit()
	case keyboard.KeySpace:
		e.buf.WriteText(" ")
	case keyboard.KeyTab:
		e.buf.WriteText("\t")
	case keyboard.KeyBackspace, keyboard.KeyBackspace2:
		if !e.session.Backspace(e.buf) {
			e.buf.DeleteBackward()
		}
	case keyboard.KeyDelete:
		e.buf.DeleteForward()
	case keyboard.KeyArrowLeft:
		e.buf.MoveLeft(false)
	case keyboard.KeyArrowRight:
		e.buf.MoveRight(false)
	case keyboard.KeyHome, keyboard.KeyCtrlA:
		e.buf.Home(false)
	case keyboard.KeyEnd, keyboard.KeyCtrlE:
		e.buf.End(false)
	case keyboard.KeyCtrlU:
		e.buf.Reset()
	}
	return false
}

func (e *Editor) commit() {
	line := e.buf.Text()
	fmt.Fprint(e.screen, "\r\n")
	if _, err := fmt.Fprintln(e.out, line); err != nil {
		e.log.Error("writing line", "error", err)
	}
	e.buf.Reset()
}

func (e *Editor) render() {
	badge := badgeOff
	if e.session.Enabled() {
		badge = badgeOn
	}
	text := []rune(e.buf.Text())
	tail := string(text[e.buf.CursorPosition():])

	fmt.Fprint(e.screen, clearLine, badge, string(text))
	if w := runewidth.StringWidth(tail); w > 0 {
		fmt.Fprintf(e.screen, "\033[%dD", w)
	}
}

var namedKeys = map[keyboard.Key]string{
	keyboard.KeyCtrlSpace:  "ctrl+space",
	keyboard.KeyEsc:        "esc",
	keyboard.KeyEnter:      "enter",
	keyboard.KeyTab:        "tab",
	keyboard.KeySpace:      "space",
	keyboard.KeyBackspace2: "backspace",
	keyboard.KeyDelete:     "delete",
	keyboard.KeyInsert:     "insert",
	keyboard.KeyHome:       "home",
	keyboard.KeyEnd:        "end",
	keyboard.KeyPgup:       "pgup",
	keyboard.KeyPgdn:       "pgdown",
	keyboard.KeyArrowUp:    "up",
	keyboard.KeyArrowDown:  "down",
	keyboard.KeyArrowLeft:  "left",
	keyboard.KeyArrowRight: "right",
	keyboard.KeyF1:         "f1",
	keyboard.KeyF2:         "f2",
	keyboard.KeyF3:         "f3",
	keyboard.KeyF4:         "f4",
	keyboard.KeyF5:         "f5",
	keyboard.KeyF6:         "f6",
	keyboard.KeyF7:         "f7",
	keyboard.KeyF8:         "f8",
	keyboard.KeyF9:         "f9",
	keyboard.KeyF10:        "f10",
	keyboard.KeyF11:        "f11",
	keyboard.KeyF12:        "f12",
}

// KeyName names a key event the way engine.NormalizeKey spells chords.
func KeyName(ch rune, key keyboard.Key) string {
	if key == 0 && ch != 0 {
		return string(ch)
	}
	if name, ok := namedKeys[key]; ok {
		return name
	}
	// Ctrl+A .. Ctrl+Z arrive as 0x01 .. 0x1A; a few collide with named keys
	// above (Tab, Enter, Backspace) and resolve to those.
	if key >= keyboard.KeyCtrlA && key <= keyboard.KeyCtrlZ {
		return "ctrl+" + string(rune('a'+key-keyboard.KeyCtrlA))
	}
	return ""
}
