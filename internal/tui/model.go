// Package tui hosts an engine.Session inside a bubbletea program.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hanim/internal/engine"
	"hanim/internal/logger"
)

const maxHistory = 200

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	hangulBadge = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("42")).
			Padding(0, 1)

	latinBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("240")).
			Padding(0, 1)

	historyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
)

// inputBuffer exposes a textinput.Model as an engine.Buffer. textinput has
// no selection, so the anchor always follows the cursor.
type inputBuffer struct {
	input *textinput.Model
}

func (b inputBuffer) Text() string              { return b.input.Value() }
func (b inputBuffer) CursorPosition() int       { return b.input.Position() }
func (b inputBuffer) SelectionAnchor() int      { return b.input.Position() }
func (b inputBuffer) SetText(text string)       { b.input.SetValue(text) }
func (b inputBuffer) SetCursorPosition(pos int) { b.input.SetCursor(pos) }
func (b inputBuffer) SetSelectionAnchor(int)    {}
func (b inputBuffer) Limit() int                { return b.input.CharLimit }

type Model struct {
	session *engine.Session
	input   textinput.Model
	lines   []string
	width   int
	log     *slog.Logger
}

func New(session *engine.Session, log *slog.Logger) *Model {
	if log == nil {
		log = logger.Discard()
	}
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "type here"
	ti.CharLimit = 1024
	ti.Width = 60
	ti.Focus()

	return &Model{session: session, input: ti, log: log}
}

// Lines returns the committed lines, oldest first.
func (m *Model) Lines() []string { return m.lines }

func (m *Model) Value() string { return m.input.Value() }

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.session.HandleKey(msg.String()) {
			m.log.Debug("toggled input mode", "mode", m.session.Mode())
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			m.commit()
			return m, nil
		case tea.KeyBackspace:
			if m.session.Backspace(m.buffer()) {
				return m, nil
			}
		case tea.KeyRunes:
			if r, ok := singleRune(msg); ok && m.session.Enabled() {
				m.session.Type(m.buffer(), string(r), unicode.IsUpper(r))
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > 12 {
			m.input.Width = msg.Width - 12
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("hanim"))
	s.WriteString("\n")

	for _, line := range m.lines {
		s.WriteString(historyStyle.Render(line))
		s.WriteString("\n")
	}
	if len(m.lines) > 0 {
		s.WriteString("\n")
	}

	if m.session.Enabled() {
		s.WriteString(hangulBadge.Render("한"))
	} else {
		s.WriteString(latinBadge.Render("EN"))
	}
	s.WriteString(" ")
	s.WriteString(m.input.View())
	s.WriteString("\n\n")

	s.WriteString(subtleStyle.Render(fmt.Sprintf("%s=toggle • enter=commit • esc/ctrl+c=quit", m.session.Trigger())))

	return boxStyle.Render(s.String())
}

func (m *Model) buffer() inputBuffer {
	return inputBuffer{input: &m.input}
}

func (m *Model) commit() {
	m.lines = append(m.lines, m.input.Value())
	if len(m.lines) > maxHistory {
		m.lines = m.lines[len(m.lines)-maxHistory:]
	}
	m.input.Reset()
}

func singleRune(msg tea.KeyMsg) (rune, bool) {
	if msg.Alt || msg.Paste || len(msg.Runes) != 1 {
		return 0, false
	}
	return msg.Runes[0], true
}

// Run shows the editor until the user quits and returns the committed lines.
func Run(ctx context.Context, session *engine.Session, log *slog.Logger) ([]string, error) {
	m := New(session, log)
	if _, err := tea.NewProgram(m, tea.WithContext(ctx)).Run(); err != nil {
		return m.Lines(), fmt.Errorf("running tui: %w", err)
	}
	return m.Lines(), nil
}
