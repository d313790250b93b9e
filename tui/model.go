// Package tui is the terminal front end of the viewer: a scrolling message
// log, a recipient field, a message field, a status hint line, and a modal
// alert box.
//
// The model runs on the bubbletea program goroutine. User actions leave it
// through Actions (which the composition root points at the event loop) and
// controller output comes back in through Display as messages.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Actions are the user intents the model forwards. Nil fields are skipped.
type Actions struct {
	Send      func()
	Refresh   func()
	ClearHint func()
}

type field int

const (
	fieldAgent field = iota
	fieldText
)

// rows taken by everything below the log: border, two inputs, hint, help.
const chromeHeight = 6

type Model struct {
	keys    KeyMap
	theme   Theme
	actions Actions
	title   string

	log    viewport.Model
	agent  textinput.Model
	text   textinput.Model
	focus  field
	hint   string
	alerts []string // oldest first; the head is on screen
	mirror *inputMirror

	width  int
	height int
}

// NewModel builds the form with the message field focused. title is shown
// above the log, e.g. the identity and store address.
func NewModel(title string, actions Actions) Model {
	agent := textinput.New()
	agent.Prompt = "To:   "
	agent.Placeholder = "recipient"
	agent.CharLimit = 64

	text := textinput.New()
	text.Prompt = "Text: "
	text.Placeholder = "message"
	text.Focus()

	return Model{
		keys:    DefaultKeyMap,
		theme:   DefaultTheme,
		actions: actions,
		title:   title,
		log:     viewport.New(80, 18),
		agent:   agent,
		text:    text,
		focus:   fieldText,
		mirror:  &inputMirror{},
		width:   80,
		height:  18 + chromeHeight,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.log.Width = msg.Width
		m.log.Height = max(1, msg.Height-chromeHeight-1)
		m.agent.Width = max(1, msg.Width-len(m.agent.Prompt)-1)
		m.text.Width = max(1, msg.Width-len(m.text.Prompt)-1)
		return m, nil

	case contentMsg:
		m.log.SetContent(msg.text)
		return m, nil

	case scrollEndMsg:
		m.log.GotoBottom()
		return m, nil

	case hintMsg:
		m.hint = msg.text
		return m, nil

	case alertMsg:
		m.alerts = append(m.alerts, msg.text)
		return m, nil

	case clearTextMsg:
		m.text.SetValue("")
		m.syncMirror()
		return m, nil

	case focusTextMsg:
		return m, m.focusField(fieldText)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// the alert is modal: nothing else reacts until it is dismissed
	if len(m.alerts) > 0 {
		if key.Matches(msg, m.keys.Dismiss) {
			m.alerts = m.alerts[1:]
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Send):
		m.syncMirror()
		call(m.actions.Send)
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		call(m.actions.Refresh)
		return m, nil

	case key.Matches(msg, m.keys.SwitchFocus):
		if m.focus == fieldAgent {
			return m, m.focusField(fieldText)
		}
		return m, m.focusField(fieldAgent)

	case key.Matches(msg, m.keys.ScrollUp), key.Matches(msg, m.keys.ScrollDown):
		var cmd tea.Cmd
		m.log, cmd = m.log.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	if m.focus == fieldAgent {
		m.agent, cmd = m.agent.Update(msg)
	} else {
		before := m.text.Value()
		m.text, cmd = m.text.Update(msg)
		if m.text.Value() != before {
			call(m.actions.ClearHint)
		}
	}
	m.syncMirror()
	return m, cmd
}

// focusField moves the cursor. Entering the message field clears the hint.
func (m *Model) focusField(f field) tea.Cmd {
	m.focus = f
	if f == fieldText {
		m.agent.Blur()
		call(m.actions.ClearHint)
		return m.text.Focus()
	}
	m.text.Blur()
	return m.agent.Focus()
}

func (m *Model) syncMirror() {
	m.mirror.set(m.agent.Value(), m.text.Value())
}

func call(action func()) {
	if action != nil {
		action()
	}
}

func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.NormalText)
	logStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(m.theme.BorderColor)
	hintStyle := lipgloss.NewStyle().Foreground(m.theme.HintColor)
	helpStyle := lipgloss.NewStyle().Foreground(m.theme.HelpText)

	if len(m.alerts) > 0 {
		return m.alertView()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteByte('\n')
	b.WriteString(logStyle.Width(m.width).Render(m.log.View()))
	b.WriteByte('\n')
	b.WriteString(m.agent.View())
	b.WriteByte('\n')
	b.WriteString(m.text.View())
	b.WriteByte('\n')
	b.WriteString(hintStyle.Render(m.hint))
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) alertView() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.AlertColor).
		Padding(1, 2).
		Width(min(60, max(20, m.width-4)))
	footer := lipgloss.NewStyle().Foreground(m.theme.FaintText).Render("enter to dismiss")
	body := box.Render(m.alerts[0] + "\n\n" + footer)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m Model) helpLine() string {
	bindings := []key.Binding{m.keys.Send, m.keys.SwitchFocus, m.keys.Refresh, m.keys.Quit}
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return strings.Join(parts, " • ")
}
