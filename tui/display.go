package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Messages the Display sends into the running program.
type (
	contentMsg   struct{ text string }
	hintMsg      struct{ text string }
	alertMsg     struct{ text string }
	scrollEndMsg struct{}
	clearTextMsg struct{}
	focusTextMsg struct{}
)

// Sender is the part of *tea.Program the Display needs.
type Sender interface {
	Send(msg tea.Msg)
}

// inputMirror holds the latest form values so the event loop can read them
// without reaching into the model, which belongs to the program goroutine.
type inputMirror struct {
	mu    sync.Mutex
	agent string
	text  string
}

func (m *inputMirror) set(agent, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.agent = agent
	m.text = text
}

func (m *inputMirror) get() (agent, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.agent, m.text
}

func (m *inputMirror) clearText() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = ""
}

// Display is the controller's view of the terminal: display sink, input
// source and alerter in one. It is called from the event loop and only
// ever talks to the model through messages.
type Display struct {
	sender Sender
	mirror *inputMirror
}

// NewDisplay binds the Display to model's form. Attach the running program
// with SetSender before the event loop starts.
func NewDisplay(model *Model) *Display {
	return &Display{mirror: model.mirror}
}

func (d *Display) SetSender(sender Sender) {
	d.sender = sender
}

func (d *Display) SetMessageContent(text string) { d.sender.Send(contentMsg{text: text}) }
func (d *Display) SetStatusHint(text string)     { d.sender.Send(hintMsg{text: text}) }
func (d *Display) ScrollToEnd()                  { d.sender.Send(scrollEndMsg{}) }
func (d *Display) Alert(text string)             { d.sender.Send(alertMsg{text: text}) }
func (d *Display) FocusMessageInput()            { d.sender.Send(focusTextMsg{}) }

// ClearMessageText empties the mirror at once, so a read right after sees
// the cleared field even before the model has caught up.
func (d *Display) ClearMessageText() {
	d.mirror.clearText()
	d.sender.Send(clearTextMsg{})
}

func (d *Display) ReadAgentIdentifier() string {
	agent, _ := d.mirror.get()
	return agent
}

func (d *Display) ReadMessageText() string {
	_, text := d.mirror.get()
	return text
}
