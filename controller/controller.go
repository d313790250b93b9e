//go:generate go run go.uber.org/mock/mockgen -source=controller.go -destination=../mocks/mock_controller.go -package=mocks

// Package controller keeps the viewer's display in step with the message
// store.
//
// Every method runs on the event loop, and so do the continuations of the
// calls it starts. DisplayState is therefore only ever touched from one
// goroutine and carries no lock.
//
// Fetches may overlap: a tick can fire while the previous fetch is still in
// flight. Whichever response completes last overwrites the blob, even when
// it belongs to the older request.
package controller

import (
	"log/slog"

	"sms-viewer/message"
	"sms-viewer/protocol"
)

// DisplaySink renders what the controller decides to show.
type DisplaySink interface {
	SetMessageContent(text string)
	SetStatusHint(text string)
	ScrollToEnd()
}

// InputSource is the user's side of the form.
type InputSource interface {
	ReadAgentIdentifier() string
	ReadMessageText() string
	ClearMessageText()
	FocusMessageInput()
}

// Alerter raises an alert the user must dismiss.
type Alerter interface {
	Alert(text string)
}

// Requester dispatches one call and later runs exactly one continuation on
// the event loop.
type Requester interface {
	Call(method message.Method, operation string, params []string, onSuccess func(payload string), onFailure func(errPayload string))
}

// DisplayState is what the user currently sees. Both fields are overwritten,
// never appended to.
type DisplayState struct {
	MessageBlob string
	StatusHint  string
}

type Controller struct {
	requester Requester
	sink      DisplaySink
	input     InputSource
	alerter   Alerter
	log       *slog.Logger

	state DisplayState
}

func NewController(requester Requester, sink DisplaySink, input InputSource, alerter Alerter, log *slog.Logger) *Controller {
	return &Controller{
		requester: requester,
		sink:      sink,
		input:     input,
		alerter:   alerter,
		log:       log,
	}
}

// Fetch asks for the full message log. On success the blob is replaced and
// the view scrolled to the newest line; on failure the error text replaces
// the blob and one alert is raised.
func (c *Controller) Fetch() {
	c.requester.Call(message.MethodRead, protocol.OpGetMessages, nil,
		func(payload string) {
			c.state.MessageBlob = payload
			c.sink.SetMessageContent(payload)
			c.sink.ScrollToEnd()
		},
		func(errPayload string) {
			c.log.Warn("fetch failed", "error", errPayload)
			c.state.MessageBlob = errPayload
			c.sink.SetMessageContent(errPayload)
			c.alerter.Alert(errPayload)
		})
}

// Send submits the current form contents as they are; the store does the
// validating. The message field is cleared and focused right after dispatch,
// before the outcome is known.
func (c *Controller) Send() {
	agent := c.input.ReadAgentIdentifier()
	text := c.input.ReadMessageText()

	c.requester.Call(message.MethodRead, protocol.OpSendMessage, []string{agent, text},
		func(payload string) {
			c.setHint(payload)
		},
		func(errPayload string) {
			c.log.Warn("send failed", "agent", agent, "error", errPayload)
			c.setHint(errPayload)
			c.alerter.Alert(errPayload)
		})

	c.input.ClearMessageText()
	c.input.FocusMessageInput()
}

// ClearHint empties the status hint; the message field calls it on focus and
// on every edit.
func (c *Controller) ClearHint() {
	if c.state.StatusHint == "" {
		return
	}
	c.setHint("")
}

// HandleIntent reacts to a notification from the host container. Unknown
// actions are ignored.
func (c *Controller) HandleIntent(intent Intent) {
	switch intent.Action {
	case ActionRefresh:
		c.Fetch()
	case ActionSetHint:
		c.setHint(intent.Data)
	default:
		c.log.Debug("ignoring intent", "action", intent.Action)
	}
}

// State returns a copy of the current display state.
func (c *Controller) State() DisplayState {
	return c.state
}

func (c *Controller) setHint(text string) {
	c.state.StatusHint = text
	c.sink.SetStatusHint(text)
}
