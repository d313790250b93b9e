package test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"sms-viewer/client"
	"sms-viewer/clock"
	"sms-viewer/controller"
	"sms-viewer/credential"
	"sms-viewer/eventloop"
	"sms-viewer/loadbalance"
	"sms-viewer/middleware"
	"sms-viewer/protocol"
	"sms-viewer/registry"
	"sms-viewer/server"
	"sms-viewer/transport"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

const serviceName = "sms-store"

// form stands in for the terminal UI: it records what the controller shows
// and plays back what the user typed.
type form struct {
	mu    sync.Mutex
	state formState
}

type formState struct {
	content string
	hint    string
	scrolls int
	alerts  []string
	agent   string
	text    string
	focused bool
}

func (f *form) SetMessageContent(text string) { f.locked(func(s *formState) { s.content = text }) }
func (f *form) SetStatusHint(text string)     { f.locked(func(s *formState) { s.hint = text }) }
func (f *form) ScrollToEnd()                  { f.locked(func(s *formState) { s.scrolls++ }) }
func (f *form) Alert(text string)             { f.locked(func(s *formState) { s.alerts = append(s.alerts, text) }) }
func (f *form) ClearMessageText()             { f.locked(func(s *formState) { s.text = "" }) }
func (f *form) FocusMessageInput()            { f.locked(func(s *formState) { s.focused = true }) }

func (f *form) ReadAgentIdentifier() string { return f.snapshot().agent }
func (f *form) ReadMessageText() string     { return f.snapshot().text }

// enter simulates the user filling in the form, leaving the field unfocused.
func (f *form) enter(agent, text string) {
	f.locked(func(s *formState) {
		s.agent = agent
		s.text = text
		s.focused = false
	})
}

func (f *form) snapshot() formState {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := f.state
	snap.alerts = append([]string(nil), f.state.alerts...)
	return snap
}

func (f *form) locked(fn func(s *formState)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.state)
}

// startStore runs a message store on a free port, registered in reg.
func startStore(t testing.TB, reg registry.Registry, now time.Time) *server.Server {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	svc := server.NewShortMessageService(clock.Fake(now))
	require.NoError(t, svc.AddAgent("alice", "wonderland"))
	require.NoError(t, svc.AddAgent("bob", "builder"))

	svr := server.NewServer(svc, log)
	go func() { _ = svr.Serve("tcp", "127.0.0.1:0", "", reg) }()
	select {
	case <-svr.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("store never became ready")
	}
	t.Cleanup(func() { _ = svr.Shutdown(time.Second) })
	return svr
}

// viewer is one fully wired viewer minus the terminal.
type viewer struct {
	form       *form
	controller *controller.Controller
	loop       *eventloop.Loop
	transport  *transport.HTTPTransport
}

// startViewer wires a viewer the way cmd/sms-viewer does and runs its event
// loop until the test ends.
func startViewer(t testing.TB, reg registry.Registry, identity, secret string) *viewer {
	t.Helper()
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	cred, err := credential.New(identity, secret)
	req.NoError(err)

	bal, err := loadbalance.New(loadbalance.ConsistentHash)
	req.NoError(err)
	endpoint, err := client.ResolveEndpoint(context.Background(), reg, bal, serviceName, identity)
	req.NoError(err)

	tr, err := transport.NewHTTPTransport(endpoint, cred, transport.Options{Timeout: 2 * time.Second, Logger: log})
	req.NoError(err)
	t.Cleanup(func() { _ = tr.Close() })

	loop := eventloop.New(log)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = loop.Run(ctx) }()

	c := client.NewClient(tr, loop, log,
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(log),
		middleware.TimeOutMiddleware(2*time.Second),
		middleware.RateLimitMiddleware(100, 100, protocol.OpSendMessage),
	)
	f := &form{}
	ctrl := controller.NewController(c, f, f, f, log)
	return &viewer{form: f, controller: ctrl, loop: loop, transport: tr}
}

// do runs fn on the viewer's event loop and waits for it.
func (v *viewer) do(fn func()) {
	done := make(chan struct{})
	v.loop.Post(func() {
		fn()
		close(done)
	})
	<-done
}
