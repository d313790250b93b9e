// Package server is a development short-message store. It serves the fixed
// remote API the viewer talks to, so the viewer can run locally and in
// end-to-end tests:
//
//	GET|POST /getShortMessagesAsString               → message log as text
//	GET|POST /sendShortMessage/{recipient}/{text}     → status line
//
// Every request must carry HTTP Basic credentials of a known agent. Both
// endpoints answer 200 with a plain-text body, including for rejected
// messages; only failed authentication and unknown routes use error codes.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"

	"sms-viewer/protocol"
	"sms-viewer/registry"
)

// DefaultServiceName is the registry name stores announce themselves under.
const DefaultServiceName = "sms-store"

const registrationTTL = 10 // seconds; KeepAlive renews it

type Server struct {
	service     *ShortMessageService
	router      *mux.Router
	serviceName string
	log         *slog.Logger

	httpServer    *http.Server
	listener      net.Listener
	ready         chan struct{}
	readyOnce     sync.Once
	shutdown      atomic.Bool
	registry      registry.Registry // nil when not using discovery
	advertiseAddr string            // base address registered, e.g. http://127.0.0.1:8080
	cancelLease   context.CancelFunc
}

type Option func(*Server)

// WithServiceName changes the name registered in the registry.
func WithServiceName(name string) Option {
	return func(s *Server) { s.serviceName = name }
}

func NewServer(service *ShortMessageService, log *slog.Logger, opts ...Option) *Server {
	s := &Server{
		service:     service,
		serviceName: DefaultServiceName,
		log:         log,
		ready:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	// keep "//" so an empty recipient still reaches the handler
	r.SkipClean(true)
	r.Use(s.loggingMiddleware, s.authMiddleware)

	methods := []string{http.MethodGet, http.MethodPost}
	r.HandleFunc("/"+protocol.OpGetMessages, s.handleGetMessages).Methods(methods...)
	r.HandleFunc("/"+protocol.OpSendMessage+"/{recipient:[^/]*}/{text:[^/]*}", s.handleSendMessage).Methods(methods...)
	return r
}

// Handler exposes the routes, for httptest servers.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve listens on address, optionally registers advertiseAddr under the
// service name, and serves until Shutdown. advertiseAddr is the base address
// viewers should use (a routable host, unlike ":8080"); empty means derive
// it from the listener.
func (s *Server) Serve(network, address, advertiseAddr string, reg registry.Registry) error {
	listener, err := net.Listen(network, address)
	if err != nil {
		return err
	}
	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	if advertiseAddr == "" {
		advertiseAddr = "http://" + listener.Addr().String()
	}
	s.advertiseAddr = advertiseAddr

	if reg != nil {
		ctx, cancel := context.WithCancel(context.Background())
		err := reg.Register(ctx, s.serviceName, registry.ServiceInstance{Addr: advertiseAddr, Weight: 1}, registrationTTL)
		if err != nil {
			cancel()
			_ = listener.Close()
			return fmt.Errorf("register %s: %w", advertiseAddr, err)
		}
		s.registry = reg
		s.cancelLease = cancel
	}

	s.log.Info("message store listening", "addr", listener.Addr().String(), "advertise", advertiseAddr)
	s.readyOnce.Do(func() { close(s.ready) })

	err = s.httpServer.Serve(listener)
	if s.shutdown.Load() && errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Ready is closed once Serve is accepting connections.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr is the base address the server advertises. Valid after Ready.
func (s *Server) Addr() string {
	return s.advertiseAddr
}

// Shutdown deregisters first so viewers stop resolving this store, then
// drains in-flight requests for up to timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if s.registry != nil {
		if err := s.registry.Deregister(ctx, s.serviceName, s.advertiseAddr); err != nil {
			s.log.Warn("deregister failed", "addr", s.advertiseAddr, "error", err)
		}
		s.cancelLease()
	}

	// set before closing so Serve reports a clean exit
	s.shutdown.Store(true)
	if s.httpServer == nil {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("timeout waiting for ongoing requests to finish: %w", err)
	}
	return nil
}

type agentKey struct{}

func agentFrom(r *http.Request) string {
	agent, _ := r.Context().Value(agentKey{}).(string)
	return agent
}

func (s *Server) handleGetMessages(w http.ResponseWriter, r *http.Request) {
	writeText(w, s.service.GetShortMessagesAsString(agentFrom(r)))
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	writeText(w, s.service.SendShortMessage(agentFrom(r), vars["recipient"], vars["text"]))
}

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(body))
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name, password, ok := r.BasicAuth()
		if !ok || !s.service.Authenticate(name, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="sms"`)
			http.Error(w, "Authentication failed", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), agentKey{}, name)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", r.Header.Get("X-Request-Id"),
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
