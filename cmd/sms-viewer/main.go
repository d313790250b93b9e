// sms-viewer is a terminal client for a short-message store. It keeps the
// message log on screen by polling the store and sends messages typed into
// the form.
//
// Settings come from SMS_* environment variables (a .env file is read
// first), an optional --config YAML file and flags; see --help. The log goes
// to --log-file since the terminal belongs to the UI.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"sms-viewer/client"
	"sms-viewer/clock"
	"sms-viewer/config"
	"sms-viewer/container"
	"sms-viewer/controller"
	"sms-viewer/credential"
	"sms-viewer/eventloop"
	"sms-viewer/loadbalance"
	"sms-viewer/middleware"
	"sms-viewer/protocol"
	"sms-viewer/registry"
	"sms-viewer/scheduler"
	"sms-viewer/transport"
	"sms-viewer/tui"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

const resolveTimeout = 5 * time.Second

func main() {
	_ = godotenv.Load()
	code, err := run(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "sms-viewer: %v\n", err)
	}
	os.Exit(code)
}

func run(args []string) (int, error) {
	cfg, err := config.Load(args, os.Environ())
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK, nil
		}
		return exitConfig, err
	}

	log, closeLog, err := openLog(cfg)
	if err != nil {
		return exitConfig, err
	}
	defer closeLog()

	cred, err := credential.New(cfg.Identity, cfg.Secret)
	if err != nil {
		return exitConfig, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var etcdRegistry *registry.EtcdRegistry
	if endpoints := cfg.Etcd(); len(endpoints) > 0 {
		etcdRegistry, err = registry.NewEtcdRegistry(endpoints, log)
		if err != nil {
			return exitRuntime, err
		}
		defer func() {
			_ = etcdRegistry.Close()
		}()
	}

	endpoint, err := resolveEndpoint(ctx, cfg, etcdRegistry)
	if err != nil {
		return exitRuntime, err
	}
	log.Info("using message store", "endpoint", endpoint.BaseAddress(), "credential", cred)

	httpTransport, err := transport.NewHTTPTransport(endpoint, cred, transport.Options{
		Timeout: cfg.RequestTimeout,
		Logger:  log,
	})
	if err != nil {
		return exitConfig, err
	}
	defer func() {
		_ = httpTransport.Close()
	}()

	loop := eventloop.New(log)
	requestClient := client.NewClient(httpTransport, loop, log,
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(log),
		middleware.TimeOutMiddleware(cfg.RequestTimeout),
		middleware.RateLimitMiddleware(cfg.SendRate, cfg.SendBurst, protocol.OpSendMessage),
	)
	poller := scheduler.New(clock.Real(), loop, log)

	// the model's actions run on the program goroutine; they only post
	var syncController *controller.Controller
	model := tui.NewModel(fmt.Sprintf("%s @ %s", cred.Identity(), endpoint.BaseAddress()), tui.Actions{
		Send:      func() { loop.Post(syncController.Send) },
		Refresh:   poller.TriggerNow,
		ClearHint: func() { loop.Post(syncController.ClearHint) },
	})
	display := tui.NewDisplay(&model)
	syncController = controller.NewController(requestClient, display, display, display, log)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	display.SetSender(program)

	loopCtx, cancelLoop := context.WithCancel(ctx)
	defer cancelLoop()
	go func() {
		_ = loop.Run(loopCtx)
	}()

	if cfg.Container {
		host := container.NewEtcdHost(etcdRegistry.Client(), cred.Identity(), log)
		container.Attach(loopCtx, host, loop, syncController, log)
		log.Info("attached to host container", "prefix", container.IntentPrefix(cred.Identity()))
	}

	loop.Post(syncController.Fetch)
	if err := poller.Start(cfg.PollInterval, syncController.Fetch); err != nil {
		return exitRuntime, err
	}
	defer poller.Stop()

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return exitRuntime, fmt.Errorf("terminal UI: %w", err)
	}
	return exitOK, nil
}

// resolveEndpoint uses the configured base address, or else discovers a
// store through etcd. Either way the result is fixed for the whole run.
func resolveEndpoint(ctx context.Context, cfg config.Config, reg *registry.EtcdRegistry) (protocol.Endpoint, error) {
	if cfg.BaseAddress != "" {
		return protocol.NewEndpoint(cfg.BaseAddress)
	}

	balancer, err := loadbalance.New(cfg.Balancer)
	if err != nil {
		return protocol.Endpoint{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()
	return client.ResolveEndpoint(ctx, reg, balancer, cfg.ServiceName, cfg.Identity)
}

func openLog(cfg config.Config) (*slog.Logger, func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	log := slog.New(slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level}))
	return log, func() { _ = file.Close() }, nil
}
