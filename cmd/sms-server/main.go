// sms-server runs a development short-message store for sms-viewer.
//
//	sms-server --addr 127.0.0.1:8080 --users alice:wonderland,bob:builder
//
// With --etcd it registers itself so viewers can discover it.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/spf13/pflag"

	"sms-viewer/clock"
	"sms-viewer/registry"
	"sms-viewer/server"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

const shutdownTimeout = 5 * time.Second

func main() {
	code, err := run(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "sms-server: %v\n", err)
	}
	os.Exit(code)
}

func run(args []string) (int, error) {
	var addr, advertise, users, etcd, service, logLevel string

	flagSet := pflag.NewFlagSet("sms-server", pflag.ContinueOnError)
	flagSet.StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	flagSet.StringVar(&advertise, "advertise", "", "base address to register (default: http://<listen address>)")
	flagSet.StringVar(&users, "users", "alice:wonderland,bob:builder", "agents as name:password,name:password")
	flagSet.StringVar(&etcd, "etcd", "", "comma-separated etcd endpoints to register with")
	flagSet.StringVar(&service, "service", server.DefaultServiceName, "service name to register under")
	flagSet.StringVar(&logLevel, "log-level", "INFO", "DEBUG, INFO, WARN or ERROR")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK, nil
		}
		return exitConfig, err
	}

	log := logs.GetLoggerFromString(logLevel)

	agents, err := server.ParseAgents(users)
	if err != nil {
		return exitConfig, err
	}
	if len(agents) == 0 {
		return exitConfig, fmt.Errorf("at least one agent is required")
	}
	store := server.NewShortMessageService(clock.Real())
	for name, password := range agents {
		if err := store.AddAgent(name, password); err != nil {
			return exitConfig, err
		}
	}

	var reg registry.Registry
	if etcd != "" {
		etcdRegistry, err := registry.NewEtcdRegistry(strings.Split(etcd, ","), log)
		if err != nil {
			return exitRuntime, err
		}
		defer func() {
			_ = etcdRegistry.Close()
		}()
		reg = etcdRegistry
	}

	svr := server.NewServer(store, log, server.WithServiceName(service))
	served := make(chan error, 1)
	go func() {
		served <- svr.Serve("tcp", addr, advertise, reg)
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-served:
		if err != nil {
			return exitRuntime, err
		}
		return exitOK, nil
	case sig := <-signals:
		log.Info("shutting down", "signal", sig.String())
	}

	if err := svr.Shutdown(shutdownTimeout); err != nil {
		return exitRuntime, err
	}
	if err := <-served; err != nil {
		return exitRuntime, err
	}
	return exitOK, nil
}
