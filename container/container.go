// Package container connects the viewer to an optional host that pushes
// notifications (intents) at it. The viewer runs the same with or without
// one; the composition root decides whether to Attach.
package container

import (
	"context"
	"log/slog"

	"sms-viewer/controller"
	"sms-viewer/eventloop"
)

// Host delivers intents until ctx ends, then closes the channel.
type Host interface {
	Intents(ctx context.Context) <-chan controller.Intent
}

// IntentHandler is the controller side of the subscription.
type IntentHandler interface {
	HandleIntent(intent controller.Intent)
}

// Attach forwards every intent from host onto the event loop. It returns a
// channel closed once the host stops delivering.
func Attach(ctx context.Context, host Host, dispatcher eventloop.Dispatcher, handler IntentHandler, log *slog.Logger) <-chan struct{} {
	done := make(chan struct{})
	intents := host.Intents(ctx)

	go func() {
		defer close(done)
		for intent := range intents {
			log.Debug("intent received", "action", intent.Action)
			dispatcher.Post(func() {
				handler.HandleIntent(intent)
			})
		}
	}()

	return done
}
