package container

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	clientv3 "go.etcd.io/etcd/client/v3"

	"sms-viewer/controller"
	"sms-viewer/registry"
)

// EtcdHost reads intents put under /sms-viewer/intents/{identity}/. Each
// put of a JSON-encoded Intent is one notification; deletes are ignored.
type EtcdHost struct {
	client   *clientv3.Client
	identity string
	log      *slog.Logger
}

func NewEtcdHost(client *clientv3.Client, identity string, log *slog.Logger) *EtcdHost {
	return &EtcdHost{client: client, identity: identity, log: log}
}

func IntentPrefix(identity string) string {
	return registry.KeyPrefix + "intents/" + identity + "/"
}

func (h *EtcdHost) Intents(ctx context.Context) <-chan controller.Intent {
	out := make(chan controller.Intent)

	go func() {
		defer close(out)
		watch := h.client.Watch(ctx, IntentPrefix(h.identity), clientv3.WithPrefix())
		for resp := range watch {
			if err := resp.Err(); err != nil {
				h.log.Warn("intent watch failed", "identity", h.identity, "error", err)
				continue
			}
			for _, ev := range resp.Events {
				if ev.Type != clientv3.EventTypePut {
					continue
				}
				var intent controller.Intent
				if err := json.Unmarshal(ev.Kv.Value, &intent); err != nil {
					h.log.Warn("skipping malformed intent", "key", string(ev.Kv.Key), "error", err)
					continue
				}
				select {
				case out <- intent:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

// Publish puts intent for identity under a key named by id.
func Publish(ctx context.Context, client *clientv3.Client, identity, id string, intent controller.Intent) error {
	val, err := json.Marshal(intent)
	if err != nil {
		return err
	}
	key := IntentPrefix(identity) + id
	if _, err := client.Put(ctx, key, string(val)); err != nil {
		return fmt.Errorf("publish intent %s: %w", key, err)
	}
	return nil
}
