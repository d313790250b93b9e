// Package registry keeps the phonebook of message stores in etcd.
//
//	Key:   /sms-viewer/{ServiceName}/{Addr}
//	Value: JSON-encoded ServiceInstance
//
// Registration uses TTL leases, so a store that dies without deregistering
// drops out once its lease expires.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
)

const dialTimeout = 5 * time.Second

type EtcdRegistry struct {
	client *clientv3.Client // shared, goroutine-safe
	log    *slog.Logger
}

// NewEtcdRegistry connects to the given etcd endpoints.
func NewEtcdRegistry(endpoints []string, log *slog.Logger) (*EtcdRegistry, error) {
	c, err := clientv3.New(clientv3.Config{
		Endpoints:   endpoints,
		DialTimeout: dialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("connect etcd %v: %w", endpoints, err)
	}
	return &EtcdRegistry{client: c, log: log}, nil
}

// Client exposes the underlying connection for other etcd consumers
// (the intent watcher shares it).
func (r *EtcdRegistry) Client() *clientv3.Client {
	return r.client
}

func (r *EtcdRegistry) Close() error {
	return r.client.Close()
}

// Register puts the instance under a fresh lease and keeps the lease alive
// until ctx ends.
//
// leaseID stays local so several servers can share one registry.
func (r *EtcdRegistry) Register(ctx context.Context, serviceName string, instance ServiceInstance, ttl int64) error {
	lease, err := r.client.Grant(ctx, ttl)
	if err != nil {
		return fmt.Errorf("grant lease: %w", err)
	}

	val, err := json.Marshal(instance)
	if err != nil {
		return err
	}

	key := serviceKey(serviceName, instance.Addr)
	if _, err = r.client.Put(ctx, key, string(val), clientv3.WithLease(lease.ID)); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}

	ch, err := r.client.KeepAlive(ctx, lease.ID)
	if err != nil {
		return fmt.Errorf("keep alive %s: %w", key, err)
	}

	// drain so the keep-alive channel never fills
	go func() {
		for range ch {
		}
		r.log.Debug("lease keep-alive stopped", "key", key)
	}()
	r.log.Info("registered instance", "key", key, "ttl", ttl)
	return nil
}

// Deregister removes an instance; stores call it on graceful shutdown.
func (r *EtcdRegistry) Deregister(ctx context.Context, serviceName string, addr string) error {
	key := serviceKey(serviceName, addr)
	if _, err := r.client.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	r.log.Info("deregistered instance", "key", key)
	return nil
}

// Watch emits the full instance list after every change under the service
// prefix. The channel closes when ctx ends.
func (r *EtcdRegistry) Watch(ctx context.Context, serviceName string) <-chan []ServiceInstance {
	ch := make(chan []ServiceInstance, 1)

	go func() {
		defer close(ch)
		watchChan := r.client.Watch(ctx, servicePrefix(serviceName), clientv3.WithPrefix())
		for range watchChan {
			// re-read the whole list rather than applying individual events
			instances, err := r.Discover(ctx, serviceName)
			if err != nil {
				r.log.Warn("rediscover after watch event failed", "service", serviceName, "error", err)
				continue
			}
			select {
			case ch <- instances:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch
}

// Discover lists every instance currently registered for serviceName.
func (r *EtcdRegistry) Discover(ctx context.Context, serviceName string) ([]ServiceInstance, error) {
	resp, err := r.client.Get(ctx, servicePrefix(serviceName), clientv3.WithPrefix())
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", serviceName, err)
	}

	instances := make([]ServiceInstance, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		var instance ServiceInstance
		if err := json.Unmarshal(kv.Value, &instance); err != nil {
			r.log.Warn("skipping malformed instance", "key", string(kv.Key), "error", err)
			continue
		}
		instances = append(instances, instance)
	}

	return instances, nil
}
