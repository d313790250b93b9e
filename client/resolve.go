package client

import (
	"context"
	"fmt"

	smserrors "sms-viewer/errors"
	"sms-viewer/loadbalance"
	"sms-viewer/protocol"
	"sms-viewer/registry"
)

// ResolveEndpoint discovers the registered stores for service and lets the
// balancer pick one for key. It runs once at startup; the Endpoint it
// returns is then fixed for the client's lifetime.
func ResolveEndpoint(ctx context.Context, reg registry.Registry, bal loadbalance.Balancer, service, key string) (protocol.Endpoint, error) {
	instances, err := reg.Discover(ctx, service)
	if err != nil {
		return protocol.Endpoint{}, fmt.Errorf("resolve %s: %w", service, err)
	}
	if len(instances) == 0 {
		return protocol.Endpoint{}, fmt.Errorf("resolve %s: %w", service, smserrors.ErrNoInstances)
	}

	instance, err := bal.Pick(key, instances)
	if err != nil {
		return protocol.Endpoint{}, fmt.Errorf("resolve %s: %w", service, err)
	}

	endpoint, err := protocol.NewEndpoint(instance.Addr)
	if err != nil {
		return protocol.Endpoint{}, fmt.Errorf("resolve %s: instance %q: %w", service, instance.Addr, err)
	}
	return endpoint, nil
}
