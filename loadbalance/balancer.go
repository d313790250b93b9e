// Package loadbalance picks the message store a viewer talks to when more
// than one is registered.
//
//   - RoundRobin:      equal stores, spread viewers evenly
//   - WeightedRandom:  stores of different capacity
//   - ConsistentHash:  the same identity always lands on the same store
package loadbalance

import (
	"fmt"

	smserrors "sms-viewer/errors"
	"sms-viewer/registry"
)

const (
	RoundRobin     = "round-robin"
	WeightedRandom = "weighted-random"
	ConsistentHash = "consistent-hash"
)

// Balancer selects one instance. key is the caller's affinity key (the
// viewer identity); strategies without affinity ignore it.
// Implementations are goroutine-safe.
type Balancer interface {
	Pick(key string, instances []registry.ServiceInstance) (*registry.ServiceInstance, error)
	Name() string
}

// New returns the balancer registered under name.
func New(name string) (Balancer, error) {
	switch name {
	case RoundRobin, "":
		return &RoundRobinBalancer{}, nil
	case WeightedRandom:
		return &WeightedRandomBalancer{}, nil
	case ConsistentHash:
		return NewConsistentHashBalancer(), nil
	default:
		return nil, fmt.Errorf("unknown balancer %q", name)
	}
}

func errNoInstances() error {
	return fmt.Errorf("pick: %w", smserrors.ErrNoInstances)
}
