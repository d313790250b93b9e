package registry

import (
	"context"
	"sync"

	"github.com/samber/lo"
)

// StaticRegistry is an in-memory Registry for runs without etcd and for
// tests. Watch emits the current list once and again after every change.
type StaticRegistry struct {
	mu       sync.Mutex
	services map[string][]ServiceInstance
	watchers map[string][]chan []ServiceInstance
}

func NewStaticRegistry() *StaticRegistry {
	return &StaticRegistry{
		services: make(map[string][]ServiceInstance),
		watchers: make(map[string][]chan []ServiceInstance),
	}
}

// Register replaces any instance with the same address. ttl is ignored.
func (r *StaticRegistry) Register(_ context.Context, serviceName string, instance ServiceInstance, _ int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := lo.Reject(r.services[serviceName], func(in ServiceInstance, _ int) bool {
		return in.Addr == instance.Addr
	})
	r.services[serviceName] = append(kept, instance)
	r.notify(serviceName)
	return nil
}

func (r *StaticRegistry) Deregister(_ context.Context, serviceName string, addr string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[serviceName] = lo.Reject(r.services[serviceName], func(in ServiceInstance, _ int) bool {
		return in.Addr == addr
	})
	r.notify(serviceName)
	return nil
}

func (r *StaticRegistry) Discover(_ context.Context, serviceName string) ([]ServiceInstance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ServiceInstance(nil), r.services[serviceName]...), nil
}

func (r *StaticRegistry) Watch(ctx context.Context, serviceName string) <-chan []ServiceInstance {
	ch := make(chan []ServiceInstance, 1)

	r.mu.Lock()
	r.watchers[serviceName] = append(r.watchers[serviceName], ch)
	ch <- append([]ServiceInstance(nil), r.services[serviceName]...)
	r.mu.Unlock()

	go func() {
		<-ctx.Done()
		r.mu.Lock()
		defer r.mu.Unlock()
		r.watchers[serviceName] = lo.Without(r.watchers[serviceName], ch)
		close(ch)
	}()

	return ch
}

// notify keeps only the latest list in each watcher's buffer. Callers hold mu.
func (r *StaticRegistry) notify(serviceName string) {
	snapshot := append([]ServiceInstance(nil), r.services[serviceName]...)
	for _, ch := range r.watchers[serviceName] {
		select {
		case <-ch:
		default:
		}
		ch <- snapshot
	}
}
