package registry

import "context"

// KeyPrefix roots every key this project stores in etcd.
const KeyPrefix = "/sms-viewer/"

// ServiceInstance describes one running message store.
type ServiceInstance struct {
	Addr    string `json:"addr"`    // base address, e.g. http://10.0.0.4:8080
	Weight  int    `json:"weight"`  // weight for load balancing
	Version string `json:"version"`
}

type Registry interface {
	Register(ctx context.Context, serviceName string, instance ServiceInstance, ttl int64) error
	Deregister(ctx context.Context, serviceName string, addr string) error
	Discover(ctx context.Context, serviceName string) ([]ServiceInstance, error)
	Watch(ctx context.Context, serviceName string) <-chan []ServiceInstance
}

func serviceKey(serviceName, addr string) string {
	return servicePrefix(serviceName) + addr
}

func servicePrefix(serviceName string) string {
	return KeyPrefix + serviceName + "/"
}
