package loadbalance

import (
	"fmt"
	"hash/crc32"
	"sort"
	"sync"

	"sms-viewer/registry"
)

const defaultReplicas = 100

// ConsistentHashBalancer maps keys onto a hash ring of virtual nodes, so one
// identity keeps hitting the same store while the instance set is stable.
//
//	             0
//	           ╱   ╲
//	      B ●         ● A
//	        │  key ◆─►│      clockwise to the nearest node
//	      C ●         ● A'   (virtual node of A)
//	           ╲   ╱
//
// The ring is rebuilt whenever Pick sees a different instance set.
type ConsistentHashBalancer struct {
	replicas int

	mu      sync.Mutex
	members string // fingerprint of the instance set the ring was built from
	ring    []uint32
	nodes   map[uint32]registry.ServiceInstance
}

func NewConsistentHashBalancer() *ConsistentHashBalancer {
	return &ConsistentHashBalancer{
		replicas: defaultReplicas,
		nodes:    make(map[uint32]registry.ServiceInstance),
	}
}

// add places an instance onto the ring as replicas virtual nodes hashed
// from "{addr}#{i}".
func (b *ConsistentHashBalancer) add(instance registry.ServiceInstance) {
	for i := 0; i < b.replicas; i++ {
		hash := crc32.ChecksumIEEE([]byte(fmt.Sprintf("%s#%d", instance.Addr, i)))
		b.ring = append(b.ring, hash)
		b.nodes[hash] = instance
	}
	sort.Slice(b.ring, func(i, j int) bool {
		return b.ring[i] < b.ring[j]
	})
}

// Pick hashes key and returns the first node at or after it on the ring,
// wrapping to the start.
func (b *ConsistentHashBalancer) Pick(key string, instances []registry.ServiceInstance) (*registry.ServiceInstance, error) {
	if len(instances) == 0 {
		return nil, errNoInstances()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.rebuild(instances)

	hash := crc32.ChecksumIEEE([]byte(key))
	idx := sort.Search(len(b.ring), func(i int) bool {
		return b.ring[i] >= hash
	})
	if idx == len(b.ring) {
		idx = 0
	}

	picked := b.nodes[b.ring[idx]]
	return &picked, nil
}

func (b *ConsistentHashBalancer) Name() string {
	return ConsistentHash
}

// rebuild resets the ring when instances differ from the last set. Callers hold mu.
func (b *ConsistentHashBalancer) rebuild(instances []registry.ServiceInstance) {
	addrs := make([]string, len(instances))
	for i, in := range instances {
		addrs[i] = in.Addr
	}
	sort.Strings(addrs)
	fingerprint := fmt.Sprint(addrs)
	if fingerprint == b.members {
		return
	}

	b.members = fingerprint
	b.ring = b.ring[:0]
	b.nodes = make(map[uint32]registry.ServiceInstance, len(instances)*b.replicas)
	for _, in := range instances {
		b.add(in)
	}
}
