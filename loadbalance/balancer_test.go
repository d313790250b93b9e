package loadbalance

import (
	"fmt"
	"testing"

	smserrors "sms-viewer/errors"
	"sms-viewer/registry"

	"github.com/stretchr/testify/require"
)

var testInstances = []registry.ServiceInstance{
	{Addr: "http://10.0.0.1:8080", Weight: 10, Version: "1.0"},
	{Addr: "http://10.0.0.2:8080", Weight: 5, Version: "1.0"},
	{Addr: "http://10.0.0.3:8080", Weight: 10, Version: "1.0"},
}

func TestNew(t *testing.T) {
	t.Run("should build every known strategy", func(t *testing.T) {
		req := require.New(t)
		for _, name := range []string{RoundRobin, WeightedRandom, ConsistentHash} {
			b, err := New(name)
			req.NoError(err)
			req.Equal(name, b.Name())
		}
	})

	t.Run("should default to round robin", func(t *testing.T) {
		req := require.New(t)
		b, err := New("")
		req.NoError(err)
		req.Equal(RoundRobin, b.Name())
	})

	t.Run("should reject an unknown strategy", func(t *testing.T) {
		_, err := New("fastest")
		require.Error(t, err)
	})
}

func TestRoundRobin(t *testing.T) {
	t.Run("should cycle through the instances and wrap around", func(t *testing.T) {
		req := require.New(t)
		b := &RoundRobinBalancer{}

		var picked []string
		for i := 0; i < 4; i++ {
			inst, err := b.Pick("", testInstances)
			req.NoError(err)
			picked = append(picked, inst.Addr)
		}

		req.Equal([]string{
			testInstances[0].Addr, testInstances[1].Addr, testInstances[2].Addr, testInstances[0].Addr,
		}, picked)
	})
}

func TestEmptyInstances(t *testing.T) {
	for _, b := range []Balancer{&RoundRobinBalancer{}, &WeightedRandomBalancer{}, NewConsistentHashBalancer()} {
		t.Run("should fail with no instances for "+b.Name(), func(t *testing.T) {
			_, err := b.Pick("agent", nil)
			require.ErrorIs(t, err, smserrors.ErrNoInstances)
		})
	}
}

func TestWeightedRandom(t *testing.T) {
	t.Run("should follow the weight ratio", func(t *testing.T) {
		req := require.New(t)
		b := &WeightedRandomBalancer{}

		counts := map[string]int{}
		for i := 0; i < 10000; i++ {
			inst, err := b.Pick("", testInstances)
			req.NoError(err)
			counts[inst.Addr]++
		}

		// 10:5:10
		ratio := float64(counts[testInstances[0].Addr]) / float64(counts[testInstances[1].Addr])
		req.InDelta(2.0, ratio, 0.5)
	})

	t.Run("should not panic when every weight is zero", func(t *testing.T) {
		req := require.New(t)
		b := &WeightedRandomBalancer{}
		zero := []registry.ServiceInstance{{Addr: "http://a"}, {Addr: "http://b"}}

		inst, err := b.Pick("", zero)
		req.NoError(err)
		req.Contains([]string{"http://a", "http://b"}, inst.Addr)
	})
}

func TestConsistentHash(t *testing.T) {
	t.Run("should map the same key to the same instance", func(t *testing.T) {
		req := require.New(t)
		b := NewConsistentHashBalancer()

		inst1, err := b.Pick("agent-123", testInstances)
		req.NoError(err)
		inst2, err := b.Pick("agent-123", testInstances)
		req.NoError(err)
		req.Equal(inst1.Addr, inst2.Addr)
	})

	t.Run("should spread different keys", func(t *testing.T) {
		req := require.New(t)
		b := NewConsistentHashBalancer()

		seen := map[string]bool{}
		for i := 0; i < 100; i++ {
			inst, err := b.Pick(fmt.Sprintf("agent-%d", i), testInstances)
			req.NoError(err)
			seen[inst.Addr] = true
		}
		req.GreaterOrEqual(len(seen), 2)
	})

	t.Run("should only pick from the current instance set", func(t *testing.T) {
		req := require.New(t)
		b := NewConsistentHashBalancer()
		_, err := b.Pick("agent", testInstances)
		req.NoError(err)

		only := testInstances[1:2]
		for i := 0; i < 20; i++ {
			inst, err := b.Pick(fmt.Sprintf("agent-%d", i), only)
			req.NoError(err)
			req.Equal(only[0].Addr, inst.Addr)
		}
	})
}
