package loadbalance

import (
	"math/rand/v2"

	"sms-viewer/registry"
)

// WeightedRandomBalancer picks with probability proportional to Weight.
// A weight of zero or less counts as one.
type WeightedRandomBalancer struct{}

func (b *WeightedRandomBalancer) Pick(_ string, instances []registry.ServiceInstance) (*registry.ServiceInstance, error) {
	if len(instances) == 0 {
		return nil, errNoInstances()
	}

	totalWeight := 0
	for _, v := range instances {
		totalWeight += weightOf(v)
	}

	r := rand.IntN(totalWeight)
	for i := range instances {
		r -= weightOf(instances[i])
		if r < 0 {
			return &instances[i], nil
		}
	}

	return &instances[len(instances)-1], nil
}

func (b *WeightedRandomBalancer) Name() string {
	return WeightedRandom
}

func weightOf(instance registry.ServiceInstance) int {
	if instance.Weight <= 0 {
		return 1
	}
	return instance.Weight
}
