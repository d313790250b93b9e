package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStaticRegistry(t *testing.T) {
	ctx := context.Background()
	inst1 := ServiceInstance{Addr: "http://a", Weight: 1}
	inst2 := ServiceInstance{Addr: "http://b", Weight: 2}

	t.Run("should discover registered instances per service", func(t *testing.T) {
		req := require.New(t)
		reg := NewStaticRegistry()

		req.NoError(reg.Register(ctx, "sms", inst1, 0))
		req.NoError(reg.Register(ctx, "sms", inst2, 0))
		req.NoError(reg.Register(ctx, "other", inst1, 0))

		instances, err := reg.Discover(ctx, "sms")
		req.NoError(err)
		req.Equal([]ServiceInstance{inst1, inst2}, instances)
	})

	t.Run("should replace an instance registered twice", func(t *testing.T) {
		req := require.New(t)
		reg := NewStaticRegistry()

		req.NoError(reg.Register(ctx, "sms", inst1, 0))
		updated := inst1
		updated.Weight = 7
		req.NoError(reg.Register(ctx, "sms", updated, 0))

		instances, err := reg.Discover(ctx, "sms")
		req.NoError(err)
		req.Equal([]ServiceInstance{updated}, instances)
	})

	t.Run("should emit the current list then every change", func(t *testing.T) {
		req := require.New(t)
		reg := NewStaticRegistry()
		req.NoError(reg.Register(ctx, "sms", inst1, 0))

		wctx, cancel := context.WithCancel(ctx)
		watch := reg.Watch(wctx, "sms")
		req.Equal([]ServiceInstance{inst1}, <-watch)

		req.NoError(reg.Deregister(ctx, "sms", inst1.Addr))
		req.Empty(<-watch)

		cancel()
		for range watch {
		}
	})
}
