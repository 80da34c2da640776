package observability

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"golang.org/x/sync/errgroup"
)

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestShutdown_RunsInRegistrationOrder(t *testing.T) {
	sm := NewShutdownManager(discardLogger(), time.Second)

	var order []string
	sm.Register("server", func(ctx context.Context) error {
		order = append(order, "server")
		return nil
	})
	sm.Register("storage", func(ctx context.Context) error {
		order = append(order, "storage")
		return nil
	})

	sm.Shutdown(context.Background())
	assert.Equal(t, []string{"server", "storage"}, order)
}

func TestWait_ReturnsOnContextCancel(t *testing.T) {
	sm := NewShutdownManager(discardLogger(), time.Second)

	var closed bool
	sm.Register("server", func(ctx context.Context) error {
		closed = true
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sm.Wait(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return after context cancellation")
	}
	assert.True(t, closed, "cancellation must run the registered shutdown functions")
}

func TestWait_UnblocksWhenServerFails(t *testing.T) {
	sm := NewShutdownManager(discardLogger(), time.Second)
	sm.Register("noop", func(ctx context.Context) error { return nil })

	// Mirrors the main wiring: one server goroutine failing at startup must
	// cancel the group context and let the waiter goroutine exit
	group, gctx := errgroup.WithContext(context.Background())
	group.Go(func() error {
		return errors.New("listen tcp :8080: address already in use")
	})
	group.Go(func() error {
		sm.Wait(gctx)
		return nil
	})

	done := make(chan error, 1)
	go func() { done <- group.Wait() }()

	select {
	case err := <-done:
		assert.ErrorContains(t, err, "address already in use")
	case <-time.After(2 * time.Second):
		t.Fatal("group.Wait still blocked after a server failed at startup")
	}
}

func TestShutdown_ContinuesPastErrors(t *testing.T) {
	sm := NewShutdownManager(discardLogger(), time.Second)

	var reached bool
	sm.Register("failing", func(ctx context.Context) error {
		return errors.New("close failed")
	})
	sm.Register("after", func(ctx context.Context) error {
		reached = true
		return nil
	})

	sm.Shutdown(context.Background())
	assert.True(t, reached, "a failing resource must not stop the rest of shutdown")
}
