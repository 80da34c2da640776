package observability

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

// ShutdownFunc is a function to call during shutdown
type ShutdownFunc func(context.Context) error

// ShutdownManager coordinates graceful shutdown of registered resources
type ShutdownManager struct {
	logger  *logrus.Logger
	timeout time.Duration
	mu      sync.Mutex
	funcs   []namedShutdown
}

type namedShutdown struct {
	name string
	fn   ShutdownFunc
}

// NewShutdownManager creates a shutdown manager with the given timeout
func NewShutdownManager(logger *logrus.Logger, timeout time.Duration) *ShutdownManager {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &ShutdownManager{
		logger:  logger,
		timeout: timeout,
	}
}

// Register adds a resource to close during shutdown; resources close in
// registration order
func (sm *ShutdownManager) Register(name string, fn ShutdownFunc) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.funcs = append(sm.funcs, namedShutdown{name: name, fn: fn})
}

// Wait blocks until SIGINT/SIGTERM or ctx cancellation, then runs all
// registered shutdown functions under the configured timeout. Cancellation
// lets a failed server unwind the rest of the process instead of leaving it
// half-alive waiting for a signal.
func (sm *ShutdownManager) Wait(ctx context.Context) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		sm.logger.WithField("signal", sig.String()).Info("starting graceful shutdown")
	case <-ctx.Done():
		sm.logger.WithError(ctx.Err()).Info("starting shutdown")
	}

	sctx, cancel := context.WithTimeout(context.Background(), sm.timeout)
	defer cancel()

	sm.Shutdown(sctx)
}

// Shutdown runs all registered shutdown functions immediately
func (sm *ShutdownManager) Shutdown(ctx context.Context) {
	sm.mu.Lock()
	funcs := append([]namedShutdown(nil), sm.funcs...)
	sm.mu.Unlock()

	for _, f := range funcs {
		if err := f.fn(ctx); err != nil {
			sm.logger.WithError(err).WithField("resource", f.name).Error("shutdown error")
		} else {
			sm.logger.WithField("resource", f.name).Info("shutdown complete")
		}
	}
}
