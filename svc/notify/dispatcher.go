package notify

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/authkit/pkg/logger"
)

// DefaultDispatchTimeout bounds a single background delivery.
const DefaultDispatchTimeout = 10 * time.Second

// Dispatcher delivers events in the background. Delivery errors and panics
// are logged and never reach the caller.
type Dispatcher struct {
	notifier Notifier
	timeout  time.Duration
	logger   *slog.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

type DispatcherOption func(*Dispatcher)

func WithDispatchTimeout(d time.Duration) DispatcherOption {
	return func(dp *Dispatcher) {
		if d > 0 {
			dp.timeout = d
		}
	}
}

func WithDispatchLogger(l *slog.Logger) DispatcherOption {
	return func(dp *Dispatcher) {
		if l != nil {
			dp.logger = l
		}
	}
}

func NewDispatcher(n Notifier, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		notifier: n,
		timeout:  DefaultDispatchTimeout,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch returns immediately. The delivery context keeps ctx values but
// not its cancellation, so a finished request does not abort the send.
// Events dispatched after Wait are dropped.
func (d *Dispatcher) Dispatch(ctx context.Context, event *Event) {
	if d == nil || d.notifier == nil || event == nil {
		return
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.logger.WarnContext(ctx, "dispatcher closed, event dropped",
			logger.Component("notify"),
			logger.Event(event.Type.String()),
		)
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.logger.ErrorContext(ctx, "notifier panicked",
					logger.Component("notify"),
					logger.Event(event.Type.String()),
					slog.Any("panic", r),
				)
			}
		}()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()

		if err := d.notifier.Notify(ctx, event); err != nil {
			d.logger.ErrorContext(ctx, "notification failed",
				logger.Component("notify"),
				logger.Event(event.Type.String()),
				logger.Error(err),
			)
		}
	}()
}

// Wait stops accepting events and blocks until in-flight deliveries finish.
func (d *Dispatcher) Wait() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.wg.Wait()
}
