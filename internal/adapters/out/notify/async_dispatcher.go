// Package notify delivers push notifications off the request path.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"routehub/internal/core/ports"
)

const (
	DefaultWorkers     = 2
	DefaultQueueSize   = 256
	DefaultSendTimeout = 5 * time.Second
)

// AsyncDispatcher implements ports.NotificationDispatcher with a bounded
// queue drained by a fixed set of workers. Dispatch never blocks: when the
// queue is full, or the dispatcher is closed, the notification is dropped and
// a warning is logged.
type AsyncDispatcher struct {
	sender      ports.PushSender
	queue       chan ports.PushNotification
	workers     int
	sendTimeout time.Duration
	logger      *slog.Logger

	mu      sync.RWMutex
	closed  bool
	started bool
	wg      sync.WaitGroup
}

func NewAsyncDispatcher(sender ports.PushSender, workers, queueSize int, logger *slog.Logger) *AsyncDispatcher {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AsyncDispatcher{
		sender:      sender,
		queue:       make(chan ports.PushNotification, queueSize),
		workers:     workers,
		sendTimeout: DefaultSendTimeout,
		logger:      logger.With("component", "push_dispatcher"),
	}
}

// Start launches the workers. It is a no-op after the first call.
func (d *AsyncDispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started || d.closed {
		return
	}
	d.started = true

	for range d.workers {
		d.wg.Add(1)
		go d.work()
	}
}

func (d *AsyncDispatcher) Dispatch(ctx context.Context, n ports.PushNotification) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.WarnContext(ctx, "Push dropped, dispatcher closed", "title", n.Title)
		return
	}

	select {
	case d.queue <- n:
	default:
		d.logger.WarnContext(ctx, "Push dropped, queue full", "title", n.Title, "capacity", cap(d.queue))
	}
}

// Close stops accepting notifications and waits for queued ones to be sent,
// or for ctx to end.
func (d *AsyncDispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *AsyncDispatcher) work() {
	defer d.wg.Done()

	for n := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
		if err := d.sender.Send(ctx, n); err != nil {
			d.logger.ErrorContext(ctx, "Push delivery failed", "title", n.Title, "error", err)
		}
		cancel()
	}
}
