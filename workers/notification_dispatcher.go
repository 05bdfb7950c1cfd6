// workers/notification_dispatcher.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"esports-registration/notifier"
)

// NotificationDispatcher decouples notification delivery from request
// handling: Enqueue never blocks and delivery failures only reach the log.
type NotificationDispatcher struct {
	sink    notifier.Sink
	queue   chan notifier.Notification
	workers int
	timeout time.Duration
	log     *slog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup

	// OnResult, when set, observes every delivery attempt.
	OnResult func(n notifier.Notification, err error)
}

func NewNotificationDispatcher(sink notifier.Sink, workers, queueSize int, timeout time.Duration) *NotificationDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &NotificationDispatcher{
		sink:    sink,
		queue:   make(chan notifier.Notification, queueSize),
		workers: workers,
		timeout: timeout,
		log:     slog.With("component", "notifications", "sink", sink.Name()),
	}
}

// Start launches the worker goroutines. Deliveries derive their context from ctx.
func (d *NotificationDispatcher) Start(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.run(ctx)
	}
	d.log.Info("notification dispatcher started", "workers", d.workers, "queue", cap(d.queue))
}

// Enqueue hands n to the workers. It returns false when the queue is full or
// the dispatcher is stopped; the notification is then dropped.
func (d *NotificationDispatcher) Enqueue(n notifier.Notification) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.log.Warn("notification dropped: dispatcher stopped", "kind", n.Kind, "record_id", n.RecordID)
		return false
	}
	select {
	case d.queue <- n:
		return true
	default:
		d.log.Warn("notification dropped: queue full", "kind", n.Kind, "record_id", n.RecordID)
		return false
	}
}

// Stop rejects new notifications and waits for queued ones to be delivered.
func (d *NotificationDispatcher) Stop() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	d.wg.Wait()
	d.log.Info("notification dispatcher stopped")
}

func (d *NotificationDispatcher) run(ctx context.Context) {
	defer d.wg.Done()
	for n := range d.queue {
		d.deliver(ctx, n)
	}
}

func (d *NotificationDispatcher) deliver(ctx context.Context, n notifier.Notification) {
	sendCtx := ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	start := time.Now()
	err := d.safeSend(sendCtx, n)
	if err != nil {
		d.log.Error("notification delivery failed",
			"kind", n.Kind, "record_id", n.RecordID, "delivered", false, "error", err)
	} else {
		d.log.Info("notification delivered",
			"kind", n.Kind, "record_id", n.RecordID, "delivered", true, "took", time.Since(start))
	}
	if d.OnResult != nil {
		d.OnResult(n, err)
	}
}

// safeSend keeps a panicking sink from taking a worker down.
func (d *NotificationDispatcher) safeSend(ctx context.Context, n notifier.Notification) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r}
		}
	}()
	return d.sink.Send(ctx, n)
}

type panicError struct{ value any }

func (p *panicError) Error() string {
	return fmt.Sprintf("sink panicked: %v", p.value)
}
