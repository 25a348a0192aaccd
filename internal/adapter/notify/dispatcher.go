package notify

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

// Sink delivers a notification to one destination.
type Sink interface {
	Name() string
	Send(ctx context.Context, n domain.Notification) error
}

type Config struct {
	Workers     int
	Buffer      int
	SendTimeout time.Duration
}

// Dispatcher implements ports.Notifier. Notify only enqueues; workers fan
// each notification out to every sink. Delivery failures are logged and
// never reach the caller.
type Dispatcher struct {
	sinks   []Sink
	queue   chan domain.Notification
	workers int
	timeout time.Duration
	log     *logrus.Logger

	mu      sync.RWMutex
	closed  bool
	started bool
	wg      sync.WaitGroup
}

func NewDispatcher(cfg Config, logger *logrus.Logger, sinks ...Sink) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = 256
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 3 * time.Second
	}

	return &Dispatcher{
		sinks:   sinks,
		queue:   make(chan domain.Notification, cfg.Buffer),
		workers: cfg.Workers,
		timeout: cfg.SendTimeout,
		log:     logger,
	}
}

func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started || d.closed {
		return
	}
	d.started = true

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.run()
	}

	d.log.WithField("workers", d.workers).Info("notification dispatcher started")
}

// Notify never blocks. When the queue is full or the dispatcher is stopped
// the notification is dropped with a warning.
func (d *Dispatcher) Notify(_ context.Context, n domain.Notification) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.WithFields(fields(n)).Warn("dispatcher stopped, notification dropped")
		return
	}

	select {
	case d.queue <- n:
	default:
		d.log.WithFields(fields(n)).Warn("notification queue full, notification dropped")
	}
}

// Stop closes the queue and waits for the workers to drain it, or for ctx
// to expire.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
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

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for n := range d.queue {
		d.deliver(n)
	}
}

func (d *Dispatcher) deliver(n domain.Notification) {
	for _, sink := range d.sinks {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		err := sink.Send(ctx, n)
		cancel()

		if err != nil {
			d.log.WithFields(fields(n)).WithField("sink", sink.Name()).WithError(err).Warn("failed to deliver notification")
		}
	}
}

func fields(n domain.Notification) logrus.Fields {
	return logrus.Fields{
		"event":   n.Kind,
		"user_id": n.UserID,
	}
}
