package notify

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type job struct {
	userID string
	text   string
}

// Dispatcher fans pushes out to a fixed pool of workers so callers never wait
// on the platform API. When the queue is full the push is dropped.
type Dispatcher struct {
	next    Notifier
	queue   chan job
	workers int
	timeout time.Duration
	wg      sync.WaitGroup
	once    sync.Once
	log     *logrus.Entry
}

// NewDispatcher wraps next. Call Start before use and Stop on shutdown.
func NewDispatcher(next Notifier, workers, buffer int) *Dispatcher {
	if next == nil {
		panic("notifier cannot be nil for Dispatcher")
	}
	if workers <= 0 {
		workers = 1
	}
	if buffer <= 0 {
		buffer = 1
	}
	return &Dispatcher{
		next:    next,
		queue:   make(chan job, buffer),
		workers: workers,
		timeout: 5 * time.Second,
		log:     logrus.WithField("component", "notify_dispatcher"),
	}
}

// Start launches the workers.
func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.run()
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for j := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		if !d.next.SendText(ctx, j.userID, j.text) {
			d.log.WithField("user_id", j.userID).Warn("Push delivery failed")
		}
		cancel()
	}
}

// SendText enqueues the push without blocking.
func (d *Dispatcher) SendText(_ context.Context, userID, text string) bool {
	select {
	case d.queue <- job{userID: userID, text: text}:
		return true
	default:
		d.log.WithField("user_id", userID).Warn("Push queue full, dropping message")
		return false
	}
}

// FetchDisplayName is answered synchronously by the wrapped notifier.
func (d *Dispatcher) FetchDisplayName(ctx context.Context, userID string) string {
	return d.next.FetchDisplayName(ctx, userID)
}

// Stop closes the queue and waits for queued pushes to drain.
// SendText must not be called after Stop.
func (d *Dispatcher) Stop() {
	d.once.Do(func() {
		close(d.queue)
		d.wg.Wait()
	})
}
