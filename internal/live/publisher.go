// Package live pushes freshly aggregated worker status boards to any
// number of subscribers: the in-process equivalent of the dashboard
// and kiosk feeds.
package live

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/service"
)

// DefaultPollInterval is how often the publisher recomputes on its own
// to catch assignment changes it is not directly notified about.
const DefaultPollInterval = 5 * time.Second

// Subscription is one subscriber's feed. C delivers full board
// snapshots; the channel is closed on Cancel.
type Subscription struct {
	C <-chan []domain.WorkerStatus

	ch     chan []domain.WorkerStatus
	cancel func()
	once   sync.Once
}

// Cancel stops delivery and releases the subscription. Idempotent;
// safe to call from any goroutine.
func (s *Subscription) Cancel() {
	s.once.Do(s.cancel)
}

// Publisher recomputes the status board via StatusService and
// broadcasts it to all subscribers, on every Notify call and on a
// bounded poll interval. Each subscriber's channel holds the latest
// snapshot only: a slow reader never blocks the publisher and always
// wakes to the newest board.
type Publisher struct {
	status   service.StatusService
	interval time.Duration
	logger   *slog.Logger

	// broadcastMu serializes recompute-and-broadcast so subscribers
	// never observe boards out of order.
	broadcastMu sync.Mutex

	mu       sync.Mutex
	subs     map[uint64]chan []domain.WorkerStatus
	nextID   uint64
	stopPoll chan struct{} // non-nil while the poll loop runs
}

func NewPublisher(status service.StatusService, interval time.Duration, logger *slog.Logger) *Publisher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		status:   status,
		interval: interval,
		logger:   logger,
		subs:     make(map[uint64]chan []domain.WorkerStatus),
	}
}

// Subscribe registers a new subscriber and triggers a broadcast so the
// caller receives a current board without waiting for the next event.
// The poll loop starts with the first subscriber.
func (p *Publisher) Subscribe() *Subscription {
	p.mu.Lock()
	ch := make(chan []domain.WorkerStatus, 1)
	id := p.nextID
	p.nextID++
	p.subs[id] = ch

	if p.stopPoll == nil {
		p.stopPoll = make(chan struct{})
		go p.poll(p.stopPoll)
	}
	p.mu.Unlock()

	sub := &Subscription{C: ch, ch: ch}
	sub.cancel = func() { p.remove(id) }

	go p.Notify(context.Background())
	return sub
}

// Notify recomputes the board and broadcasts it to all current
// subscribers. Lifecycle callers invoke it after every successful
// start/stop; the poll loop invokes it on schedule. A failed recompute
// is logged and skipped, never fatal to future cycles.
func (p *Publisher) Notify(ctx context.Context) {
	p.broadcastMu.Lock()
	defer p.broadcastMu.Unlock()

	board, err := p.status.Snapshot(ctx)
	if err != nil {
		p.logger.ErrorContext(ctx, "live board recompute failed", "error", err)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, ch := range p.subs {
		// Replace any undelivered snapshot; latest wins.
		select {
		case <-ch:
		default:
		}
		ch <- board.Workers
	}
}

func (p *Publisher) remove(id uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ch, ok := p.subs[id]
	if !ok {
		return
	}
	delete(p.subs, id)
	close(ch)

	// The poll ticker only runs while someone is listening.
	if len(p.subs) == 0 && p.stopPoll != nil {
		close(p.stopPoll)
		p.stopPoll = nil
	}
}

func (p *Publisher) poll(stop chan struct{}) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			p.Notify(context.Background())
		}
	}
}
