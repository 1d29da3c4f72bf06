// Package broadcaster fans a single stream of model.Summary values out to
// many independent subscribers, each with its own bounded queue.
package broadcaster

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lattice-markets/depthagg/internal/model"
)

// QueueCapacity bounds each subscriber's outbound buffer. A subscriber that
// cannot keep up has the new publish dropped (the 100 already buffered are
// kept) rather than blocking the merger.
const QueueCapacity = 100

// Broadcaster is the merger's exclusive write side into the set of active
// gRPC stream subscribers.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[uuid.UUID]chan model.Summary
	log         zerolog.Logger
}

func New(log zerolog.Logger) *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[uuid.UUID]chan model.Summary),
		log:         log.With().Str("component", "broadcaster").Logger(),
	}
}

// Subscribe registers a new subscriber and returns its queue plus an
// unsubscribe function the caller must invoke exactly once when done.
func (b *Broadcaster) Subscribe() (id uuid.UUID, queue <-chan model.Summary, unsubscribe func()) {
	id = uuid.New()
	ch := make(chan model.Summary, QueueCapacity)

	b.mu.Lock()
	b.subscribers[id] = ch
	b.mu.Unlock()

	return id, ch, func() { b.unsubscribe(id) }
}

func (b *Broadcaster) unsubscribe(id uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.subscribers[id]; ok {
		delete(b.subscribers, id)
		close(ch)
	}
}

// Publish delivers summary to every current subscriber without blocking. A
// subscriber whose queue is full misses this update, and every later one
// until it has drained room in its queue.
func (b *Broadcaster) Publish(summary model.Summary) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subscribers {
		select {
		case ch <- summary:
		default:
			b.log.Warn().Str("subscriber", id.String()).Msg("dropping summary, subscriber queue full")
		}
	}
}

// SubscriberCount reports the number of currently active subscribers.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
