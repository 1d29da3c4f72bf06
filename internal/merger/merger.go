package merger

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/lattice-markets/depthagg/internal/model"
)

// Publisher is the broadcaster's write side, as exclusively owned by the
// Merger. Publish must not block the merger's hot path.
type Publisher interface {
	Publish(summary model.Summary)
}

// Merger owns the latest OrderBook per exchange and recomputes the merged
// Summary whenever a fresher book arrives on its source channel, publishing
// only when the result actually changed.
type Merger struct {
	source <-chan model.OrderBook
	pub    Publisher
	log    zerolog.Logger

	latest map[model.Exchange]model.OrderBook
	last   model.Summary
	haveLast bool
}

func New(source <-chan model.OrderBook, pub Publisher, log zerolog.Logger) *Merger {
	return &Merger{
		source: source,
		pub:    pub,
		log:    log.With().Str("component", "merger").Logger(),
		latest: make(map[model.Exchange]model.OrderBook),
	}
}

// Run consumes books from source until ctx is cancelled or source closes.
func (m *Merger) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case book, ok := <-m.source:
			if !ok {
				return nil
			}
			m.ingest(book)
		}
	}
}

func (m *Merger) ingest(book model.OrderBook) {
	m.latest[book.Exchange] = book

	summary, err := Merge(m.latest)
	if err != nil {
		// One side of the book is still empty (e.g. only one exchange has
		// reported so far); nothing to publish yet.
		m.log.Debug().Err(err).Msg("summary not yet publishable")
		return
	}

	if m.haveLast && m.last.Equal(summary) {
		return
	}
	m.last = summary
	m.haveLast = true
	m.pub.Publish(summary)
}
