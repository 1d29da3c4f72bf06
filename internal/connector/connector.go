// Package connector implements the per-exchange WebSocket connect /
// subscribe / update state machines. Each Connector owns a single outbound
// stream into the shared sink read by the merger; on a Connection-class
// error it backs off and reconnects, on a Config- or Protocol-class error
// it returns fatally to the supervisor.
package connector

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/lattice-markets/depthagg/internal/model"
)

// Connector drives one upstream exchange until ctx is cancelled or a
// Config/Protocol error terminates it fatally.
type Connector interface {
	Exchange() model.Exchange
	Run(ctx context.Context) error
}

// reconnectBackoff is a var rather than a const so tests can shrink it.
var reconnectBackoff = 2 * time.Second

// runReconnectLoop repeatedly invokes session (one full
// connect-through-disconnect attempt) until ctx is done or session returns a
// non-Connection error, which is fatal and propagated to the supervisor.
// Connection-class errors are logged and retried after a fixed backoff.
func runReconnectLoop(ctx context.Context, log zerolog.Logger, exchange string, session func(ctx context.Context) error) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := session(ctx)
		if err == nil {
			continue
		}

		var cerr *Error
		if errors.As(err, &cerr) && cerr.Kind == KindConnection {
			log.Warn().Err(err).Str("exchange", exchange).Msg("connection error, reconnecting")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(reconnectBackoff):
			}
			continue
		}

		return err
	}
}

// sendBook forwards book onto sink without blocking: if the channel is
// full, that is treated as merger backpressure/overflow and surfaced as a
// Connection error on the calling connector (which then reconnects), per
// the bounded-channel substitution permitted for the nominally unbounded
// connector-to-merger sink.
func sendBook(ctx context.Context, sink chan<- model.OrderBook, book model.OrderBook, exchange string) error {
	select {
	case sink <- book:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return NewConnectionError(errors.New(exchange + ": merger sink is full"))
	}
}
