package connector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/lattice-markets/depthagg/internal/model"
	"github.com/lattice-markets/depthagg/internal/normalizer"
)

const (
	bitstampInfoEndpoint = "https://www.bitstamp.net/api/v2/trading-pairs-info/"
	bitstampWSEndpoint   = "wss://ws.bitstamp.net"
)

// subscribeRequest is the bts:subscribe envelope Bitstamp expects on the
// order_book_<symbol> channel.
type subscribeRequest struct {
	Event string `json:"event"`
	Data  struct {
		Channel string `json:"channel"`
	} `json:"data"`
}

func newSubscribeRequest(symbol string) subscribeRequest {
	req := subscribeRequest{Event: "bts:subscribe"}
	req.Data.Channel = "order_book_" + symbol
	return req
}

// updateEnvelope wraps every message Bitstamp sends on the channel: the
// subscription ack, and subsequent order_book updates. Data is omitted on
// non-data events (Bitstamp heartbeats) and is discarded rather than
// treated as a protocol error.
type updateEnvelope struct {
	Event string          `json:"event"`
	Chan  string          `json:"channel"`
	Data  json.RawMessage `json:"data"`
}

// Bitstamp is a subscribe-model connector: the client must send an explicit
// subscribe request and wait for an ack before update frames arrive.
type Bitstamp struct {
	symbol string // lowercase, as used in the trading-pairs-info url_symbol field
	sink   chan<- model.OrderBook
	norm   *normalizer.Bitstamp
	log    zerolog.Logger
	httpc  *http.Client
}

func NewBitstamp(symbol string, sink chan<- model.OrderBook, seq *model.SequenceCounter, log zerolog.Logger) *Bitstamp {
	return &Bitstamp{
		symbol: strings.ToLower(symbol),
		sink:   sink,
		norm:   normalizer.NewBitstamp(seq),
		log:    log.With().Str("exchange", "bitstamp").Logger(),
		httpc:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (b *Bitstamp) Exchange() model.Exchange { return model.Bitstamp }

func (b *Bitstamp) Run(ctx context.Context) error {
	return runReconnectLoop(ctx, b.log, "bitstamp", b.runSession)
}

func (b *Bitstamp) runSession(ctx context.Context) error {
	state := StateDisconnected

	if err := b.checkConfig(ctx); err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, bitstampWSEndpoint, nil)
	if err != nil {
		return NewConnectionError(fmt.Errorf("bitstamp: dial: %w", err))
	}
	defer conn.Close()
	state = next(state, eventDialed)
	b.log.Info().Str("state", state.String()).Msg("connected")

	conn.SetPingHandler(func(appData string) error {
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(5*time.Second))
	})

	if err := conn.WriteJSON(newSubscribeRequest(b.symbol)); err != nil {
		return NewConnectionError(fmt.Errorf("bitstamp: subscribe: %w", err))
	}
	state = next(state, eventSubscribeSent)

	if err := b.receiveSubscriptionAck(conn); err != nil {
		return err
	}
	state = next(state, eventSubscriptionAcked)
	b.log.Info().Str("state", state.String()).Msg("subscribed")

	var lastBook *normalizer.BitstampDepth
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		msgType, raw, err := conn.ReadMessage()
		if err != nil {
			return NewConnectionError(fmt.Errorf("bitstamp: read: %w", err))
		}
		if msgType != websocket.TextMessage || len(raw) == 0 {
			continue
		}

		var env updateEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return NewProtocolError(fmt.Errorf("bitstamp: %w", err))
		}
		if len(env.Data) == 0 || string(env.Data) == "null" {
			// No-data events (e.g. heartbeats) are discarded, not fatal.
			continue
		}

		depth, err := normalizer.ParseBitstampDepth(env.Data)
		if err != nil {
			return NewProtocolError(fmt.Errorf("bitstamp: %w", err))
		}
		if lastBook != nil && !depth.Changed(*lastBook) {
			continue
		}
		lastBook = &depth
		state = next(state, eventUpdateReceived)

		book := b.norm.Normalize(depth)
		if err := sendBook(ctx, b.sink, book, "bitstamp"); err != nil {
			return err
		}
	}
}

// receiveSubscriptionAck reads the next frame and requires it to be the
// subscription_succeeded event; any other event is treated as a protocol error.
func (b *Bitstamp) receiveSubscriptionAck(conn *websocket.Conn) error {
	msgType, raw, err := conn.ReadMessage()
	if err != nil {
		return NewConnectionError(fmt.Errorf("bitstamp: read ack: %w", err))
	}
	if msgType != websocket.TextMessage {
		return NewProtocolError(fmt.Errorf("bitstamp: unexpected ack frame type %d", msgType))
	}

	var ack struct {
		Event string `json:"event"`
	}
	if err := json.Unmarshal(raw, &ack); err != nil {
		return NewProtocolError(fmt.Errorf("bitstamp: parse ack: %w", err))
	}
	if !strings.Contains(ack.Event, "subscription_succeeded") {
		return NewProtocolError(fmt.Errorf("bitstamp: unexpected ack event %q", ack.Event))
	}
	return nil
}

func (b *Bitstamp) checkConfig(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, bitstampInfoEndpoint, nil)
	if err != nil {
		return NewConfigError(err, "")
	}
	resp, err := b.httpc.Do(req)
	if err != nil {
		return NewConfigError(fmt.Errorf("bitstamp: trading-pairs-info: %w", err), "")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewConfigError(fmt.Errorf("bitstamp: read trading-pairs-info: %w", err), "")
	}

	var pairs []struct {
		URLSymbol string `json:"url_symbol"`
	}
	if err := json.Unmarshal(body, &pairs); err != nil {
		return NewConfigError(fmt.Errorf("bitstamp: parse trading-pairs-info: %w", err), "")
	}

	symbols := make([]string, 0, len(pairs))
	valid := false
	for _, p := range pairs {
		symbols = append(symbols, p.URLSymbol)
		if p.URLSymbol == b.symbol {
			valid = true
		}
	}
	if !valid {
		return NewConfigError(
			fmt.Errorf("bitstamp: invalid symbol %s", b.symbol),
			fmt.Sprintf("valid symbols: %v", symbols),
		)
	}
	return nil
}
