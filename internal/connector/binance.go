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
	binanceInfoEndpoint = "https://api.binance.com/api/v3/exchangeInfo"
	binanceWSBase       = "wss://stream.binance.com:9443/ws/"
	binanceWSSuffix     = "@depth10@100ms"
)

// Binance is a push-model connector: once connected there is no subscribe
// handshake, the server starts streaming depth snapshots immediately.
type Binance struct {
	symbol string // uppercase, as validated against exchangeInfo
	sink   chan<- model.OrderBook
	norm   *normalizer.Binance
	log    zerolog.Logger
	httpc  *http.Client
}

func NewBinance(symbol string, sink chan<- model.OrderBook, seq *model.SequenceCounter, log zerolog.Logger) *Binance {
	return &Binance{
		symbol: strings.ToUpper(symbol),
		sink:   sink,
		norm:   normalizer.NewBinance(seq),
		log:    log.With().Str("exchange", "binance").Logger(),
		httpc:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (b *Binance) Exchange() model.Exchange { return model.Binance }

func (b *Binance) Run(ctx context.Context) error {
	return runReconnectLoop(ctx, b.log, "binance", b.runSession)
}

func (b *Binance) runSession(ctx context.Context) error {
	if err := b.checkConfig(ctx); err != nil {
		return err
	}

	state := StateDisconnected

	url := binanceWSBase + strings.ToLower(b.symbol) + binanceWSSuffix
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return NewConnectionError(fmt.Errorf("binance: dial: %w", err))
	}
	defer conn.Close()
	state = next(state, eventDialed)
	b.log.Info().Str("url", url).Str("state", state.String()).Msg("connected")

	conn.SetPingHandler(func(appData string) error {
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(5*time.Second))
	})

	var lastBook *normalizer.BinanceDepth
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return NewConnectionError(fmt.Errorf("binance: read: %w", err))
		}
		if msgType != websocket.TextMessage || len(data) == 0 {
			continue
		}

		depth, err := normalizer.ParseBinanceDepth(data)
		if err != nil {
			return NewProtocolError(fmt.Errorf("binance: %w", err))
		}
		if lastBook != nil && !depth.Changed(*lastBook) {
			continue
		}
		lastBook = &depth
		if state != StateUpdating {
			state = next(state, eventUpdateReceived)
			b.log.Info().Str("state", state.String()).Msg("streaming")
		}

		book := b.norm.Normalize(depth)
		if err := sendBook(ctx, b.sink, book, "binance"); err != nil {
			return err
		}
	}
}

func (b *Binance) checkConfig(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, binanceInfoEndpoint, nil)
	if err != nil {
		return NewConfigError(err, "")
	}
	resp, err := b.httpc.Do(req)
	if err != nil {
		return NewConfigError(fmt.Errorf("binance: exchangeInfo: %w", err), "")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewConfigError(fmt.Errorf("binance: read exchangeInfo: %w", err), "")
	}

	var info struct {
		Symbols []struct {
			Symbol string `json:"symbol"`
		} `json:"symbols"`
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return NewConfigError(fmt.Errorf("binance: parse exchangeInfo: %w", err), "")
	}

	symbols := make([]string, 0, len(info.Symbols))
	valid := false
	for _, s := range info.Symbols {
		symbols = append(symbols, s.Symbol)
		if s.Symbol == b.symbol {
			valid = true
		}
	}
	if !valid {
		return NewConfigError(
			fmt.Errorf("binance: invalid symbol %s", b.symbol),
			fmt.Sprintf("valid symbols: %v", symbols),
		)
	}
	return nil
}
