package rpcserver

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/lattice-markets/depthagg/internal/broadcaster"
	"github.com/lattice-markets/depthagg/internal/model"
	"github.com/lattice-markets/depthagg/internal/rpcpb"
)

// fakeServerStream is a minimal grpc.ServerStream double, recording every
// message handed to SendMsg. It has no real transport underneath.
type fakeServerStream struct {
	grpc.ServerStream
	ctx  context.Context
	sent []*rpcpb.Summary
}

func (f *fakeServerStream) Context() context.Context    { return f.ctx }
func (f *fakeServerStream) SendMsg(m interface{}) error  { f.sent = append(f.sent, m.(*rpcpb.Summary)); return nil }
func (f *fakeServerStream) SetHeader(metadata.MD) error  { return nil }
func (f *fakeServerStream) SendHeader(metadata.MD) error { return nil }
func (f *fakeServerStream) SetTrailer(metadata.MD)       {}

// testStream adapts fakeServerStream to rpcpb.OrderbookAggregator_BookSummaryServer,
// mirroring the Send wrapper the generated service code installs.
type testStream struct {
	*fakeServerStream
}

func (t *testStream) Send(m *rpcpb.Summary) error {
	return t.fakeServerStream.SendMsg(m)
}

const (
	waitTimeout = time.Second
	waitTick    = time.Millisecond
)

func TestBookSummaryForwardsPublishedSummaries(t *testing.T) {
	b := broadcaster.New(zerolog.Nop())
	srv := New(b, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	fake := &fakeServerStream{ctx: ctx}
	stream := &testStream{fake}

	done := make(chan error, 1)
	go func() { done <- srv.BookSummary(&rpcpb.Empty{}, stream) }()

	require.Eventually(t, func() bool { return b.SubscriberCount() == 1 }, waitTimeout, waitTick)

	b.Publish(model.Summary{
		Spread: decimal.NewFromFloat(0.9),
		Bids:   []model.Level{{Exchange: model.Binance, Price: decimal.NewFromFloat(9.2), Amount: decimal.NewFromFloat(1.0)}},
		Asks:   []model.Level{{Exchange: model.Bitstamp, Price: decimal.NewFromFloat(10.1), Amount: decimal.NewFromFloat(1.0)}},
	})

	require.Eventually(t, func() bool { return len(fake.sent) == 1 }, waitTimeout, waitTick)
	assert.InDelta(t, 0.9, fake.sent[0].Spread, 1e-9)
	require.Len(t, fake.sent[0].Bids, 1)
	assert.Equal(t, "Binance", fake.sent[0].Bids[0].Exchange)

	cancel()
	require.Eventually(t, func() bool { return b.SubscriberCount() == 0 }, waitTimeout, waitTick)
	<-done
}

func TestToProtoConvertsDecimalsToFloats(t *testing.T) {
	summary := model.Summary{
		Spread: decimal.NewFromFloat(1.5),
		Bids:   []model.Level{{Exchange: model.Binance, Price: decimal.NewFromFloat(9.0), Amount: decimal.NewFromFloat(2.0)}},
	}
	out := toProto(summary)
	assert.InDelta(t, 1.5, out.Spread, 1e-9)
	require.Len(t, out.Bids, 1)
	assert.Equal(t, "Binance", out.Bids[0].Exchange)
	assert.InDelta(t, 9.0, out.Bids[0].Price, 1e-9)
}
