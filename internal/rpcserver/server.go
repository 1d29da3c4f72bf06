// Package rpcserver implements the gRPC server-streaming surface: one
// BookSummary subscriber per active broadcaster.Broadcaster subscription.
package rpcserver

import (
	"context"
	"net"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"

	"github.com/lattice-markets/depthagg/internal/broadcaster"
	"github.com/lattice-markets/depthagg/internal/model"
	"github.com/lattice-markets/depthagg/internal/rpcpb"
)

// Server implements rpcpb.OrderbookAggregatorServer over a Broadcaster.
type Server struct {
	rpcpb.UnimplementedOrderbookAggregatorServer

	broadcaster *broadcaster.Broadcaster
	log         zerolog.Logger
}

func New(b *broadcaster.Broadcaster, log zerolog.Logger) *Server {
	return &Server{broadcaster: b, log: log.With().Str("component", "rpcserver").Logger()}
}

// BookSummary subscribes the caller to the broadcaster and forwards every
// published Summary until the stream's context is cancelled.
func (s *Server) BookSummary(_ *rpcpb.Empty, stream rpcpb.OrderbookAggregator_BookSummaryServer) error {
	_, queue, unsubscribe := s.broadcaster.Subscribe()
	defer unsubscribe()

	ctx := stream.Context()
	s.log.Info().Msg("subscriber connected")
	defer s.log.Info().Msg("subscriber disconnected")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case summary, ok := <-queue:
			if !ok {
				return nil
			}
			if err := stream.Send(toProto(summary)); err != nil {
				return err
			}
		}
	}
}

func toProto(s model.Summary) *rpcpb.Summary {
	spread, _ := s.Spread.Float64()
	return &rpcpb.Summary{
		Spread: spread,
		Bids:   toProtoLevels(s.Bids),
		Asks:   toProtoLevels(s.Asks),
	}
}

func toProtoLevels(levels []model.Level) []*rpcpb.Level {
	out := make([]*rpcpb.Level, len(levels))
	for i, l := range levels {
		price, _ := l.Price.Float64()
		amount, _ := l.Amount.Float64()
		out[i] = &rpcpb.Level{
			Exchange: l.Exchange.String(),
			Price:    price,
			Amount:   amount,
		}
	}
	return out
}

// Serve registers srv on a new grpc.Server listening on addr and blocks
// until ctx is cancelled, then gracefully stops.
func Serve(ctx context.Context, addr string, srv *Server, log zerolog.Logger) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	grpcServer := grpc.NewServer(grpc.ForceServerCodec(rpcpb.Codec))
	rpcpb.RegisterOrderbookAggregatorServer(grpcServer, srv)

	errCh := make(chan error, 1)
	go func() {
		errCh <- grpcServer.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		log.Info().Str("addr", addr).Msg("stopping grpc server")
		grpcServer.GracefulStop()
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}
