package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/lattice-markets/depthagg/internal/buildinfo"
	"github.com/lattice-markets/depthagg/internal/rpcpb"
)

func main() {
	addr := flag.String("a", "", "depthagg-server address (host:port, required)")
	showVersion := flag.Bool("version", false, "print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `depthagg-client streams and prints the consolidated order book summary
from a running depthagg-server.

Usage:
  depthagg-client -a localhost:50051

`)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Println(buildinfo.String())
		return
	}

	if *addr == "" {
		flag.Usage()
		os.Exit(2)
	}

	conn, err := grpc.NewClient(*addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(rpcpb.Codec)),
	)
	if err != nil {
		log.Fatalf("did not connect: %v", err)
	}
	defer conn.Close()

	client := rpcpb.NewOrderbookAggregatorClient(conn)

	stream, err := client.BookSummary(context.Background(), &rpcpb.Empty{})
	if err != nil {
		log.Fatalf("could not open BookSummary stream: %v", err)
	}

	for {
		summary, err := stream.Recv()
		if err == io.EOF {
			return
		}
		if err != nil {
			log.Fatalf("stream error: %v", err)
		}
		printSummary(summary)
	}
}

func printSummary(s *rpcpb.Summary) {
	fmt.Printf("spread=%.8f\n", s.Spread)
	for _, b := range s.Bids {
		fmt.Printf("  bid %-10s price=%.8f amount=%.8f\n", b.Exchange, b.Price, b.Amount)
	}
	for _, a := range s.Asks {
		fmt.Printf("  ask %-10s price=%.8f amount=%.8f\n", a.Exchange, a.Price, a.Amount)
	}
}
