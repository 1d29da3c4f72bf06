// Package rpcpb holds the wire messages and gRPC service stub for the
// order-book aggregator's streaming RPC. The service definition mirrors
// the shape protoc-gen-go-grpc produces, but frames are marshaled through
// Codec (see codec.go), a grpc-go encoding.Codec registered in place of
// wire-format protobuf, so the messages below are plain structs rather
// than protoc-generated, descriptor-backed types.
package rpcpb

// Empty is the BookSummary request: the stream has no parameters.
type Empty struct{}

// Level is a single price level on one side of the merged book.
type Level struct {
	Exchange string  `json:"exchange"`
	Price    float64 `json:"price"`
	Amount   float64 `json:"amount"`
}

// Summary is the consolidated cross-exchange top-of-book view streamed to
// every BookSummary subscriber.
type Summary struct {
	Spread float64  `json:"spread"`
	Bids   []*Level `json:"bids"`
	Asks   []*Level `json:"asks"`
}
