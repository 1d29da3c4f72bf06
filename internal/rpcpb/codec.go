package rpcpb

import "encoding/json"

// Name is the subtype this codec registers under; content-type on the wire
// is "application/grpc+json".
const Name = "json"

// jsonCodec implements google.golang.org/grpc/encoding.Codec. The service
// is registered with grpc.ForceServerCodec/grpc.ForceCodec so every frame
// goes through it, in place of the proto-generated wire format.
type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return Name
}

// Codec is the shared encoding.Codec instance used by both the server and
// client stubs.
var Codec = jsonCodec{}
