// Package grpcapi is the gRPC-style transport collaborator of §1: it
// decodes creation requests off the wire and calls
// supervisor.Registry.SubmitCreationRequest, exactly the boundary the
// core draws around "the RPC transport and request decoding".
//
// No protoc-generated stubs exist in this tree, so rather than fake
// generated code this package registers a JSON codec against grpc-go's
// own encoding.Codec extension point and hand-writes a grpc.ServiceDesc
// — both are public, documented integration surfaces, not a
// workaround.
package grpcapi

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

const codecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec implements encoding.Codec by delegating to encoding/json,
// registered under the "json" content-subtype so clients opt in with
// grpc.CallContentSubtype("json") without needing protobuf at all.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("grpcapi: marshal: %w", err)
	}
	return data, nil
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("grpcapi: unmarshal: %w", err)
	}
	return nil
}

func (jsonCodec) Name() string { return codecName }
