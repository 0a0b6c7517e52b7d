// Package noteapi defines the sealnote.NoteStore gRPC service shared by the
// store server and its clients. Messages are protobuf on the wire (see
// notestore.proto) and are encoded field by field with protowire, so the
// package carries no generated code.
package noteapi

import (
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content-subtype of the note codec. It is distinct
// from "proto" so the stock codec keeps serving the health service.
const CodecName = "notepb"

// Message is implemented by every request and response of the service.
type Message interface {
	AppendWire(b []byte) []byte
	ReadWire(b []byte) error
}

type codec struct{}

func (codec) Marshal(v any) ([]byte, error) {
	m, ok := v.(Message)
	if !ok {
		return nil, fmt.Errorf("noteapi: cannot marshal %T", v)
	}
	return m.AppendWire(nil), nil
}

func (codec) Unmarshal(data []byte, v any) error {
	m, ok := v.(Message)
	if !ok {
		return fmt.Errorf("noteapi: cannot unmarshal into %T", v)
	}
	return m.ReadWire(data)
}

func (codec) Name() string { return CodecName }

func init() {
	encoding.RegisterCodec(codec{})
}

// CallOption makes a client call use the note codec.
func CallOption() grpc.CallOption {
	return grpc.CallContentSubtype(CodecName)
}
