package noteapi

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "sealnote.NoteStore"

const (
	InsertNoteMethod  = "/" + ServiceName + "/InsertNote"
	FindNoteMethod    = "/" + ServiceName + "/FindNote"
	ConsumeNoteMethod = "/" + ServiceName + "/ConsumeNote"
	MarkViewedMethod  = "/" + ServiceName + "/MarkViewed"
	PingMethod        = "/" + ServiceName + "/Ping"
)

// NoteStoreServer is implemented by the store server.
type NoteStoreServer interface {
	InsertNote(context.Context, *InsertNoteRequest) (*InsertNoteResponse, error)
	FindNote(context.Context, *FindNoteRequest) (*FindNoteResponse, error)
	ConsumeNote(context.Context, *ConsumeNoteRequest) (*ConsumeNoteResponse, error)
	MarkViewed(context.Context, *MarkViewedRequest) (*MarkViewedResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

func unary[Req, Resp any](fullMethod string, call func(NoteStoreServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(NoteStoreServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(NoteStoreServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc describes sealnote.NoteStore for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*NoteStoreServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "InsertNote", Handler: unary(InsertNoteMethod, NoteStoreServer.InsertNote)},
		{MethodName: "FindNote", Handler: unary(FindNoteMethod, NoteStoreServer.FindNote)},
		{MethodName: "ConsumeNote", Handler: unary(ConsumeNoteMethod, NoteStoreServer.ConsumeNote)},
		{MethodName: "MarkViewed", Handler: unary(MarkViewedMethod, NoteStoreServer.MarkViewed)},
		{MethodName: "Ping", Handler: unary(PingMethod, NoteStoreServer.Ping)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "sealnote/notestore",
}

func RegisterNoteStoreServer(s grpc.ServiceRegistrar, srv NoteStoreServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// NoteStoreClient calls sealnote.NoteStore with the note codec.
type NoteStoreClient struct {
	cc grpc.ClientConnInterface
}

func NewNoteStoreClient(cc grpc.ClientConnInterface) *NoteStoreClient {
	return &NoteStoreClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{CallOption()}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *NoteStoreClient) InsertNote(ctx context.Context, in *InsertNoteRequest, opts ...grpc.CallOption) (*InsertNoteResponse, error) {
	return invoke[InsertNoteResponse](ctx, c.cc, InsertNoteMethod, in, opts)
}

func (c *NoteStoreClient) FindNote(ctx context.Context, in *FindNoteRequest, opts ...grpc.CallOption) (*FindNoteResponse, error) {
	return invoke[FindNoteResponse](ctx, c.cc, FindNoteMethod, in, opts)
}

func (c *NoteStoreClient) ConsumeNote(ctx context.Context, in *ConsumeNoteRequest, opts ...grpc.CallOption) (*ConsumeNoteResponse, error) {
	return invoke[ConsumeNoteResponse](ctx, c.cc, ConsumeNoteMethod, in, opts)
}

func (c *NoteStoreClient) MarkViewed(ctx context.Context, in *MarkViewedRequest, opts ...grpc.CallOption) (*MarkViewedResponse, error) {
	return invoke[MarkViewedResponse](ctx, c.cc, MarkViewedMethod, in, opts)
}

func (c *NoteStoreClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, PingMethod, in, opts)
}
