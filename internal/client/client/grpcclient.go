package client

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/sealnote/internal/common"
	"github.com/dmitrijs2005/sealnote/internal/noteapi"
	"github.com/dmitrijs2005/sealnote/internal/notes"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	accessToken string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      *noteapi.NoteStoreClient
}

var _ notes.Store = (*GRPCClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

// unaryInterceptor attaches the access token and bounds every call by the
// configured timeout.
func (c *GRPCClient) unaryInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if c.accessToken != "" {
		ctx = withAccessToken(ctx, c.accessToken)
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGRPCClient prepares a client for endpointURL. The connection is lazy,
// so an unreachable server only shows up on the first call. Extra dial
// options are appended after the defaults.
func NewGRPCClient(endpointURL, accessToken string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, accessToken: accessToken, timeout: timeout}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.unaryInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = noteapi.NewNoteStoreClient(conn)
	return c, nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func (c *GRPCClient) Ping(ctx context.Context) error {
	_, err := c.client.Ping(ctx, &noteapi.PingRequest{})
	return c.mapError(err)
}

// Insert sends r to the server and copies back the server's CreatedAt.
func (c *GRPCClient) Insert(ctx context.Context, r *notes.Record) error {
	resp, err := c.client.InsertNote(ctx, &noteapi.InsertNoteRequest{Note: toWire(r)})
	if err != nil {
		return c.mapError(err)
	}
	r.CreatedAt = resp.CreatedAt
	return nil
}

func (c *GRPCClient) FindByLookupHash(ctx context.Context, lookupHash []byte) (*notes.Record, error) {
	resp, err := c.client.FindNote(ctx, &noteapi.FindNoteRequest{LookupHash: lookupHash})
	if err != nil {
		return nil, c.mapError(err)
	}
	if resp.Note == nil {
		return nil, common.ErrorNotFound
	}
	return fromWire(resp.Note), nil
}

func (c *GRPCClient) DeleteIfOneTime(ctx context.Context, id string) error {
	_, err := c.client.ConsumeNote(ctx, &noteapi.ConsumeNoteRequest{ID: id})
	return c.mapError(err)
}

func (c *GRPCClient) MarkViewed(ctx context.Context, id string) (int64, error) {
	resp, err := c.client.MarkViewed(ctx, &noteapi.MarkViewedRequest{ID: id})
	if err != nil {
		return 0, c.mapError(err)
	}
	return resp.ViewCount, nil
}

// mapError turns gRPC status errors into the shared sentinels. Errors that
// carry no status are returned unchanged.
func (c *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.NotFound:
		return common.ErrorNotFound
	case codes.AlreadyExists:
		return common.ErrDuplicateID
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", common.ErrorValidation, st.Message())
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", common.ErrorUnauthorized, st.Message())
	case codes.Unavailable:
		return fmt.Errorf("%w: %s", ErrUnavailable, c.endpointURL)
	case codes.DeadlineExceeded:
		return context.DeadlineExceeded
	case codes.Canceled:
		return context.Canceled
	default:
		return fmt.Errorf("%w: %s", common.ErrorInternal, st.Message())
	}
}

func toWire(r *notes.Record) *noteapi.Note {
	return &noteapi.Note{
		ID:               r.ID,
		EncryptedContent: r.EncryptedContent,
		IV:               r.IV,
		Salt:             r.Salt,
		PasswordHash:     r.PasswordHash,
		LookupHash:       r.LookupHash,
		ExpiresAt:        r.ExpiresAt,
		OneTime:          r.OneTime,
		ViewCount:        r.ViewCount,
		CreatedAt:        r.CreatedAt,
	}
}

func fromWire(n *noteapi.Note) *notes.Record {
	return &notes.Record{
		ID:               n.ID,
		EncryptedContent: n.EncryptedContent,
		IV:               n.IV,
		Salt:             n.Salt,
		PasswordHash:     n.PasswordHash,
		LookupHash:       n.LookupHash,
		ExpiresAt:        n.ExpiresAt,
		OneTime:          n.OneTime,
		ViewCount:        n.ViewCount,
		CreatedAt:        n.CreatedAt,
	}
}
