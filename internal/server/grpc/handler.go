package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/sealnote/internal/common"
	"github.com/dmitrijs2005/sealnote/internal/logging"
	"github.com/dmitrijs2005/sealnote/internal/noteapi"
	"github.com/dmitrijs2005/sealnote/internal/server/models"
	"github.com/dmitrijs2005/sealnote/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type handler struct {
	notes  *services.NoteService
	logger logging.Logger
}

func (h *handler) InsertNote(ctx context.Context, req *noteapi.InsertNoteRequest) (*noteapi.InsertNoteResponse, error) {
	if req.Note == nil {
		return nil, status.Error(codes.InvalidArgument, "note is required")
	}

	n := toModel(req.Note)
	if err := h.notes.Insert(ctx, n); err != nil {
		return nil, h.toStatus(ctx, "insert", err)
	}
	h.logger.Debug(ctx, "note inserted", "note_id", n.ID, "client", clientOf(ctx))
	return &noteapi.InsertNoteResponse{ID: n.ID, CreatedAt: n.CreatedAt}, nil
}

func (h *handler) FindNote(ctx context.Context, req *noteapi.FindNoteRequest) (*noteapi.FindNoteResponse, error) {
	n, err := h.notes.Find(ctx, req.LookupHash)
	if err != nil {
		return nil, h.toStatus(ctx, "find", err)
	}
	return &noteapi.FindNoteResponse{Note: fromModel(n)}, nil
}

func (h *handler) ConsumeNote(ctx context.Context, req *noteapi.ConsumeNoteRequest) (*noteapi.ConsumeNoteResponse, error) {
	if err := h.notes.Consume(ctx, req.ID); err != nil {
		return nil, h.toStatus(ctx, "consume", err)
	}
	return &noteapi.ConsumeNoteResponse{}, nil
}

func (h *handler) MarkViewed(ctx context.Context, req *noteapi.MarkViewedRequest) (*noteapi.MarkViewedResponse, error) {
	n, err := h.notes.MarkViewed(ctx, req.ID)
	if err != nil {
		return nil, h.toStatus(ctx, "mark viewed", err)
	}
	return &noteapi.MarkViewedResponse{ViewCount: n}, nil
}

func (h *handler) Ping(ctx context.Context, req *noteapi.PingRequest) (*noteapi.PingResponse, error) {
	return &noteapi.PingResponse{Status: "OK"}, nil
}

// toStatus maps service errors to gRPC codes. Internal details are logged,
// not sent.
func (h *handler) toStatus(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrDuplicateID):
		return status.Error(codes.AlreadyExists, "duplicate id")
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	default:
		h.logger.Error(ctx, "store operation failed", "op", op, "client", clientOf(ctx), "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}

// clientOf names the caller for logs. Without auth every caller is anonymous.
func clientOf(ctx context.Context) string {
	if s, ok := SubjectFromContext(ctx); ok {
		return s
	}
	return "anonymous"
}

func toModel(n *noteapi.Note) *models.Note {
	return &models.Note{
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

func fromModel(n *models.Note) *noteapi.Note {
	return &noteapi.Note{
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
