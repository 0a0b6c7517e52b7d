// Package mcp exposes the client-side note protocol as MCP tools served
// over stdio. Passwords and plaintext stay in this process; the note store
// only ever sees ciphertext.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/sealnote/internal/common"
	"github.com/dmitrijs2005/sealnote/internal/lifecycle"
	"github.com/dmitrijs2005/sealnote/internal/notes"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates an MCP server with tools for storing and retrieving notes.
func NewServer(svc *notes.Service, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"SealNote",
		version,
		server.WithToolCapabilities(true),
	)

	names := make([]string, 0, len(lifecycle.Presets()))
	for _, p := range lifecycle.Presets() {
		names = append(names, p.Name)
	}

	s.AddTool(
		mcp.NewTool("store_note",
			mcp.WithDescription("Encrypt a note under a password and store it. Anyone who knows the password can read it back; there is no other way to recover it."),
			mcp.WithString("text",
				mcp.Required(),
				mcp.Description("Note body, up to 5000 characters"),
			),
			mcp.WithString("password",
				mcp.Required(),
				mcp.Description("Password that unlocks the note, at least 3 characters"),
			),
			mcp.WithString("expiration",
				mcp.Description("When the note expires (default: never)"),
				mcp.Enum(names...),
			),
			mcp.WithBoolean("one_time",
				mcp.Description("Delete the note after its first successful read"),
			),
		),
		handleStoreNote(svc),
	)

	s.AddTool(
		mcp.NewTool("retrieve_note",
			mcp.WithDescription("Decrypt the note stored under a password. One-time notes are deleted by this call."),
			mcp.WithString("password",
				mcp.Required(),
				mcp.Description("Password the note was stored with"),
			),
		),
		handleRetrieveNote(svc),
	)

	s.AddTool(
		mcp.NewTool("list_expirations",
			mcp.WithDescription("List the accepted values for the expiration argument of store_note."),
		),
		handleListExpirations(),
	)

	return s
}

// StoreResult is the store_note response.
type StoreResult struct {
	ID        string     `json:"id"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	OneTime   bool       `json:"oneTime"`
}

// NoteResult is the retrieve_note response.
type NoteResult struct {
	Text      string     `json:"text"`
	OneTime   bool       `json:"oneTime"`
	ViewCount int64      `json:"viewCount"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ExpirationResult describes one accepted expiration.
type ExpirationResult struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Seconds int64  `json:"seconds"`
}

func handleStoreNote(svc *notes.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := req.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError("text is required"), nil
		}
		password, err := req.RequireString("password")
		if err != nil {
			return mcp.NewToolResultError("password is required"), nil
		}

		exp, err := lifecycle.ParseExpiration(req.GetString("expiration", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		in := notes.StoreInput{
			Text:      text,
			Password:  password,
			ExpiresAt: exp.At(time.Now()),
			OneTime:   req.GetBool("one_time", false),
		}

		res, err := svc.Store(ctx, in)
		if err != nil {
			if errors.Is(err, common.ErrorValidation) {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("failed to store note: %v", err)), nil
		}

		data, _ := json.MarshalIndent(StoreResult{ID: res.ID, ExpiresAt: in.ExpiresAt, OneTime: in.OneTime}, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func handleRetrieveNote(svc *notes.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		password, err := req.RequireString("password")
		if err != nil {
			return mcp.NewToolResultError("password is required"), nil
		}

		got, err := svc.Retrieve(ctx, password)
		if err != nil {
			return mcp.NewToolResultError(notes.PublicMessage(err)), nil
		}

		data, _ := json.MarshalIndent(NoteResult{
			Text:      got.Plaintext,
			OneTime:   got.Meta.OneTime,
			ViewCount: got.Meta.ViewCount,
			ExpiresAt: got.Meta.ExpiresAt,
			CreatedAt: got.Meta.CreatedAt,
		}, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func handleListExpirations() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		presets := lifecycle.Presets()
		results := make([]ExpirationResult, len(presets))
		for i, p := range presets {
			results[i] = ExpirationResult{Name: p.Name, Label: p.Label, Seconds: int64(p.TTL / time.Second)}
		}

		data, _ := json.MarshalIndent(results, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}
