package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/sealnote/internal/buildinfo"
	"github.com/dmitrijs2005/sealnote/internal/client/client"
	"github.com/dmitrijs2005/sealnote/internal/client/config"
	"github.com/dmitrijs2005/sealnote/internal/cryptox"
	"github.com/dmitrijs2005/sealnote/internal/logging"
	mcpserver "github.com/dmitrijs2005/sealnote/internal/mcp"
	"github.com/dmitrijs2005/sealnote/internal/notes"

	"github.com/mark3labs/mcp-go/server"
)

func main() {
	cfg := config.LoadConfig()

	// stdout carries the MCP protocol
	logger := logging.NewText(os.Stderr, cfg.LogLevel)

	apiClient, err := client.NewGRPCClient(cfg.ServerEndpointAddr, cfg.AccessToken, cfg.RequestTimeout)
	if err != nil {
		log.Fatalf("failed to create note store client: %v", err)
	}
	defer apiClient.Close()

	queue := notes.NewCleanupQueue(apiClient, logger)
	svc := notes.NewService(apiClient, cryptox.NewSuite(cryptox.WithIterations(cfg.KDFIterations)), logger,
		notes.WithCleanupReporter(queue))

	if err := server.ServeStdio(mcpserver.NewServer(svc, buildinfo.Version)); err != nil {
		logger.Error(context.Background(), "mcp server stopped", "error", err)
	}

	if err := queue.Flush(context.Background()); err != nil {
		logger.Error(context.Background(), "pending one-time deletes not flushed", "ids", queue.Pending(), "error", err)
	}
}
