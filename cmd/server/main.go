package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/sealnote/internal/buildinfo"
	"github.com/dmitrijs2005/sealnote/internal/logging"
	"github.com/dmitrijs2005/sealnote/internal/server"
	"github.com/dmitrijs2005/sealnote/internal/server/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	if cfg.IssueToken != "" {
		if err := server.IssueToken(cfg, os.Stdout); err != nil {
			log.Fatalf("issue token: %v", err)
		}
		return
	}

	buildinfo.PrintBuildData(os.Stdout)
	logger := logging.NewJSON(os.Stdout, cfg.LogLevel)

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
