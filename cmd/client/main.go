package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/sealnote/internal/buildinfo"
	"github.com/dmitrijs2005/sealnote/internal/client/cli"
	"github.com/dmitrijs2005/sealnote/internal/client/config"
	"github.com/dmitrijs2005/sealnote/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewText(os.Stderr, cfg.LogLevel)

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
