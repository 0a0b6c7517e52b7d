// Package server wires the store server together: it opens the configured
// storage backend, serves the note store over gRPC and runs the expiry
// sweeper and the optional S3 backup job until shutdown.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/sealnote/internal/logging"
	"github.com/dmitrijs2005/sealnote/internal/server/auth"
	"github.com/dmitrijs2005/sealnote/internal/server/backup"
	"github.com/dmitrijs2005/sealnote/internal/server/config"
	"github.com/dmitrijs2005/sealnote/internal/server/services"
	"github.com/dmitrijs2005/sealnote/internal/server/shared/db"
	"github.com/dmitrijs2005/sealnote/internal/server/sweeper"

	gs "github.com/dmitrijs2005/sealnote/internal/server/grpc"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	storage     *db.Storage
	noteService *services.NoteService
	backupJob   *backup.Job
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	storage, err := db.Open(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	var opts []services.Option
	if storage.SQL != nil {
		opts = append(opts, services.WithSQL(storage.SQL, storage.Manager))
	}
	ns := services.NewNoteService(storage.Notes, logger, opts...)

	app := &App{config: c, logger: logger, storage: storage, noteService: ns}

	if c.S3Bucket != "" {
		client, err := backup.NewS3Client(ctx, backup.S3Settings{
			User:         c.S3RootUser,
			Password:     c.S3RootPassword,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		})
		if err != nil {
			_ = storage.Close(ctx)
			return nil, fmt.Errorf("s3 init error: %w", err)
		}
		app.backupJob = backup.NewJob(ns, client, c.S3Bucket, logger)
	}

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.noteService, app.config.SecretKey, app.config.AuthRequired)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// waits for every component to stop and closes the storage.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.Storage)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		sweeper.Run(ctx, app.noteService, app.config.SweepInterval, app.logger)
	}()

	if app.backupJob != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.backupJob.Run(ctx, app.config.BackupInterval)
		}()
	}

	wg.Wait()

	closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.storage.Close(closeCtx); err != nil {
		app.logger.Error(closeCtx, "storage close failed", "error", err)
	}
	app.logger.Info(closeCtx, "App stopped")
}

// IssueToken writes an access token for c.IssueToken to w.
func IssueToken(c *config.Config, w io.Writer) error {
	token, err := auth.GenerateToken(c.IssueToken, []byte(c.SecretKey), c.TokenValidity)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, token)
	return err
}
