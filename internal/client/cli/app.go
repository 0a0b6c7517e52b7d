package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/sealnote/internal/client/client"
	"github.com/dmitrijs2005/sealnote/internal/client/config"
	"github.com/dmitrijs2005/sealnote/internal/cryptox"
	"github.com/dmitrijs2005/sealnote/internal/logging"
	"github.com/dmitrijs2005/sealnote/internal/notes"
)

type App struct {
	notes   *notes.Service
	cleanup *notes.CleanupQueue
	closer  io.Closer
	logger  logging.Logger
	reader  *bufio.Reader
	out     io.Writer
	now     func() time.Time
}

// NewApp connects to the note store named in c and builds the local
// protocol core on top of it.
func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr, c.AccessToken, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	suite := cryptox.NewSuite(cryptox.WithIterations(c.KDFIterations))
	a := newApp(apiClient, suite, logger, os.Stdin, os.Stdout)
	a.closer = apiClient
	return a, nil
}

func newApp(store notes.Store, suite *cryptox.Suite, logger logging.Logger, in io.Reader, out io.Writer) *App {
	queue := notes.NewCleanupQueue(store, logger)
	return &App{
		notes:   notes.NewService(store, suite, logger, notes.WithCleanupReporter(queue)),
		cleanup: queue,
		logger:  logger.With("module", "cli"),
		reader:  bufio.NewReader(in),
		out:     out,
		now:     time.Now,
	}
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.closer != nil {
			_ = a.closer.Close()
		}
	}()

	fmt.Fprintln(a.out, "SealNote CLI (type 'help' for commands)")
	runREPL(ctx, a, a.reader, a.out)
}

// Flush retries one-time deletes left over from earlier reads.
func (a *App) Flush(ctx context.Context) error {
	if len(a.cleanup.Pending()) == 0 {
		return nil
	}
	if err := a.cleanup.Flush(ctx); err != nil {
		a.logger.Warn(ctx, "pending one-time deletes not flushed", "error", err)
		return err
	}
	return nil
}
