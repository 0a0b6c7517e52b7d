package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Store(ctx context.Context) error
	Retrieve(ctx context.Context) error
	Expirations(ctx context.Context) error
	Flush(ctx context.Context) error
}

// runREPL reads commands from reader and dispatches them to a until the
// user types "exit" or "quit", input ends or ctx is cancelled. Pending
// one-time deletes are flushed before every command and on the way out.
//
// Errors returned by command handlers are not fatal; handlers print their
// own user-facing message. Prompts inside a command read from the same
// reader, so piped scripts work line by line.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader, w io.Writer) {
	defer func() { _ = a.Flush(context.WithoutCancel(ctx)) }()

	for {
		if ctx.Err() != nil {
			return
		}

		fmt.Fprint(w, "sealnote> ")
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		_ = a.Flush(ctx)

		switch parts[0] {
		case "help":
			fmt.Fprintln(w, "Available commands: store, retrieve, expirations, help, exit")
		case "store", "s":
			_ = a.Store(ctx)
		case "retrieve", "r":
			_ = a.Retrieve(ctx)
		case "expirations":
			_ = a.Expirations(ctx)
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintln(w, "Unknown command:", parts[0])
		}
	}
}
