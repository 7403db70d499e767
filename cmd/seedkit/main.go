package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Stdout, os.Stderr, os.Args[1:])
	stop()

	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run parses args and performs one generation run. Records printed by the
// stdout sink go to stdout; logs and usage go to stderr.
func run(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	opts, shouldExit, err := parse(args, stderr)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}
	return execute(ctx, opts, stdout, stderr)
}
