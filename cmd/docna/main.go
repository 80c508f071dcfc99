package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/docna/docna/internal/app"
	"github.com/docna/docna/internal/cli"
)

// main is the entrypoint for the docna application.
func main() {
	// Use a minimal logger until the command configures its own.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Stdout, os.Stderr, os.Args[1:])
	stop()
	os.Exit(exitCode(os.Stderr, err))
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW, errW io.Writer, args []string) error {
	cmd, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	docna := app.NewApp(outW, errW, app.Deps{})
	_, err = cmd.Execute(ctx, docna)
	return err
}

// exitCode reports err on errW and maps it to a process exit code.
func exitCode(errW io.Writer, err error) int {
	if err == nil {
		return 0
	}
	if exitErr, ok := err.(*cli.ExitError); ok {
		fmt.Fprintln(errW, exitErr.Message)
		return exitErr.Code
	}
	if f, ok := app.AsFailure(err); ok {
		fmt.Fprintf(errW, "error: %v\n", f)
		return f.ExitCode()
	}
	fmt.Fprintln(errW, err)
	return 1
}
