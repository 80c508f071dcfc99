package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/docna/docna/internal/app"
)

// Version is reported by `analyze --version`.
const Version = "0.9.1"

const progName = "docna"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Command is one parsed invocation. Exactly one of the config fields is set,
// matching Name.
type Command struct {
	Name      string
	Analyze   *app.AnalyzeConfig
	Viewer    *app.ViewerConfig
	GetConfig *app.GetConfigConfig
}

// Execute forwards the command to its handler.
func (c *Command) Execute(ctx context.Context, a *app.App) (*app.Result, error) {
	switch c.Name {
	case "analyze":
		return a.Analyze(ctx, c.Analyze)
	case "viewer":
		return a.Viewer(ctx, c.Viewer)
	case "getconfig":
		return a.GetConfig(ctx, c.GetConfig)
	default:
		return nil, fmt.Errorf("unknown command %q", c.Name)
	}
}

type subcommand struct {
	name        string
	description string
	parse       func(args []string, output io.Writer) (*Command, bool, error)
}

var subcommands = []subcommand{
	{"analyze", "runs the analysis", parseAnalyze},
	{"viewer", "launches the viewer", parseViewer},
	{"getconfig", "copies default docna config to a directory", parseGetConfig},
}

func printUsage(output io.Writer) {
	fmt.Fprint(output, `
doCNA - Scan chromosomes in search for non-HE segments. Assigns copy numbers if can.

Usage:
  docna [-h] {analyze,viewer,getconfig} ...

Actions:
`)
	for _, sc := range subcommands {
		fmt.Fprintf(output, "  %-11s %s\n", sc.name, sc.description)
	}
	fmt.Fprintf(output, "\nRun '%s <action> -h' for the options of an action.\n", progName)
}

// Parse processes command-line arguments. It returns the parsed command, a
// boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*Command, bool, error) {
	slog.Debug("CLI parser started.")
	if len(args) == 0 {
		printUsage(output)
		return nil, false, usageError("the following arguments are required: action")
	}

	switch args[0] {
	case "-h", "-help", "--help":
		printUsage(output)
		return nil, true, nil
	}
	for _, sc := range subcommands {
		if sc.name == args[0] {
			slog.Debug("Subcommand selected.", "action", sc.name)
			return sc.parse(args[1:], output)
		}
	}

	printUsage(output)
	return nil, false, usageError("invalid action %q: choose from analyze, viewer, getconfig", args[0])
}

// newFlagSet builds a subcommand flag set whose usage text starts with
// header.
func newFlagSet(name, header string, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(progName+" "+name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, header)
		fs.PrintDefaults()
	}
	return fs
}

// parseFlags runs fs over args. Positional arguments are rejected.
func parseFlags(fs *flag.FlagSet, args []string) (bool, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return true, nil
		}
		return false, usageError("%s", err.Error())
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return false, usageError("unrecognized arguments: %v", fs.Args())
	}
	return false, nil
}
