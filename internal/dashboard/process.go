package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/docna/docna/internal/ctxlog"
)

// Defaults for the bundled dashboard.
const (
	DefaultCommand     = "shiny"
	DefaultApp         = "doCNA.viewer.app"
	DefaultGracePeriod = 5 * time.Second
)

// Spec is where the dashboard listens.
type Spec struct {
	Host   string
	Port   string
	Remote bool
}

// URL is the address users open in a browser.
func (s Spec) URL() string {
	return "http://" + net.JoinHostPort(s.Host, s.Port)
}

// Options configure the dashboard command line and stream wiring.
type Options struct {
	// Command and Prefix form the start of the command line; the port, host
	// and App arguments follow.
	Command string
	Prefix  []string
	App     string

	Stdout io.Writer
	Stderr io.Writer

	// GracePeriod is how long a terminated child may take to exit before it
	// is killed.
	GracePeriod time.Duration

	// BeforeStart runs right before the child is started. Used to release a
	// port reservation as late as possible.
	BeforeStart func() error
}

// DefaultOptions runs `shiny run ... doCNA.viewer.app` attached to the
// parent's streams.
func DefaultOptions() Options {
	return Options{
		Command:     DefaultCommand,
		Prefix:      []string{"run"},
		App:         DefaultApp,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		GracePeriod: DefaultGracePeriod,
	}
}

// Args is the full argument list after the command name.
func (o Options) Args(spec Spec) []string {
	args := append([]string(nil), o.Prefix...)
	args = append(args, "--port", spec.Port, "--host", spec.Host)
	if o.App != "" {
		args = append(args, o.App)
	}
	return args
}

// ExitError reports that the dashboard exited unsuccessfully.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("dashboard exited with status %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Process is a handle on one dashboard child.
type Process struct {
	spec Spec
	opts Options

	mu  sync.Mutex
	cmd *exec.Cmd
}

// NewProcess prepares, but does not start, a dashboard process.
func NewProcess(spec Spec, opts Options) *Process {
	if opts.Command == "" {
		opts.Command = DefaultCommand
	}
	if opts.GracePeriod <= 0 {
		opts.GracePeriod = DefaultGracePeriod
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	return &Process{spec: spec, opts: opts}
}

// Start launches the child. Cancelling ctx terminates it: SIGTERM first,
// then a kill once the grace period has passed.
func (p *Process) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cmd != nil {
		return errors.New("dashboard process already started")
	}

	cmd := exec.CommandContext(ctx, p.opts.Command, p.opts.Args(p.spec)...)
	cmd.Stdout = p.opts.Stdout
	cmd.Stderr = p.opts.Stderr
	cmd.Cancel = func() error { return cmd.Process.Signal(syscall.SIGTERM) }
	cmd.WaitDelay = p.opts.GracePeriod

	if p.opts.BeforeStart != nil {
		if err := p.opts.BeforeStart(); err != nil {
			return fmt.Errorf("failed to prepare dashboard launch: %w", err)
		}
	}

	ctxlog.FromContext(ctx).Debug("Starting dashboard.", "command", cmd.Path, "args", cmd.Args[1:])
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start dashboard %q: %w", p.opts.Command, err)
	}
	p.cmd = cmd
	return nil
}

// Wait blocks until the child exits. A non-zero exit is an *ExitError.
func (p *Process) Wait() error {
	p.mu.Lock()
	cmd := p.cmd
	p.mu.Unlock()
	if cmd == nil {
		return errors.New("dashboard process not started")
	}

	err := cmd.Wait()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Code: exitErr.ExitCode(), Err: err}
	}
	return err
}

// Terminate asks the child to stop.
func (p *Process) Terminate() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cmd == nil || p.cmd.Process == nil {
		return errors.New("dashboard process not started")
	}
	if err := p.cmd.Process.Signal(syscall.SIGTERM); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}

// Pid is the child's process id, or 0 before Start.
func (p *Process) Pid() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cmd == nil || p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

// Run starts the dashboard and waits for it to exit.
func Run(ctx context.Context, spec Spec, opts Options) error {
	p := NewProcess(spec, opts)
	if err := p.Start(ctx); err != nil {
		return err
	}
	return p.Wait()
}
