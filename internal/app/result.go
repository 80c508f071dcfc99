package app

import (
	"errors"
	"fmt"
)

// Kind classifies a failure by where it originated.
type Kind string

const (
	KindUsage       Kind = "usage"
	KindConfig      Kind = "config"
	KindEngine      Kind = "engine"
	KindIO          Kind = "io"
	KindLaunch      Kind = "launch"
	KindInterrupted Kind = "interrupted"
)

// Result describes a successful command.
type Result struct {
	Command string
	Message string
	// RunID identifies an analyze run in logs.
	RunID  string
	Sample string
	// Artifacts lists files written, in write order.
	Artifacts []string
	// Published lists object keys uploaded after the run.
	Published []string
	// URL is where the dashboard was served.
	URL string
}

// Failure is the structured error every handler returns.
type Failure struct {
	Kind Kind
	Err  error
	// Code overrides the exit code derived from Kind, e.g. to propagate a
	// child process's exit status.
	Code int
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// ExitCode is the process exit code for the failure.
func (f *Failure) ExitCode() int {
	if f.Code > 0 {
		return f.Code
	}
	switch f.Kind {
	case KindUsage:
		return 2
	case KindInterrupted:
		return 130
	default:
		return 1
	}
}

func fail(kind Kind, err error) *Failure {
	return &Failure{Kind: kind, Err: err}
}

// AsFailure extracts a *Failure from err.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
