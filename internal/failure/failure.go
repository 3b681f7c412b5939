// Package failure classifies the ways an install or uninstall run can stop.
package failure

import (
	"errors"
	"fmt"
)

// Kind is the category of a failure. The orchestrator decides whether to
// halt or continue by looking at it.
type Kind int

const (
	Unknown Kind = iota
	// UnsupportedPlatform means the probe could not map the host to a handler.
	UnsupportedPlatform
	// MissingDependency means a required tool (usually the package manager
	// itself) is absent and cannot be obtained.
	MissingDependency
	// OptionalInstall is logged as a warning and never stops a run.
	OptionalInstall
	// Filesystem covers every failed read, write, backup or restore.
	Filesystem
	// Config means the configuration variables or file could not be used.
	Config
	// Command means a required external command exited with an error.
	Command
)

func (k Kind) String() string {
	switch k {
	case UnsupportedPlatform:
		return "unsupported platform"
	case MissingDependency:
		return "missing dependency"
	case OptionalInstall:
		return "optional install"
	case Filesystem:
		return "filesystem"
	case Config:
		return "configuration"
	case Command:
		return "command"
	default:
		return "unknown"
	}
}

// Fatal reports whether a failure of this kind halts the run.
func (k Kind) Fatal() bool {
	return k != OptionalInstall
}

// Error is a classified failure tied to the step that produced it.
type Error struct {
	Kind Kind
	Step string
	Err  error
}

func (e *Error) Error() string {
	if e.Step == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s (%s): %v", e.Step, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind, so callers can write
// errors.Is(err, &failure.Error{Kind: failure.Filesystem}).
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return other.Err == nil && other.Step == "" && e.Kind == other.Kind
	}
	return false
}

// New wraps err with a kind and step. A nil err yields nil.
func New(kind Kind, step string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Step: step, Err: err}
}

// Newf builds a classified failure from a format string.
func Newf(kind Kind, step, format string, args ...any) error {
	return &Error{Kind: kind, Step: step, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of the outermost *Error in err's chain, or
// Unknown when err is not classified.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Unknown
}

// StepOf returns the step recorded on err, if any.
func StepOf(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Step
	}
	return ""
}

// ExitCode maps a run error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch KindOf(err) {
	case UnsupportedPlatform:
		return 2
	case MissingDependency:
		return 3
	case Filesystem:
		return 4
	case Config:
		return 5
	default:
		return 1
	}
}

// At attaches step to err. A classified error without a step keeps its kind;
// anything else is classified as fallback.
func At(step string, fallback Kind, err error) error {
	if err == nil {
		return nil
	}
	var fe *Error
	if errors.As(err, &fe) {
		if fe.Step != "" {
			return err
		}
		return &Error{Kind: fe.Kind, Step: step, Err: fe.Err}
	}
	return &Error{Kind: fallback, Step: step, Err: err}
}
