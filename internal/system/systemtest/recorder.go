// Package systemtest provides fake executors for tests of packages that
// shell out through system.Executor.
package systemtest

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/stretchr/testify/mock"
)

// ErrQueryFailed is returned by Recorder.Output for unknown queries, the
// same way a package query exits non-zero for a missing package.
var ErrQueryFailed = errors.New("exit status 1")

// Recorder records every command line it is asked to run.
type Recorder struct {
	Commands []string
	// Paths are the binaries LookPath can find.
	Paths map[string]string
	// Failures maps a command line prefix to the error Run returns for it.
	Failures map[string]error
	// Outputs maps a command line to the stdout of a successful query.
	Outputs map[string]string
	Root    bool
	Sudo    bool
}

func NewRecorder(binaries ...string) *Recorder {
	r := &Recorder{
		Paths:    map[string]string{},
		Failures: map[string]error{},
		Outputs:  map[string]string{},
	}
	for _, b := range binaries {
		r.Paths[b] = "/usr/bin/" + b
	}
	return r
}

func Line(cmd *exec.Cmd) string {
	return strings.Join(cmd.Args, " ")
}

func (r *Recorder) Run(cmd *exec.Cmd) error {
	line := Line(cmd)
	r.Commands = append(r.Commands, line)
	for prefix, err := range r.Failures {
		if strings.HasPrefix(line, prefix) {
			return err
		}
	}
	return nil
}

func (r *Recorder) CombinedOutput(cmd *exec.Cmd) ([]byte, error) {
	return nil, r.Run(cmd)
}

func (r *Recorder) Output(cmd *exec.Cmd) ([]byte, error) {
	line := Line(cmd)
	r.Commands = append(r.Commands, line)
	if out, ok := r.Outputs[line]; ok {
		return []byte(out), nil
	}
	return nil, ErrQueryFailed
}

func (r *Recorder) LookPath(file string) (string, error) {
	if p, ok := r.Paths[file]; ok {
		return p, nil
	}
	return "", exec.ErrNotFound
}

func (r *Recorder) IsRoot() bool  { return r.Root }
func (r *Recorder) CanSudo() bool { return r.Sudo }

// Ran reports whether a recorded command line starts with prefix.
func (r *Recorder) Ran(prefix string) bool {
	for _, c := range r.Commands {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

// Count returns how many recorded command lines start with prefix.
func (r *Recorder) Count(prefix string) int {
	n := 0
	for _, c := range r.Commands {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// MockExecutor is a testify mock keyed on the joined command line.
type MockExecutor struct {
	mock.Mock
}

func (m *MockExecutor) Run(cmd *exec.Cmd) error {
	args := m.Called(Line(cmd))
	return args.Error(0)
}

func (m *MockExecutor) CombinedOutput(cmd *exec.Cmd) ([]byte, error) {
	args := m.Called(Line(cmd))
	return []byte(args.String(0)), args.Error(1)
}

func (m *MockExecutor) Output(cmd *exec.Cmd) ([]byte, error) {
	args := m.Called(Line(cmd))
	return []byte(args.String(0)), args.Error(1)
}

func (m *MockExecutor) LookPath(file string) (string, error) {
	args := m.Called(file)
	return args.String(0), args.Error(1)
}

func (m *MockExecutor) IsRoot() bool {
	return m.Called().Bool(0)
}

func (m *MockExecutor) CanSudo() bool {
	return m.Called().Bool(0)
}
