// Package gitrepo clones the shell framework, theme and plugins.
package gitrepo

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/spf13/afero"

	"zshsetup/internal/logging"
	"zshsetup/internal/system"
)

type Repo struct {
	Name string
	URL  string
	Dest string
}

type Service struct {
	exec system.Executor
	fs   system.FileSystem
}

func NewService(exec system.Executor, fs system.FileSystem) *Service {
	return &Service{
		exec: exec,
		fs:   fs,
	}
}

// Present reports whether r's destination already exists. Existing
// directories are never touched, whatever they contain.
func (s *Service) Present(r Repo) (bool, error) {
	ok, err := afero.DirExists(s.fs, r.Dest)
	if err != nil {
		return false, fmt.Errorf("could not stat %s: %w", r.Dest, err)
	}
	return ok, nil
}

// Clone clones r unless its destination exists and reports whether it did.
func (s *Service) Clone(ctx context.Context, r Repo) (bool, error) {
	logger := logging.GetLogger("gitrepo")

	present, err := s.Present(r)
	if err != nil {
		return false, err
	}
	if present {
		logger.Debug().Str("repo", r.Name).Str("dest", r.Dest).Msg("already cloned")
		return false, nil
	}

	if err := s.fs.MkdirAll(filepath.Dir(r.Dest), 0o755); err != nil {
		return false, fmt.Errorf("could not create parent of %s: %w", r.Dest, err)
	}

	cmd := exec.CommandContext(ctx, "git", "clone", "--depth=1", r.URL, r.Dest)
	if err := s.exec.Run(cmd); err != nil {
		return false, fmt.Errorf("failed to clone %s: %w", r.Name, err)
	}
	logger.Info().Str("repo", r.Name).Str("dest", r.Dest).Msg("cloned")
	return true, nil
}
