// Package fetch downloads installer scripts and font files.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"zshsetup/internal/logging"
)

// Fetcher stores the body of url at dest.
type Fetcher interface {
	Download(ctx context.Context, url, dest string, mode os.FileMode) error
}

type Client struct {
	HTTP *http.Client
	FS   afero.Fs
}

func New(fs afero.Fs) *Client {
	return &Client{
		HTTP: &http.Client{Timeout: 5 * time.Minute},
		FS:   fs,
	}
}

// Download writes into a temp file next to dest and renames it into place,
// so an interrupted download never leaves a truncated dest behind.
func (c *Client) Download(ctx context.Context, url, dest string, mode os.FileMode) error {
	logger := logging.GetLogger("fetch")
	logger.Debug().Str("url", url).Str("dest", dest).Msg("downloading")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("could not build request for %s: %w", url, err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("could not download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("could not download %s: %s", url, resp.Status)
	}

	dir := filepath.Dir(dest)
	if err := c.FS.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(c.FS, dir, "."+filepath.Base(dest)+".download-*")
	if err != nil {
		return fmt.Errorf("could not create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	n, err := io.Copy(tmp, resp.Body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = c.FS.Chmod(tmpName, mode)
	}
	if err == nil {
		err = c.FS.Rename(tmpName, dest)
	}
	if err != nil {
		_ = c.FS.Remove(tmpName)
		return fmt.Errorf("could not save %s: %w", dest, err)
	}

	logger.Debug().Int64("bytes", n).Str("dest", dest).Msg("downloaded")
	return nil
}

// DryRun logs downloads without touching the network.
type DryRun struct{}

func (DryRun) Download(ctx context.Context, url, dest string, mode os.FileMode) error {
	logger := logging.GetLogger("dry-run")
	logger.Info().Str("url", url).Str("dest", dest).Msg("would download")
	return nil
}

// Script downloads an executable installer script into a fresh directory
// under parent, or os.TempDir when parent is empty. cleanup removes the
// directory and is safe to call when err is non-nil.
func Script(ctx context.Context, f Fetcher, fs afero.Fs, parent, url, name string) (path string, cleanup func(), err error) {
	cleanup = func() {}
	dir, err := afero.TempDir(fs, parent, "zshsetup-")
	if err != nil {
		return "", cleanup, fmt.Errorf("could not create script directory: %w", err)
	}
	cleanup = func() {
		if err := fs.RemoveAll(dir); err != nil {
			logger := logging.GetLogger("fetch")
			logger.Warn().Err(err).Str("dir", dir).Msg("could not remove script directory")
		}
	}

	path = filepath.Join(dir, name)
	if err := f.Download(ctx, url, path, 0o700); err != nil {
		cleanup()
		return "", func() {}, err
	}
	return path, cleanup, nil
}
