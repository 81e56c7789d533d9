// Package fileutil holds small file helpers shared by the chart writers.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/couchcryptid/nom-chart/internal/domain"
)

// WriteAtomic writes data to a temp file beside path and renames it into
// place, so readers never see a partial file. Failures wrap domain.ErrOutputWrite.
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrOutputWrite, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck,gosec // write error takes precedence
		return fmt.Errorf("%w: %s: %w", domain.ErrOutputWrite, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrOutputWrite, path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil { //nolint:gosec // report output is meant to be world-readable
		return fmt.Errorf("%w: %s: %w", domain.ErrOutputWrite, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrOutputWrite, path, err)
	}
	return nil
}
