package download

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/bookfetch/internal/core/ports/driven"
)

// Ensure AtomicWriter implements the interface.
var _ driven.FileWriter = (*AtomicWriter)(nil)

// AtomicWriter writes files via a temporary sibling and a rename, so the
// destination is either complete or untouched.
type AtomicWriter struct {
	// Perm is the mode of written files.
	Perm os.FileMode
}

// NewAtomicWriter creates a writer producing 0644 files.
func NewAtomicWriter() *AtomicWriter {
	return &AtomicWriter{Perm: 0644}
}

// WriteFile writes data to path, creating the parent directory if needed.
func (w *AtomicWriter) WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.part")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Chmod(tmpName, w.Perm); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}

	committed = true
	return nil
}
