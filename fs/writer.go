// Package fs mirrors crawled page text to plain files, one per slug.
package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/MuhammadAbbas01/unibot"
)

// Ensure Writer implements unibot.PageWriter at compile time.
var _ unibot.PageWriter = (*Writer)(nil)

// Writer writes page text to <baseDir>/<slug>.txt.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// Path returns the file a page with the given slug is written to.
func (w *Writer) Path(slug string) string {
	return filepath.Join(w.baseDir, slug+".txt")
}

// WritePage writes the page text unless the file already exists.
// With opts.Refresh an existing file is replaced when its text differs.
// Files are written to a temporary name and renamed into place.
func (w *Writer) WritePage(ctx context.Context, page *unibot.Page, opts unibot.WriteOptions) (unibot.WriteOutcome, error) {
	if err := page.Validate(); err != nil {
		return unibot.WriteSkipped, err
	}

	path := w.Path(page.Slug)
	outcome := unibot.WriteCreated

	existing, err := os.ReadFile(path)
	switch {
	case errors.Is(err, iofs.ErrNotExist):
	case err != nil:
		return unibot.WriteSkipped, err
	case !opts.Refresh || string(existing) == page.Content:
		return unibot.WriteSkipped, nil
	default:
		outcome = unibot.WriteUpdated
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return unibot.WriteSkipped, err
	}
	if err := writeAtomic(path, []byte(page.Content)); err != nil {
		return unibot.WriteSkipped, err
	}
	return outcome, nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
