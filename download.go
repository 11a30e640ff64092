package pdfannotate

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/alnah/go-pdfannotate/internal/fileutil"
)

// Downloader hands an exported file to the user. It returns where the file
// ended up, when that is meaningful.
type Downloader interface {
	Download(ctx context.Context, name, mediaType string, data []byte) (string, error)
}

// DirDownloader writes files into a directory. The bytes go to a temporary
// file in the same directory first, which is removed whether or not the
// final rename succeeds.
type DirDownloader struct {
	Dir string // empty means the working directory
}

// Download implements Downloader.
func (d DirDownloader) Download(ctx context.Context, name, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := fileutil.ValidateName(name); err != nil {
		return "", fmt.Errorf("%q: %w", name, err)
	}
	if err := fileutil.EnsureDir(d.Dir); err != nil {
		return "", err
	}
	path := filepath.Join(d.Dir, name)
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
