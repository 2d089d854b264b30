// Package filestore provides binary object storage for uploaded receipts
// and avatars. The only backend is the local filesystem; files are served
// back through the /uploads static route.
package filestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	portsrepo "github.com/financebook/financebook/internal/core/ports/repositories"
	"github.com/google/uuid"
)

// LocalFileStore saves uploads under baseDir/<kind>/ and returns URLs
// rooted at publicBaseURL/uploads/.
type LocalFileStore struct {
	baseDir       string
	publicBaseURL string
}

var _ portsrepo.FileStore = (*LocalFileStore)(nil)

// NewLocalFileStore creates the store and its base directory.
func NewLocalFileStore(baseDir, publicBaseURL string) (*LocalFileStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", baseDir, err)
	}
	return &LocalFileStore{
		baseDir:       baseDir,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}, nil
}

// Save writes the content to disk under a fresh name and returns the public
// URL. The original filename only contributes its extension; the stored name
// is a UUID so uploads can never collide or traverse directories.
func (s *LocalFileStore) Save(ctx context.Context, kind string, filename string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Join(s.baseDir, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	storedName := uuid.NewString() + ext
	path := filepath.Join(dir, storedName)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return fmt.Sprintf("%s/uploads/%s/%s", s.publicBaseURL, kind, storedName), nil
}
