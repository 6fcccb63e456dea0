package filestorage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/familyhub/portal/internal/pkg/logger"
)

// LocalStorage keeps buckets as directories on the local filesystem.
type LocalStorage struct {
	basePath string // root directory; each bucket is a subdirectory
	baseURL  string // URL prefix the root directory is served under
}

// NewLocalStorage creates a new LocalStorage instance and ensures basePath exists.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// Root returns the directory holding all buckets
func (ls *LocalStorage) Root() string {
	return ls.basePath
}

// objectFile maps bucket/objectPath to a file below basePath, refusing anything that escapes it.
func (ls *LocalStorage) objectFile(bucket, objectPath string) (string, error) {
	if bucket == "" || strings.ContainsAny(bucket, `/\`) || bucket == "." || bucket == ".." {
		return "", fmt.Errorf("invalid bucket name %q", bucket)
	}

	clean := path.Clean("/" + objectPath)
	if clean == "/" || objectPath == "" || strings.Contains(objectPath, "..") {
		return "", fmt.Errorf("invalid object path %q", objectPath)
	}

	return filepath.Join(ls.basePath, bucket, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

// Upload writes r to the object file. The file appears only once fully written.
func (ls *LocalStorage) Upload(ctx context.Context, bucket, objectPath string, r io.Reader) error {
	dstPath, err := ls.objectFile(bucket, objectPath)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create object directory")
		return fmt.Errorf("failed to create object directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dstPath), ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		return fmt.Errorf("failed to save file content: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to save file content: %w", err)
	}

	if err := os.Rename(tmp.Name(), dstPath); err != nil {
		return fmt.Errorf("failed to move file into place: %w", err)
	}

	logger.Info().Str("bucket", bucket).Str("object", objectPath).Msg("File saved successfully")
	return nil
}

// PublicURL returns the URL under which the object is served
func (ls *LocalStorage) PublicURL(bucket, objectPath string) string {
	return ls.baseURL + "/" + bucket + "/" + strings.TrimLeft(objectPath, "/")
}

// Remove deletes objects from a bucket. Missing files count as removed.
func (ls *LocalStorage) Remove(ctx context.Context, bucket string, objectPaths ...string) error {
	for _, objectPath := range objectPaths {
		if err := ctx.Err(); err != nil {
			return err
		}

		physicalPath, err := ls.objectFile(bucket, objectPath)
		if err != nil {
			return err
		}

		if err := os.Remove(physicalPath); err != nil {
			if os.IsNotExist(err) {
				logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
				continue
			}
			logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
			return fmt.Errorf("failed to delete file: %w", err)
		}
		logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	}
	return nil
}
