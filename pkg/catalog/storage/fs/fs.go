package fs

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tendant/simple-catalog/pkg/catalog"
)

// Backend is a filesystem implementation of the catalog.BlobStore interface.
// Objects are written to <BaseDir>/<bucket>/<key>.
type Backend struct {
	mu        sync.Mutex
	baseDir   string
	urlPrefix string
}

// Config options for the filesystem backend
type Config struct {
	BaseDir   string // Base directory for storing files
	URLPrefix string // Optional URL prefix for returned locations
}

// New creates a new filesystem storage backend
func New(config Config) (*Backend, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}

	baseDir, err := filepath.Abs(config.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &Backend{
		baseDir:   baseDir,
		urlPrefix: strings.TrimRight(config.URLPrefix, "/"),
	}, nil
}

// Upload writes the payload to disk. The location is <URLPrefix>/<bucket>/<key>
// when a prefix is configured, a file:// URL otherwise.
func (b *Backend) Upload(ctx context.Context, params catalog.UploadParams) (*catalog.UploadResult, error) {
	rel := filepath.Join(params.Bucket, filepath.FromSlash(params.Key))
	filePath := filepath.Join(b.baseDir, rel)
	if params.Key == "" || !strings.HasPrefix(filePath, b.baseDir+string(filepath.Separator)) {
		return nil, fmt.Errorf("invalid object key %q", params.Key)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	// Create directory structure if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(filePath, params.Body, 0644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &catalog.UploadResult{Location: b.location(rel, filePath)}, nil
}

func (b *Backend) location(rel, filePath string) string {
	if b.urlPrefix != "" {
		return b.urlPrefix + "/" + filepath.ToSlash(rel)
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(filePath)}).String()
}
