package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tendant/simple-catalog/pkg/catalog"
)

// ErrObjectNotFound is returned by Object when nothing was uploaded under a key
var ErrObjectNotFound = errors.New("object not found")

// Object is an uploaded blob held in memory
type Object struct {
	Data        []byte
	ContentType string
}

// Backend is an in-memory implementation of the catalog.BlobStore interface
type Backend struct {
	mu      sync.RWMutex
	objects map[string]Object // "bucket/key" -> object
}

// New creates a new in-memory storage backend
func New() *Backend {
	return &Backend{
		objects: make(map[string]Object),
	}
}

// Upload stores a copy of the payload; the location is memory://<bucket>/<key>
func (b *Backend) Upload(ctx context.Context, params catalog.UploadParams) (*catalog.UploadResult, error) {
	if params.Key == "" {
		return nil, errors.New("object key is required")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.objects[objectPath(params.Bucket, params.Key)] = Object{
		Data:        append([]byte(nil), params.Body...),
		ContentType: params.ContentType,
	}

	return &catalog.UploadResult{
		Location: fmt.Sprintf("memory://%s", objectPath(params.Bucket, params.Key)),
	}, nil
}

// Object returns a copy of the blob stored under bucket and key
func (b *Backend) Object(bucket, key string) (Object, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	obj, exists := b.objects[objectPath(bucket, key)]
	if !exists {
		return Object{}, ErrObjectNotFound
	}
	obj.Data = append([]byte(nil), obj.Data...)
	return obj, nil
}

// Len returns the number of stored objects
func (b *Backend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.objects)
}

func objectPath(bucket, key string) string {
	return bucket + "/" + key
}
