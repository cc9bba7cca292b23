package catalog

import (
	"context"

	"github.com/google/uuid"
)

// DocumentStore defines the interface for record persistence
type DocumentStore interface {
	// Get returns the record stored under id, or ErrRecordNotFound
	Get(ctx context.Context, collection Collection, id string) (Record, error)

	// Put inserts or fully replaces the record keyed by its identifier field
	Put(ctx context.Context, collection Collection, record Record) (*PutResult, error)

	// Delete removes the record stored under id
	Delete(ctx context.Context, collection Collection, id string) error

	// Scan returns every record of the collection, draining all pages
	Scan(ctx context.Context, collection Collection) ([]Record, error)
}

// BlobStore defines the interface for image attachment storage
type BlobStore interface {
	// Upload stores the payload and returns its retrievable location
	Upload(ctx context.Context, params UploadParams) (*UploadResult, error)
}

// IDGenerator mints identifiers for newly created records
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator generates random (version 4) UUID identifiers
type UUIDGenerator struct{}

// NewID returns a fresh random UUID string
func (UUIDGenerator) NewID() string {
	return uuid.New().String()
}

// IDGeneratorFunc adapts a plain function to IDGenerator
type IDGeneratorFunc func() string

func (f IDGeneratorFunc) NewID() string {
	return f()
}
