package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/tendant/simple-catalog/pkg/catalog"
)

// Repository implements catalog.DocumentStore using in-memory storage
type Repository struct {
	mu          sync.RWMutex
	collections map[string]map[string]catalog.Record // collection name -> id -> record
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		collections: make(map[string]map[string]catalog.Record),
	}
}

func (r *Repository) Get(ctx context.Context, collection catalog.Collection, id string) (catalog.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.collections[collection.Name][id]
	if !exists {
		return nil, catalog.ErrRecordNotFound
	}

	// Return a copy to prevent external modifications
	return record.Clone(), nil
}

func (r *Repository) Put(ctx context.Context, collection catalog.Collection, record catalog.Record) (*catalog.PutResult, error) {
	id, ok := record.ID(collection.IDField)
	if !ok || id == "" {
		return nil, catalog.ErrMissingIdentifier
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records, exists := r.collections[collection.Name]
	if !exists {
		records = make(map[string]catalog.Record)
		r.collections[collection.Name] = records
	}

	// Create a copy to avoid external modifications
	records[id] = record.Clone()
	return &catalog.PutResult{}, nil
}

// Delete removes the record; deleting a missing record is not an error
func (r *Repository) Delete(ctx context.Context, collection catalog.Collection, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.collections[collection.Name], id)
	return nil
}

// Scan returns copies of every record ordered by identifier
func (r *Repository) Scan(ctx context.Context, collection catalog.Collection) ([]catalog.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := r.collections[collection.Name]
	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := make([]catalog.Record, 0, len(ids))
	for _, id := range ids {
		result = append(result, records[id].Clone())
	}
	return result, nil
}

// Len returns the number of records held for collection
func (r *Repository) Len(collection catalog.Collection) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.collections[collection.Name])
}
