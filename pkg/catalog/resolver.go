package catalog

import (
	"context"
	"errors"
	"fmt"
)

// Resolver looks up records of one collection and owns the found/not-found
// decision for handlers.
type Resolver struct {
	store      DocumentStore
	collection Collection
}

// NewResolver creates a resolver for collection backed by store
func NewResolver(store DocumentStore, collection Collection) *Resolver {
	return &Resolver{store: store, collection: collection}
}

// Resolve returns the record stored under id. It fails with a KindNotFound
// *Failure when the store has no record, or when the returned record's
// identifier does not match id. Other store errors are returned wrapped.
func (r *Resolver) Resolve(ctx context.Context, id string) (Record, error) {
	if id == "" {
		return nil, NewNotFound()
	}

	record, err := r.store.Get(ctx, r.collection, id)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return nil, NewNotFound()
		}
		return nil, fmt.Errorf("failed to get %s %q: %w", r.collection.Name, id, err)
	}
	if record == nil {
		return nil, NewNotFound()
	}
	if storedID, ok := record.ID(r.collection.IDField); !ok || storedID != id {
		return nil, NewNotFound()
	}
	return record, nil
}
