package store

import (
	"context"

	domain "github.com/cam71101/vinted-scanner/pkg/types"
)

// DisabledStore is used when no backend is configured. Every run starts from
// an empty set and nothing is persisted.
type DisabledStore struct{}

// NewDisabledStore returns a store that remembers nothing.
func NewDisabledStore() *DisabledStore {
	return &DisabledStore{}
}

// Name implements SeenStore.
func (DisabledStore) Name() string { return "disabled" }

// Close implements SeenStore.
func (DisabledStore) Close() error { return nil }

// Load always returns an empty set.
func (DisabledStore) Load(context.Context) (domain.SeenSet, error) {
	return domain.NewSeenSet(), nil
}

// Save discards the set.
func (DisabledStore) Save(context.Context, domain.SeenSet) error {
	return nil
}
