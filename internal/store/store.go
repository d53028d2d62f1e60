// Package store persists the seen-set between scan runs. Every backend keeps
// the whole set as one logical document addressed by a key. The engine depends
// only on the SeenStore interface, which keeps it testable without a backend.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	domain "github.com/cam71101/vinted-scanner/pkg/types"
)

// ErrDocumentNotFound is returned when the addressed document does not exist
// at all (as opposed to existing and holding an empty set).
var ErrDocumentNotFound = errors.New("seen-set document not found")

// SeenStore loads and saves the seen-set document.
//
// Load returns the persisted identifiers. Backends report failures honestly;
// the fall-open decision belongs to the caller.
//
// Save overwrites the document with the full set in one call. There is no
// compare-and-swap: concurrent writers race and the last save wins.
type SeenStore interface {
	Load(ctx context.Context) (domain.SeenSet, error)
	Save(ctx context.Context, ids domain.SeenSet) error
	Name() string
	Close() error
}

// decodeIDs parses a JSON array of identifiers. Numeric elements are accepted
// and normalized to their decimal form so documents written by older tools
// still load. Empty input is an empty set.
func decodeIDs(data []byte) (domain.SeenSet, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return domain.NewSeenSet(), nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding seen-set document: %w", err)
	}

	set := make(domain.SeenSet, len(raw))
	for i, v := range raw {
		switch id := v.(type) {
		case string:
			set.Add(id)
		case json.Number:
			set.Add(id.String())
		default:
			return nil, fmt.Errorf("decoding seen-set document: element %d is %T, want string", i, v)
		}
	}
	return set, nil
}

// encodeIDs serializes the set as a sorted JSON array.
func encodeIDs(ids domain.SeenSet) ([]byte, error) {
	data, err := json.Marshal(ids.IDs())
	if err != nil {
		return nil, fmt.Errorf("encoding seen-set document: %w", err)
	}
	return data, nil
}
