package pricebook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrSnapshotNotFound is returned by a SnapshotStore when nothing is stored
// under the key.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotStore keeps the serialised collection as one blob per key.
// Writes overwrite; there is no merge.
type SnapshotStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// EncodeSnapshot serialises the collection as a JSON array. The output is
// deterministic for a given collection.
func EncodeSnapshot(products []Product) ([]byte, error) {
	if products == nil {
		products = []Product{}
	}
	data, err := json.Marshal(products)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a stored snapshot. Records without an id make the
// whole snapshot invalid.
func DecodeSnapshot(data []byte) ([]Product, error) {
	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	seen := make(map[string]struct{}, len(products))
	for i := range products {
		if products[i].ID == "" {
			return nil, fmt.Errorf("decode snapshot: record %d has no id", i)
		}
		if _, dup := seen[products[i].ID]; dup {
			return nil, fmt.Errorf("decode snapshot: duplicate id %q", products[i].ID)
		}
		seen[products[i].ID] = struct{}{}
		products[i].Fields = products[i].Fields.sanitized()
	}
	return products, nil
}
