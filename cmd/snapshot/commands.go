package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pricebook/backend/internal/domain/pricebook"
	"github.com/pricebook/backend/internal/infrastructure/export"
)

// ErrSnapshotExists is returned by seed when the key already holds a
// catalog and force is not set.
var ErrSnapshotExists = errors.New("snapshot already exists, use -force to overwrite")

// ErrNotConfirmed is returned by reset without -confirm.
var ErrNotConfirmed = errors.New("reset cancelled, use 'snapshot reset -confirm' to confirm")

// snapshotTool runs maintenance commands against one snapshot key.
type snapshotTool struct {
	store pricebook.SnapshotStore
	key   string
	now   func() time.Time
}

func (t *snapshotTool) load(ctx context.Context) ([]pricebook.Product, error) {
	payload, err := t.store.Load(ctx, t.key)
	if err != nil {
		return nil, err
	}
	return pricebook.DecodeSnapshot(payload)
}

// dump writes the stored catalog as JSON, CSV or XLSX.
func (t *snapshotTool) dump(ctx context.Context, w io.Writer, format string) error {
	products, err := t.load(ctx)
	if errors.Is(err, pricebook.ErrSnapshotNotFound) {
		products = nil
	} else if err != nil {
		return err
	}

	if format == "" || format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if products == nil {
			products = []pricebook.Product{}
		}
		return enc.Encode(products)
	}

	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	return export.Write(w, f, products)
}

// stats reports the catalog summary.
func (t *snapshotTool) stats(ctx context.Context, w io.Writer) error {
	products, err := t.load(ctx)
	if err != nil && !errors.Is(err, pricebook.ErrSnapshotNotFound) {
		return err
	}
	s := pricebook.ComputeStats(products)
	avg := "-"
	if s.MarginSamples > 0 {
		avg = fmt.Sprintf("%d%%", s.AverageMargin)
	}
	_, err = fmt.Fprintf(w, "key: %s\nproducts: %d\ninventory value: %.2f\naverage margin: %s\n",
		t.key, s.TotalItems, s.InventoryValue, avg)
	return err
}

// seed writes the starter catalog. An existing snapshot is kept unless
// force is set.
func (t *snapshotTool) seed(ctx context.Context, force bool) (int, error) {
	if !force {
		_, err := t.store.Load(ctx, t.key)
		if err == nil {
			return 0, ErrSnapshotExists
		}
		if !errors.Is(err, pricebook.ErrSnapshotNotFound) {
			return 0, err
		}
	}

	products := pricebook.SeedProducts(t.now().UnixMilli())
	payload, err := pricebook.EncodeSnapshot(products)
	if err != nil {
		return 0, err
	}
	if err := t.store.Save(ctx, t.key, payload); err != nil {
		return 0, err
	}
	return len(products), nil
}

// reset deletes the snapshot. The server reseeds on its next start.
func (t *snapshotTool) reset(ctx context.Context, confirm bool) error {
	if !confirm {
		return ErrNotConfirmed
	}
	return t.store.Delete(ctx, t.key)
}
