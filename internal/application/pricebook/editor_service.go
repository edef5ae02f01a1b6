package pricebook

import (
	"context"
	"strings"

	"github.com/pricebook/backend/internal/domain/pricebook"
)

// EditorService validates single-product form submissions before they
// reach the catalog.
type EditorService struct {
	catalog *CatalogService
}

// NewEditorService creates an EditorService.
func NewEditorService(catalog *CatalogService) *EditorService {
	return &EditorService{catalog: catalog}
}

func prepare(f pricebook.Fields, syncUnitPrices bool) (pricebook.Fields, error) {
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		return f, pricebook.ErrInvalidName
	}
	if syncUnitPrices {
		f = pricebook.DeriveUnitPrices(f)
	}
	return f, nil
}

// Create adds a product. A blank name is rejected before the catalog is
// touched.
func (e *EditorService) Create(ctx context.Context, fields pricebook.Fields, syncUnitPrices bool) (pricebook.Product, error) {
	f, err := prepare(fields, syncUnitPrices)
	if err != nil {
		return pricebook.Product{}, err
	}
	return e.catalog.Create(ctx, f), nil
}

// Update merges patch into a product. The merged record must still have a
// name.
func (e *EditorService) Update(ctx context.Context, id string, patch pricebook.Patch, syncUnitPrices bool) (pricebook.Product, error) {
	return e.edit(ctx, id, func(current pricebook.Fields) (pricebook.Fields, error) {
		merged, err := current.Apply(patch)
		if err != nil {
			return current, err
		}
		return prepare(merged, syncUnitPrices)
	})
}

// Replace overwrites every editable field of a product.
func (e *EditorService) Replace(ctx context.Context, id string, fields pricebook.Fields, syncUnitPrices bool) (pricebook.Product, error) {
	f, err := prepare(fields, syncUnitPrices)
	if err != nil {
		return pricebook.Product{}, err
	}
	return e.edit(ctx, id, func(pricebook.Fields) (pricebook.Fields, error) { return f, nil })
}

func (e *EditorService) edit(ctx context.Context, id string, fn func(pricebook.Fields) (pricebook.Fields, error)) (pricebook.Product, error) {
	p, found, err := e.catalog.Edit(ctx, id, fn)
	if err != nil {
		return pricebook.Product{}, err
	}
	if !found {
		return pricebook.Product{}, pricebook.ErrProductNotFound
	}
	return p, nil
}

// Derive returns fields with unit prices filled from case prices. It does
// not validate or store anything.
func (e *EditorService) Derive(fields pricebook.Fields) pricebook.Fields {
	return pricebook.DeriveUnitPrices(fields)
}
