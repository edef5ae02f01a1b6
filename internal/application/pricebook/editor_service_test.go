package pricebook

import (
	"context"
	"testing"

	"github.com/pricebook/backend/internal/domain/pricebook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditorService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects a blank name before touching the catalog", func(t *testing.T) {
		catalog, pub := newTestCatalog(t, pricebook.NewProduct("a", pricebook.Fields{Name: "A"}, 1))
		editor := NewEditorService(catalog)

		_, err := editor.Create(ctx, pricebook.Fields{Name: "   "}, false)
		assert.ErrorIs(t, err, pricebook.ErrInvalidName)
		assert.Empty(t, pub.Events())
		assert.Len(t, catalog.List(ctx), 1)
	})

	t.Run("trims the name and derives unit prices on request", func(t *testing.T) {
		catalog, _ := newTestCatalog(t, pricebook.NewProduct("a", pricebook.Fields{Name: "A"}, 1))
		editor := NewEditorService(catalog)

		p, err := editor.Create(ctx, pricebook.Fields{
			Name:               "  月兔 ",
			CaseCost:           pricebook.Num(117),
			CaseQuantity:       pricebook.Num(12),
			CaseWholesalePrice: pricebook.Num(180),
		}, true)
		require.NoError(t, err)
		assert.Equal(t, "月兔", p.Name)
		require.NotNil(t, p.UnitCost)
		assert.Equal(t, 9.75, *p.UnitCost)
		require.NotNil(t, p.WholesalePrice)
		assert.Equal(t, 15.0, *p.WholesalePrice)
	})

	t.Run("leaves unit prices alone without sync", func(t *testing.T) {
		catalog, _ := newTestCatalog(t, pricebook.NewProduct("a", pricebook.Fields{Name: "A"}, 1))
		editor := NewEditorService(catalog)

		p, err := editor.Create(ctx, pricebook.Fields{
			Name: "月兔", CaseCost: pricebook.Num(117), CaseQuantity: pricebook.Num(12),
		}, false)
		require.NoError(t, err)
		assert.Nil(t, p.UnitCost)
	})
}

func TestEditorService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects a patch that blanks the name", func(t *testing.T) {
		catalog, pub := newTestCatalog(t, pricebook.NewProduct("a", pricebook.Fields{Name: "A"}, 1))
		editor := NewEditorService(catalog)

		_, err := editor.Update(ctx, "a", pricebook.Patch{"name": ""}, false)
		assert.ErrorIs(t, err, pricebook.ErrInvalidName)
		assert.Empty(t, pub.Events())

		p, err := catalog.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "A", p.Name)
	})

	t.Run("unknown id", func(t *testing.T) {
		catalog, _ := newTestCatalog(t, pricebook.NewProduct("a", pricebook.Fields{Name: "A"}, 1))
		editor := NewEditorService(catalog)

		_, err := editor.Update(ctx, "missing", pricebook.Patch{"name": "B"}, false)
		assert.ErrorIs(t, err, pricebook.ErrProductNotFound)
	})

	t.Run("syncs unit cost from the merged record", func(t *testing.T) {
		catalog, _ := newTestCatalog(t, pricebook.NewProduct("a", pricebook.Fields{
			Name: "A", CaseCost: pricebook.Num(100), CaseQuantity: pricebook.Num(4), UnitCost: pricebook.Num(1),
		}, 1))
		editor := NewEditorService(catalog)

		p, err := editor.Update(ctx, "a", pricebook.Patch{"caseQuantity": "8"}, true)
		require.NoError(t, err)
		assert.Equal(t, 12.5, *p.UnitCost)
	})

	t.Run("numeric garbage clears the field", func(t *testing.T) {
		catalog, _ := newTestCatalog(t, pricebook.NewProduct("a", pricebook.Fields{
			Name: "A", RetailPrice: pricebook.Num(10),
		}, 1))
		editor := NewEditorService(catalog)

		p, err := editor.Update(ctx, "a", pricebook.Patch{"retailPrice": "abc"}, false)
		require.NoError(t, err)
		assert.Nil(t, p.RetailPrice)
	})
}

func TestEditorService_Replace(t *testing.T) {
	ctx := context.Background()
	catalog, _ := newTestCatalog(t, pricebook.NewProduct("a", pricebook.Fields{Name: "A"}, 1))
	editor := NewEditorService(catalog)

	_, err := editor.Replace(ctx, "a", pricebook.Fields{Name: ""}, false)
	assert.ErrorIs(t, err, pricebook.ErrInvalidName)

	_, err = editor.Replace(ctx, "missing", pricebook.Fields{Name: "B"}, false)
	assert.ErrorIs(t, err, pricebook.ErrProductNotFound)

	p, err := editor.Replace(ctx, "a", pricebook.Fields{Name: "B"}, false)
	require.NoError(t, err)
	assert.Equal(t, "B", p.Name)
}

func TestEditorService_Derive(t *testing.T) {
	editor := NewEditorService(nil)

	out := editor.Derive(pricebook.Fields{
		CaseCost:           pricebook.Num(10),
		CaseQuantity:       pricebook.Num(3),
		CaseWholesalePrice: pricebook.Num(20),
		WholesalePrice:     pricebook.Num(9),
	})
	assert.Equal(t, 3.33, *out.UnitCost)
	assert.Equal(t, 9.0, *out.WholesalePrice, "an existing wholesale price is kept")
}
