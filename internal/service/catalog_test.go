package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-backend/internal/apperr"
	"marketplace-backend/internal/dto"
)

func TestCatalog_Create_AdminApprovedByDefault(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	product, err := svc.Create(ctx, &dto.CreateProductRequest{
		Name:  "Coffee Grinder",
		Price: decimal.NewFromInt(49),
		Stock: 10,
	}, admin)

	require.NoError(t, err)
	assert.True(t, product.IsApproved)
	assert.Equal(t, admin.ID, product.OwnerID)
	assert.NotEmpty(t, product.ID)
}

func TestCatalog_Create_AdminCanStartUnapproved(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	unapproved := false
	product, err := svc.Create(ctx, &dto.CreateProductRequest{
		Name:       "Draft Product",
		IsApproved: &unapproved,
	}, admin)

	require.NoError(t, err)
	assert.False(t, product.IsApproved)
}

func TestCatalog_Create_VendorAlwaysStartsUnapproved(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	approved := true
	product, err := svc.Create(ctx, &dto.CreateProductRequest{
		Name:       "Vendor Product",
		IsApproved: &approved, // must be ignored for vendors
	}, vendor)

	require.NoError(t, err)
	assert.False(t, product.IsApproved)
	assert.Equal(t, vendor.ID, product.OwnerID)
}

func TestCatalog_Create_CustomerForbidden(t *testing.T) {
	svc, _ := newCatalogService(t)

	_, err := svc.Create(context.Background(), &dto.CreateProductRequest{Name: "Nope"}, customer)

	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestCatalog_Get_UnapprovedInvisibleToOthers(t *testing.T) {
	svc, db := newCatalogService(t)
	ctx := context.Background()
	seedProduct(t, db, "p1", vendor.ID, 5, false)

	_, err := svc.Get(ctx, "p1", anon)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.Get(ctx, "p1", customer)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.Get(ctx, "p1", vendor2)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCatalog_Get_OwnerAndAdminSeeUnapproved(t *testing.T) {
	svc, db := newCatalogService(t)
	ctx := context.Background()
	seedProduct(t, db, "p1", vendor.ID, 5, false)

	product, err := svc.Get(ctx, "p1", vendor)
	require.NoError(t, err)
	assert.Equal(t, "p1", product.ID)

	product, err = svc.Get(ctx, "p1", admin)
	require.NoError(t, err)
	assert.Equal(t, "p1", product.ID)
}

func TestCatalog_Get_MissingProduct(t *testing.T) {
	svc, _ := newCatalogService(t)

	_, err := svc.Get(context.Background(), "missing", admin)

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCatalog_List_ApprovalGate(t *testing.T) {
	svc, db := newCatalogService(t)
	ctx := context.Background()
	seedProduct(t, db, "approved-1", vendor.ID, 5, true)
	seedProduct(t, db, "hidden-1", vendor.ID, 5, false)

	products, err := svc.List(ctx, CatalogFilter{}, anon)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "approved-1", products[0].ID)

	products, err = svc.List(ctx, CatalogFilter{}, admin)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestCatalog_List_OwnershipEscapeHatch(t *testing.T) {
	svc, db := newCatalogService(t)
	ctx := context.Background()
	seedProduct(t, db, "hidden-1", vendor.ID, 5, false)

	// own scope drops the approval restriction
	products, err := svc.List(ctx, CatalogFilter{VendorScope: vendor.ID}, vendor)
	require.NoError(t, err)
	assert.Len(t, products, 1)

	// a foreign scope does not
	products, err = svc.List(ctx, CatalogFilter{VendorScope: vendor.ID}, vendor2)
	require.NoError(t, err)
	assert.Empty(t, products)

	// nor does an anonymous request for the same scope
	products, err = svc.List(ctx, CatalogFilter{VendorScope: vendor.ID}, anon)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestCatalog_List_KeywordCaseInsensitive(t *testing.T) {
	svc, db := newCatalogService(t)
	ctx := context.Background()
	seedProduct(t, db, "kettle", admin.ID, 5, true)
	seedProduct(t, db, "toaster", admin.ID, 5, true)

	products, err := svc.List(ctx, CatalogFilter{Keyword: "KETT"}, anon)

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "kettle", products[0].ID)
}

func TestCatalog_Update_OwnerCanEdit(t *testing.T) {
	svc, db := newCatalogService(t)
	ctx := context.Background()
	seedProduct(t, db, "p1", vendor.ID, 5, true)

	name := "Renamed"
	product, err := svc.Update(ctx, "p1", &dto.UpdateProductRequest{Name: &name}, vendor)

	require.NoError(t, err)
	assert.Equal(t, "Renamed", product.Name)
}

func TestCatalog_Update_NonOwnerVendorForbidden(t *testing.T) {
	svc, db := newCatalogService(t)
	ctx := context.Background()
	seedProduct(t, db, "p1", vendor.ID, 5, true)

	name := "Hijacked"
	_, err := svc.Update(ctx, "p1", &dto.UpdateProductRequest{Name: &name}, vendor2)

	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestCatalog_Update_ApprovalChangeIgnoredForNonAdmin(t *testing.T) {
	svc, db := newCatalogService(t)
	ctx := context.Background()
	seedProduct(t, db, "p1", vendor.ID, 5, false)

	approved := true
	product, err := svc.Update(ctx, "p1", &dto.UpdateProductRequest{IsApproved: &approved}, vendor)

	// silently ignored, not rejected
	require.NoError(t, err)
	assert.False(t, product.IsApproved)
}

func TestCatalog_Update_AdminFlipsApproval(t *testing.T) {
	svc, db := newCatalogService(t)
	ctx := context.Background()
	seedProduct(t, db, "p1", vendor.ID, 5, false)

	approved := true
	product, err := svc.Update(ctx, "p1", &dto.UpdateProductRequest{IsApproved: &approved}, admin)

	require.NoError(t, err)
	assert.True(t, product.IsApproved)
}

func TestCatalog_Update_MissingProduct(t *testing.T) {
	svc, _ := newCatalogService(t)

	name := "x"
	_, err := svc.Update(context.Background(), "missing", &dto.UpdateProductRequest{Name: &name}, admin)

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCatalog_Delete_OwnerAndAdmin(t *testing.T) {
	svc, db := newCatalogService(t)
	ctx := context.Background()
	seedProduct(t, db, "p1", vendor.ID, 5, true)
	seedProduct(t, db, "p2", vendor.ID, 5, true)

	require.NoError(t, svc.Delete(ctx, "p1", vendor))
	require.NoError(t, svc.Delete(ctx, "p2", admin))

	_, err := svc.Get(ctx, "p1", admin)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCatalog_Delete_NonOwnerForbidden(t *testing.T) {
	svc, db := newCatalogService(t)
	ctx := context.Background()
	seedProduct(t, db, "p1", vendor.ID, 5, true)

	err := svc.Delete(ctx, "p1", vendor2)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	err = svc.Delete(ctx, "p1", customer)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}
