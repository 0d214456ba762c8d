package service

import (
	"fmt"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"marketplace-backend/internal/model"
	"marketplace-backend/internal/principal"
	"marketplace-backend/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.AllModels()...))

	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newCatalogService(t *testing.T) (CatalogService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewCatalogService(repository.NewProductRepository(db), newTestLogger()), db
}

func newOrderService(t *testing.T, policy OrderPolicy) (OrderService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewOrderService(
		db,
		policy,
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		repository.NewInventoryRepository(db),
		repository.NewPaymentEventRepository(db),
		newTestLogger(),
	)
	return svc, db
}

var (
	anon     = principal.Anonymous
	admin    = principal.Authenticated("admin-1", principal.RoleAdmin)
	vendor   = principal.Authenticated("vendor-1", principal.RoleVendor)
	vendor2  = principal.Authenticated("vendor-2", principal.RoleVendor)
	customer = principal.Authenticated("customer-1", principal.RoleCustomer)
)

func seedProduct(t *testing.T, db *gorm.DB, id, ownerID string, stock int, approved bool) *model.Product {
	t.Helper()
	product := &model.Product{
		ID:         id,
		Name:       "Product " + id,
		Price:      decimal.NewFromInt(10),
		Stock:      stock,
		OwnerID:    ownerID,
		IsApproved: approved,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func productStock(t *testing.T, db *gorm.DB, id string) int {
	t.Helper()
	var product model.Product
	require.NoError(t, db.Where("id = ?", id).First(&product).Error)
	return product.Stock
}
