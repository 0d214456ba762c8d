package repository

import (
	"context"

	"gorm.io/gorm"

	"marketplace-backend/internal/model"
)

// InventoryRepository is the per-product stock ledger. Decrements are
// single conditional UPDATEs so concurrent placements cannot oversell.
type InventoryRepository interface {
	// DecrementIfAvailable subtracts quantity when enough stock is
	// present. Returns (applied, exists).
	DecrementIfAvailable(ctx context.Context, tx *gorm.DB, productID string, quantity int) (bool, bool, error)
	// DecrementClamped subtracts quantity, flooring stock at zero.
	// Returns whether the product exists.
	DecrementClamped(ctx context.Context, tx *gorm.DB, productID string, quantity int) (bool, error)
	// Restore adds quantity back, used when a refund is approved.
	Restore(ctx context.Context, tx *gorm.DB, productID string, quantity int) error
}

type inventoryRepoImpl struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepoImpl{
		db: db,
	}
}

func (r *inventoryRepoImpl) DecrementIfAvailable(ctx context.Context, tx *gorm.DB, productID string, quantity int) (bool, bool, error) {
	result := tx.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return false, false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, true, nil
	}

	var count int64
	if err := tx.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", productID).
		Count(&count).Error; err != nil {
		return false, false, err
	}

	return false, count > 0, nil
}

func (r *inventoryRepoImpl) DecrementClamped(ctx context.Context, tx *gorm.DB, productID string, quantity int) (bool, error) {
	// full decrement when covered, otherwise floor at zero
	result := tx.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	result = tx.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", productID).
		Update("stock", 0)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *inventoryRepoImpl) Restore(ctx context.Context, tx *gorm.DB, productID string, quantity int) error {
	return tx.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", productID).
		Update("stock", gorm.Expr("stock + ?", quantity)).Error
}
