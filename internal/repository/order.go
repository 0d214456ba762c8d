package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"marketplace-backend/internal/model"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	FindByID(ctx context.Context, orderID string) (*model.Order, error)
	FindByUser(ctx context.Context, userID string) ([]*model.Order, error)
	FindAll(ctx context.Context) ([]*model.Order, error)
	// UpdateGuarded applies fields only when the stored version still
	// matches, bumping the version. Returns whether a row was updated.
	UpdateGuarded(ctx context.Context, tx *gorm.DB, orderID string, version int, fields map[string]interface{}) (bool, error)
	UpdateItemReturn(ctx context.Context, tx *gorm.DB, itemID uint, record model.ReturnExchangeRecord) error
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) FindByID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", orderID).
		First(&order).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) FindAll(ctx context.Context) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) UpdateGuarded(ctx context.Context, tx *gorm.DB, orderID string, version int, fields map[string]interface{}) (bool, error) {
	fields["version"] = version + 1

	result := tx.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND version = ?", orderID, version).
		Updates(fields)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *orderRepoImpl) UpdateItemReturn(ctx context.Context, tx *gorm.DB, itemID uint, record model.ReturnExchangeRecord) error {
	return tx.WithContext(ctx).Model(&model.OrderItem{}).
		Where("id = ?", itemID).
		Updates(map[string]interface{}{
			"return_type":         record.Type,
			"return_reason":       record.Reason,
			"return_status":       record.Status,
			"return_requested_at": record.RequestedAt,
		}).Error
}
