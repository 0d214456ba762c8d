package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"marketplace-backend/internal/model"
)

// PaymentEventRepository deduplicates payment confirmations so a
// replayed confirmation id cannot be applied twice.
type PaymentEventRepository interface {
	Exists(ctx context.Context, confirmationID string) (bool, error)
	MarkProcessed(ctx context.Context, tx *gorm.DB, confirmationID, orderID string) error
}

type paymentEventRepoImpl struct {
	db *gorm.DB
}

func NewPaymentEventRepository(db *gorm.DB) PaymentEventRepository {
	return &paymentEventRepoImpl{db: db}
}

func (r *paymentEventRepoImpl) Exists(ctx context.Context, confirmationID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ProcessedPayment{}).
		Where("confirmation_id = ?", confirmationID).
		Count(&count).Error

	return count > 0, err
}

func (r *paymentEventRepoImpl) MarkProcessed(ctx context.Context, tx *gorm.DB, confirmationID, orderID string) error {
	return tx.WithContext(ctx).Create(&model.ProcessedPayment{
		ConfirmationID: confirmationID,
		OrderID:        orderID,
		ProcessedAt:    time.Now(),
	}).Error
}
