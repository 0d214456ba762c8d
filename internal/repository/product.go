package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"marketplace-backend/internal/model"
)

// ProductQuery is the already-authorized shape of a catalog listing:
// the service decides whether the approval restriction applies, the
// repository only builds SQL from it.
type ProductQuery struct {
	Keyword string
	// restrict to a single owner when set
	OwnerScope string
	// require is_approved = true when set
	ApprovedOnly bool
}

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, productID string) (*model.Product, error)
	// FindByIDTx reads within an open transaction, for callers that
	// must see their own uncommitted writes.
	FindByIDTx(ctx context.Context, tx *gorm.DB, productID string) (*model.Product, error)
	Find(ctx context.Context, q ProductQuery) ([]*model.Product, error)
	Updates(ctx context.Context, productID string, fields map[string]interface{}) error
	Delete(ctx context.Context, productID string) error
	Seed(ctx context.Context, products []model.Product) error
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID string) (*model.Product, error) {
	return r.FindByIDTx(ctx, r.db, productID)
}

func (r *productRepoImpl) FindByIDTx(ctx context.Context, tx *gorm.DB, productID string) (*model.Product, error) {
	var product model.Product
	err := tx.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) Find(ctx context.Context, q ProductQuery) ([]*model.Product, error) {
	tx := r.db.WithContext(ctx).Model(&model.Product{})

	if q.Keyword != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q.Keyword)+"%")
	}
	if q.OwnerScope != "" {
		tx = tx.Where("owner_id = ?", q.OwnerScope)
	}
	if q.ApprovedOnly {
		tx = tx.Where("is_approved = ?", true)
	}

	var products []*model.Product
	if err := tx.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) Updates(ctx context.Context, productID string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", productID).
		Updates(fields).Error
}

func (r *productRepoImpl) Delete(ctx context.Context, productID string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", productID).
		Delete(&model.Product{}).Error
}

func (r *productRepoImpl) Seed(ctx context.Context, products []model.Product) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&products).Error
}
