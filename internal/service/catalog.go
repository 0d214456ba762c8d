package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"marketplace-backend/internal/apperr"
	"marketplace-backend/internal/dto"
	"marketplace-backend/internal/model"
	"marketplace-backend/internal/principal"
	"marketplace-backend/internal/repository"
)

// CatalogFilter is the client-facing listing filter. VendorScope
// restricts to one owner's products; combined with the caller's own
// identity it is also the escape hatch that lets a vendor see their
// unapproved products.
type CatalogFilter struct {
	Keyword     string
	VendorScope string
}

type CatalogService interface {
	List(ctx context.Context, filter CatalogFilter, p principal.Principal) ([]*model.Product, error)
	Get(ctx context.Context, productID string, p principal.Principal) (*model.Product, error)
	Create(ctx context.Context, req *dto.CreateProductRequest, p principal.Principal) (*model.Product, error)
	Update(ctx context.Context, productID string, req *dto.UpdateProductRequest, p principal.Principal) (*model.Product, error)
	Delete(ctx context.Context, productID string, p principal.Principal) error
	SeedDemoCatalog(ctx context.Context) error
}

type catalogServiceImpl struct {
	productRepo repository.ProductRepository
	log         *logrus.Logger
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	log *logrus.Logger,
) CatalogService {
	return &catalogServiceImpl{
		productRepo: productRepo,
		log:         log,
	}
}

func (s *catalogServiceImpl) List(ctx context.Context, filter CatalogFilter, p principal.Principal) ([]*model.Product, error) {
	q := repository.ProductQuery{
		Keyword:    filter.Keyword,
		OwnerScope: filter.VendorScope,
	}

	switch {
	case p.IsAdmin():
		// admins see everything
	case filter.VendorScope != "" && p.IsAuthenticated && filter.VendorScope == p.ID:
		// a vendor browsing their own scope sees their unapproved
		// products too
	default:
		q.ApprovedOnly = true
	}

	return s.productRepo.Find(ctx, q)
}

// canView reports whether the principal may see the product at all.
func canView(product *model.Product, p principal.Principal) bool {
	if product.IsApproved {
		return true
	}
	return p.IsAdmin() || (p.IsAuthenticated && product.OwnerID == p.ID)
}

func (s *catalogServiceImpl) Get(ctx context.Context, productID string, p principal.Principal) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	// unapproved and foreign products look absent, not forbidden
	if product == nil || !canView(product, p) {
		return nil, apperr.NotFoundf("product not found")
	}

	return product, nil
}

func (s *catalogServiceImpl) Create(ctx context.Context, req *dto.CreateProductRequest, p principal.Principal) (*model.Product, error) {
	if !p.IsStaff() {
		return nil, apperr.Forbiddenf("not authorized to create products")
	}
	if req.Name == "" {
		return nil, apperr.Validationf("product name is required")
	}
	if req.Stock < 0 {
		return nil, apperr.Validationf("stock cannot be negative")
	}

	approved := p.IsAdmin()
	if p.IsAdmin() && req.IsApproved != nil {
		approved = *req.IsApproved
	}

	product := &model.Product{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Stock:       req.Stock,
		Category:    req.Category,
		Image:       req.Image,
		VendorTag:   req.VendorTag,
		// never trust a client-supplied owner
		OwnerID:    p.ID,
		IsApproved: approved,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"product_id": product.ID,
		"owner_id":   product.OwnerID,
		"approved":   product.IsApproved,
	}).Info("product created")

	return product, nil
}

// loadOwned fetches the product and checks the admin-or-owner rule
// shared by update and delete.
func (s *catalogServiceImpl) loadOwned(ctx context.Context, productID string, p principal.Principal) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperr.NotFoundf("product not found")
	}
	if !p.IsAdmin() && product.OwnerID != p.ID {
		return nil, apperr.Forbiddenf("not authorized to modify this product")
	}
	return product, nil
}

func (s *catalogServiceImpl) Update(ctx context.Context, productID string, req *dto.UpdateProductRequest, p principal.Principal) (*model.Product, error) {
	if _, err := s.loadOwned(ctx, productID, p); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, apperr.Validationf("stock cannot be negative")
		}
		fields["stock"] = *req.Stock
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.Image != nil {
		fields["image"] = *req.Image
	}
	if req.VendorTag != nil {
		fields["vendor_tag"] = *req.VendorTag
	}
	// only admins flip approval; other callers' attempts are ignored
	if req.IsApproved != nil && p.IsAdmin() {
		fields["is_approved"] = *req.IsApproved
	}

	if len(fields) > 0 {
		if err := s.productRepo.Updates(ctx, productID, fields); err != nil {
			return nil, err
		}
	}

	return s.productRepo.FindByID(ctx, productID)
}

func (s *catalogServiceImpl) Delete(ctx context.Context, productID string, p principal.Principal) error {
	if _, err := s.loadOwned(ctx, productID, p); err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return err
	}

	s.log.WithField("product_id", productID).Info("product deleted")
	return nil
}

func (s *catalogServiceImpl) SeedDemoCatalog(ctx context.Context) error {
	products := []model.Product{
		{
			ID:         "prod-espresso-maker",
			Name:       "Espresso Maker",
			Price:      decimal.NewFromInt(129),
			Category:   "kitchen",
			Stock:      25,
			VendorTag:  "platform",
			OwnerID:    "admin-seed",
			IsApproved: true,
		},
		{
			ID:         "prod-trail-backpack",
			Name:       "Trail Backpack 30L",
			Price:      decimal.NewFromInt(89),
			Category:   "outdoor",
			Stock:      40,
			VendorTag:  "platform",
			OwnerID:    "admin-seed",
			IsApproved: true,
		},
		{
			ID:         "prod-desk-lamp",
			Name:       "Adjustable Desk Lamp",
			Price:      decimal.NewFromInt(35),
			Category:   "home",
			Stock:      60,
			VendorTag:  "platform",
			OwnerID:    "admin-seed",
			IsApproved: true,
		},
	}

	return s.productRepo.Seed(ctx, products)
}
