package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"marketplace-backend/internal/apperr"
	"marketplace-backend/internal/dto"
	"marketplace-backend/internal/model"
	"marketplace-backend/internal/principal"
	"marketplace-backend/internal/repository"
)

// OrderPolicy holds the deployment-level policy switches around the
// order lifecycle.
type OrderPolicy struct {
	// only the order owner or an admin may mark the order paid; off
	// by default so a trusted payment-webhook caller keeps working
	RequirePayerOwnership bool
	// clamp stock at zero on placement instead of failing with
	// insufficient stock (the legacy oversell behavior)
	AllowOversell bool
}

type OrderService interface {
	Place(ctx context.Context, req *dto.PlaceOrderRequest, p principal.Principal) (*model.Order, error)
	Get(ctx context.Context, orderID string, p principal.Principal) (*model.Order, error)
	ListMine(ctx context.Context, p principal.Principal) ([]*model.Order, error)
	ListAll(ctx context.Context, p principal.Principal) ([]*model.Order, error)
	MarkPaid(ctx context.Context, orderID string, confirmation *dto.PaymentConfirmation, p principal.Principal) (*model.Order, error)
	MarkDelivered(ctx context.Context, orderID string, p principal.Principal) (*model.Order, error)
	RequestReturn(ctx context.Context, orderID string, req *dto.ReturnRequest, p principal.Principal) (*model.Order, error)
	ResolveReturn(ctx context.Context, orderID string, req *dto.ReturnStatusUpdate, p principal.Principal) (*model.Order, error)
}

type orderServiceImpl struct {
	db               *gorm.DB
	policy           OrderPolicy
	orderRepo        repository.OrderRepository
	productRepo      repository.ProductRepository
	inventoryRepo    repository.InventoryRepository
	paymentEventRepo repository.PaymentEventRepository
	log              *logrus.Logger
}

func NewOrderService(
	db *gorm.DB,
	policy OrderPolicy,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
	paymentEventRepo repository.PaymentEventRepository,
	log *logrus.Logger,
) OrderService {
	return &orderServiceImpl{
		db:               db,
		policy:           policy,
		orderRepo:        orderRepo,
		productRepo:      productRepo,
		inventoryRepo:    inventoryRepo,
		paymentEventRepo: paymentEventRepo,
		log:              log,
	}
}

func (s *orderServiceImpl) Place(ctx context.Context, req *dto.PlaceOrderRequest, p principal.Principal) (*model.Order, error) {
	if !p.IsAuthenticated {
		return nil, apperr.Forbiddenf("not authorized to place orders")
	}
	if len(req.OrderItems) == 0 {
		return nil, apperr.Validationf("no order items")
	}
	for _, item := range req.OrderItems {
		if item.Quantity <= 0 {
			return nil, apperr.Validationf("item quantity must be positive")
		}
	}

	order := &model.Order{
		ID:              uuid.NewString(),
		UserID:          p.ID,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		ItemsPrice:      req.ItemsPrice,
		TaxPrice:        req.TaxPrice,
		ShippingPrice:   req.ShippingPrice,
		TotalPrice:      req.TotalPrice,
	}

	// Stock decrements and the order insert commit or roll back
	// together; a failed decrement must not leave earlier ones applied.
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, input := range req.OrderItems {
			item := model.OrderItem{
				OrderID:      order.ID,
				ProductID:    input.ProductID,
				Name:         input.Name,
				Quantity:     input.Quantity,
				PriceAtOrder: input.Price,
				Image:        input.Image,
				Return:       model.ReturnExchangeRecord{Status: model.ReturnStatusNone},
			}

			product, err := s.productRepo.FindByIDTx(ctx, tx, input.ProductID)
			if err != nil {
				return err
			}
			if product != nil {
				// snapshot catalog values at order time
				item.Name = product.Name
				item.PriceAtOrder = product.Price
				item.Image = product.Image

				if s.policy.AllowOversell {
					if _, err := s.inventoryRepo.DecrementClamped(ctx, tx, product.ID, input.Quantity); err != nil {
						return err
					}
				} else {
					applied, _, err := s.inventoryRepo.DecrementIfAvailable(ctx, tx, product.ID, input.Quantity)
					if err != nil {
						return err
					}
					if !applied {
						return apperr.Conflictf("insufficient stock for %s", product.Name)
					}
				}
			}
			// unknown product references are recorded without a
			// stock adjustment

			order.Items = append(order.Items, item)
		}

		return s.orderRepo.Create(ctx, tx, order)
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"items":    len(order.Items),
	}).Info("order placed")

	return order, nil
}

// loadOrder fetches an order, translating absence to NotFound.
func (s *orderServiceImpl) loadOrder(ctx context.Context, orderID string) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperr.NotFoundf("order not found")
	}
	return order, nil
}

func (s *orderServiceImpl) Get(ctx context.Context, orderID string, p principal.Principal) (*model.Order, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	// foreign orders look absent to non-staff callers
	if !p.IsStaff() && order.UserID != p.ID {
		return nil, apperr.NotFoundf("order not found")
	}
	return order, nil
}

func (s *orderServiceImpl) ListMine(ctx context.Context, p principal.Principal) ([]*model.Order, error) {
	if !p.IsAuthenticated {
		return nil, apperr.Forbiddenf("not authorized")
	}
	return s.orderRepo.FindByUser(ctx, p.ID)
}

func (s *orderServiceImpl) ListAll(ctx context.Context, p principal.Principal) ([]*model.Order, error) {
	if !p.IsStaff() {
		return nil, apperr.Forbiddenf("not authorized to list all orders")
	}
	return s.orderRepo.FindAll(ctx)
}

func (s *orderServiceImpl) MarkPaid(ctx context.Context, orderID string, confirmation *dto.PaymentConfirmation, p principal.Principal) (*model.Order, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if s.policy.RequirePayerOwnership && !p.IsAdmin() && order.UserID != p.ID {
		// ownership denial disguised as absence
		return nil, apperr.NotFoundf("order not found")
	}
	if order.IsPaid {
		return nil, apperr.Conflictf("order already paid")
	}

	if confirmation.ID != "" {
		seen, err := s.paymentEventRepo.Exists(ctx, confirmation.ID)
		if err != nil {
			return nil, err
		}
		if seen {
			return nil, apperr.Conflictf("payment confirmation already processed")
		}
	}

	now := time.Now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		applied, err := s.orderRepo.UpdateGuarded(ctx, tx, order.ID, order.Version, map[string]interface{}{
			"is_paid":             true,
			"paid_at":             now,
			"pay_confirmation_id": confirmation.ID,
			"pay_status":          confirmation.Status,
			"pay_update_time":     confirmation.UpdateTime,
			"pay_email_address":   confirmation.EmailAddress,
		})
		if err != nil {
			return err
		}
		if !applied {
			return apperr.Conflictf("order was updated concurrently")
		}
		if confirmation.ID != "" {
			return s.paymentEventRepo.MarkProcessed(ctx, tx, confirmation.ID, order.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"order_id":        order.ID,
		"confirmation_id": confirmation.ID,
	}).Info("order marked paid")

	return s.loadOrder(ctx, orderID)
}

func (s *orderServiceImpl) MarkDelivered(ctx context.Context, orderID string, p principal.Principal) (*model.Order, error) {
	if !p.IsStaff() {
		return nil, apperr.Forbiddenf("not authorized to mark orders delivered")
	}

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsPaid {
		return nil, apperr.Conflictf("order must be paid before delivery")
	}
	if order.IsDelivered {
		return nil, apperr.Conflictf("order already delivered")
	}

	now := time.Now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		applied, err := s.orderRepo.UpdateGuarded(ctx, tx, order.ID, order.Version, map[string]interface{}{
			"is_delivered": true,
			"delivered_at": now,
		})
		if err != nil {
			return err
		}
		if !applied {
			return apperr.Conflictf("order was updated concurrently")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithField("order_id", order.ID).Info("order marked delivered")

	return s.loadOrder(ctx, orderID)
}

func findItem(order *model.Order, itemID uint) *model.OrderItem {
	for i := range order.Items {
		if order.Items[i].ID == itemID {
			return &order.Items[i]
		}
	}
	return nil
}

func (s *orderServiceImpl) RequestReturn(ctx context.Context, orderID string, req *dto.ReturnRequest, p principal.Principal) (*model.Order, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !p.IsAuthenticated || order.UserID != p.ID {
		return nil, apperr.Forbiddenf("not authorized to request a return on this order")
	}
	if !order.IsDelivered {
		return nil, apperr.Validationf("order must be delivered before requesting a return or exchange")
	}

	item := findItem(order, req.ItemID)
	if item == nil {
		return nil, apperr.NotFoundf("order item not found")
	}
	if item.Return.Status != model.ReturnStatusNone {
		return nil, apperr.Conflictf("return or exchange already requested for this item")
	}

	returnType, ok := model.ParseReturnType(req.Type)
	if !ok {
		return nil, apperr.Validationf("unknown return type %q", req.Type)
	}

	now := time.Now()
	record := model.ReturnExchangeRecord{
		Type:        returnType,
		Reason:      req.Reason,
		Status:      model.ReturnStatusPending,
		RequestedAt: &now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.UpdateItemReturn(ctx, tx, item.ID, record); err != nil {
			return err
		}
		applied, err := s.orderRepo.UpdateGuarded(ctx, tx, order.ID, order.Version, map[string]interface{}{})
		if err != nil {
			return err
		}
		if !applied {
			return apperr.Conflictf("order was updated concurrently")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"item_id":  item.ID,
		"type":     returnType,
	}).Info("return/exchange requested")

	return s.loadOrder(ctx, orderID)
}

func (s *orderServiceImpl) ResolveReturn(ctx context.Context, orderID string, req *dto.ReturnStatusUpdate, p principal.Principal) (*model.Order, error) {
	if !p.IsStaff() {
		return nil, apperr.Forbiddenf("not authorized to resolve returns")
	}

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	item := findItem(order, req.ItemID)
	if item == nil {
		return nil, apperr.NotFoundf("order item not found")
	}

	target := model.ReturnStatus(req.Status)
	if !item.Return.CanTransitionTo(target) {
		return nil, apperr.Validationf("invalid return status transition from %s to %s", item.Return.Status, req.Status)
	}

	record := item.Return
	record.Status = target

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.UpdateItemReturn(ctx, tx, item.ID, record); err != nil {
			return err
		}
		applied, err := s.orderRepo.UpdateGuarded(ctx, tx, order.ID, order.Version, map[string]interface{}{})
		if err != nil {
			return err
		}
		if !applied {
			return apperr.Conflictf("order was updated concurrently")
		}
		// approved refunds put the units back on the shelf
		if target == model.ReturnStatusApproved && record.Type == model.ReturnTypeRefund {
			return s.inventoryRepo.Restore(ctx, tx, item.ProductID, item.Quantity)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"item_id":  item.ID,
		"status":   target,
	}).Info("return/exchange resolved")

	return s.loadOrder(ctx, orderID)
}
