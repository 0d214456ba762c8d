package dto

import (
	"github.com/shopspring/decimal"

	"marketplace-backend/internal/model"
)

type CreateProductRequest struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	VendorTag   string          `json:"vendorTag"`
	// honored for admins only; vendors always start unapproved
	IsApproved *bool `json:"isApproved,omitempty"`
}

// UpdateProductRequest uses pointers so absent fields stay untouched.
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Description *string          `json:"description,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Image       *string          `json:"image,omitempty"`
	VendorTag   *string          `json:"vendorTag,omitempty"`
	IsApproved  *bool            `json:"isApproved,omitempty"`
}

type OrderItemInput struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
}

type PlaceOrderRequest struct {
	OrderItems      []OrderItemInput      `json:"orderItems"`
	ShippingAddress model.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                `json:"paymentMethod"`
	ItemsPrice      decimal.Decimal       `json:"itemsPrice"`
	TaxPrice        decimal.Decimal       `json:"taxPrice"`
	ShippingPrice   decimal.Decimal       `json:"shippingPrice"`
	TotalPrice      decimal.Decimal       `json:"totalPrice"`
}

// PaymentConfirmation is the gateway payload recorded verbatim on the
// order when it is marked paid.
type PaymentConfirmation struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	UpdateTime   string `json:"update_time"`
	EmailAddress string `json:"email_address"`
}

type ReturnRequest struct {
	ItemID uint   `json:"itemId"`
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

type ReturnStatusUpdate struct {
	ItemID uint   `json:"itemId"`
	Status string `json:"status"`
}
