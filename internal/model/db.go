package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `gorm:"primaryKey;size:64;not null" json:"id"`
	Name        string          `gorm:"size:255;index;not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Description string          `gorm:"type:text" json:"description"`
	Stock       int             `gorm:"not null;default:0" json:"stock"`
	Category    string          `gorm:"size:64;index" json:"category"`
	Image       string          `gorm:"size:255" json:"image"`
	// display label only; ownership is tracked by OwnerID
	VendorTag  string    `gorm:"size:64" json:"vendorTag"`
	OwnerID    string    `gorm:"size:64;index;not null" json:"ownerId"`
	IsApproved bool      `gorm:"index;not null" json:"isApproved"`
	Rating     float64   `gorm:"not null;default:0" json:"rating"`
	NumReviews int       `gorm:"not null;default:0" json:"numReviews"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type ShippingAddress struct {
	Address    string `gorm:"size:255" json:"address"`
	City       string `gorm:"size:128" json:"city"`
	PostalCode string `gorm:"size:32" json:"postalCode"`
	Country    string `gorm:"size:64" json:"country"`
}

// PaymentResult is the confirmation payload recorded verbatim when an
// order is marked paid. The gateway itself is outside this service.
type PaymentResult struct {
	ConfirmationID string `gorm:"size:128" json:"id"`
	Status         string `gorm:"size:64" json:"status"`
	UpdateTime     string `gorm:"size:64" json:"update_time"`
	EmailAddress   string `gorm:"size:255" json:"email_address"`
}

type Order struct {
	ID     string `gorm:"primaryKey;size:64;not null" json:"id"`
	UserID string `gorm:"size:64;index;not null" json:"userId"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"orderItems"`

	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shippingAddress"`
	PaymentMethod   string          `gorm:"size:64;not null" json:"paymentMethod"`

	ItemsPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"itemsPrice"`
	TaxPrice      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"taxPrice"`
	ShippingPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"shippingPrice"`
	TotalPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalPrice"`

	IsPaid        bool          `gorm:"index;not null" json:"isPaid"`
	PaidAt        *time.Time    `json:"paidAt,omitempty"`
	PaymentResult PaymentResult `gorm:"embedded;embeddedPrefix:pay_" json:"paymentResult"`

	IsDelivered bool       `gorm:"not null" json:"isDelivered"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`

	// bumped on every state-changing write; guards lost updates
	Version int `gorm:"not null;default:0" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type OrderItem struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// FK → order.id
	OrderID string `gorm:"size:64;index;not null" json:"-"`
	// FK → product.id
	ProductID    string          `gorm:"size:64;index;not null" json:"productId"`
	Name         string          `gorm:"size:255;not null" json:"name"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	PriceAtOrder decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"priceAtOrder"`
	Image        string          `gorm:"size:255" json:"image"`

	Return ReturnExchangeRecord `gorm:"embedded;embeddedPrefix:return_" json:"returnExchange"`

	CreatedAt time.Time `json:"-"`
}

// ProcessedPayment records payment confirmation ids that have already
// been applied, so a replayed confirmation cannot re-mark an order.
type ProcessedPayment struct {
	ConfirmationID string `gorm:"primaryKey;size:128;not null"`
	OrderID        string `gorm:"size:64;index;not null"`
	ProcessedAt    time.Time
	CreatedAt      time.Time
}

func AllModels() []any {
	return []any{
		&Product{},
		&Order{},
		&OrderItem{},
		&ProcessedPayment{},
	}
}
