package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentStatus enumerates the payment lifecycle of an order.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "P"
	PaymentComplete PaymentStatus = "C"
	PaymentFailed   PaymentStatus = "F"
)

// Valid reports whether s is one of the known statuses.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentComplete, PaymentFailed:
		return true
	}
	return false
}

// Order is a finalized purchase derived from a cart.
type Order struct {
	ID            uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	CustomerID    uuid.UUID     `json:"customer_id" gorm:"type:uuid;index;not null"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"type:text;index;not null;default:'P'"`
	Items         []OrderItem   `json:"items" gorm:"foreignKey:OrderID"`
	PlacedAt      time.Time     `json:"placed_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.PaymentStatus == "" {
		o.PaymentStatus = PaymentPending
	}
	return nil
}

// Total sums quantity * unit price across the order lines.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// OrderItem captures the unit price at checkout; later product price changes do not affect it.
type OrderItem struct {
	ID        uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `json:"order_id" gorm:"type:uuid;index;not null"`
	ProductID uuid.UUID       `json:"product_id" gorm:"type:uuid;index;not null"`
	Product   *Product        `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(6,2);not null"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}
