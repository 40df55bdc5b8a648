package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cart is anonymous; its UUID is the token clients hold on to.
type Cart struct {
	ID         uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Items      []CartItem      `json:"items" gorm:"foreignKey:CartID"`
	TotalPrice decimal.Decimal `json:"total_price" gorm:"-"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// ComputeTotal sums quantity * unit price over items whose product is loaded.
func (c *Cart) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].TotalPrice())
	}
	c.TotalPrice = total
	return total
}

// CartItem is one line of a cart. (CartID, ProductID) is unique.
type CartItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CartID    uuid.UUID `json:"cart_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_product"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_product"`
	Product   *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	return nil
}

// TotalPrice is zero when the product is not loaded.
func (ci *CartItem) TotalPrice() decimal.Decimal {
	if ci.Product == nil {
		return decimal.Zero
	}
	return ci.Product.UnitPrice.Mul(decimal.NewFromInt(int64(ci.Quantity)))
}
