package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TaxRate is applied on top of the unit price to derive PriceWithTax.
var TaxRate = decimal.RequireFromString("1.1")

// Collection groups products (a category).
type Collection struct {
	ID                uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Title             string     `json:"title" gorm:"type:text;not null"`
	FeaturedProductID *uuid.UUID `json:"featured_product_id,omitempty" gorm:"type:uuid;index;default:null"`
	// ProductCount is filled by list/detail queries only.
	ProductCount int64     `json:"product_count" gorm:"->;-:migration"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (c *Collection) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Product is a sellable catalog item.
type Product struct {
	ID           uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Title        string          `json:"title" gorm:"type:text;not null"`
	Slug         string          `json:"slug" gorm:"type:text;uniqueIndex;not null"`
	Description  string          `json:"description" gorm:"type:text"`
	UnitPrice    decimal.Decimal `json:"unit_price" gorm:"type:decimal(6,2);not null"`
	PriceWithTax decimal.Decimal `json:"price_with_tax" gorm:"-"`
	Inventory    int             `json:"inventory" gorm:"not null;default:0"`
	CollectionID uuid.UUID       `json:"collection_id" gorm:"type:uuid;index;not null"`
	Collection   *Collection     `json:"-" gorm:"foreignKey:CollectionID;constraint:OnDelete:RESTRICT"`
	Images       []ProductImage  `json:"images" gorm:"foreignKey:ProductID"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"last_update"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *Product) AfterFind(tx *gorm.DB) error {
	p.fillPriceWithTax()
	return nil
}

func (p *Product) AfterSave(tx *gorm.DB) error {
	p.fillPriceWithTax()
	return nil
}

func (p *Product) fillPriceWithTax() {
	p.PriceWithTax = p.UnitPrice.Mul(TaxRate).Round(2)
}

// ProductImage is an uploaded picture of a product. Image holds the public URL.
type ProductImage struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;index;not null"`
	Image     string    `json:"image" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (i *ProductImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
