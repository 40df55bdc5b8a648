package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a customer's rating of a product. Only the reviewer may edit it.
type Review struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProductID   uuid.UUID `json:"product_id" gorm:"type:uuid;index;not null"`
	ReviewerID  uuid.UUID `json:"reviewer_id" gorm:"type:uuid;index;not null"`
	Name        string    `json:"name" gorm:"type:text;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Rate        int       `json:"rate" gorm:"not null"`
	Date        time.Time `json:"date" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
