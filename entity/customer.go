package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Membership is the customer tier. It does not influence pricing.
type Membership string

const (
	MembershipBronze Membership = "B"
	MembershipSilver Membership = "S"
	MembershipGold   Membership = "G"
)

// Valid reports whether m is one of the known tiers.
func (m Membership) Valid() bool {
	switch m {
	case MembershipBronze, MembershipSilver, MembershipGold:
		return true
	}
	return false
}

// Customer represents a customer profile linked 1:1 to a base User.
type Customer struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID      `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	User       *User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Phone      string         `json:"phone" gorm:"type:text"`
	BirthDate  *time.Time     `json:"birth_date,omitempty" gorm:"type:date"`
	Membership Membership     `json:"membership" gorm:"type:text;not null;default:'B'"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Membership == "" {
		c.Membership = MembershipBronze
	}
	return nil
}
