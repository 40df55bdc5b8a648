package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles recognised by the auth middleware.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User is the base auth profile. Every user gets a Customer profile; admins also get an Admin profile.
type User struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Username    string         `json:"username" gorm:"type:text;uniqueIndex;not null"`
	Email       string         `json:"email" gorm:"type:text;uniqueIndex;not null"`
	FirstName   string         `json:"first_name" gorm:"type:text"`
	LastName    string         `json:"last_name" gorm:"type:text"`
	Password    string         `json:"-" gorm:"type:text;not null"`
	Role        string         `json:"role" gorm:"type:text;index;not null;default:'customer'"`
	FirebaseUID *string        `json:"firebase_uid,omitempty" gorm:"type:text;uniqueIndex;default:null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
