package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role determines which side of the handoff a user acts for and which
// workflow operations they may perform.
type Role string

const (
	RoleManufacturer Role = "MANUFACTURER"
	RoleDealer       Role = "DEALER"
	RoleAdmin        Role = "ADMIN"
)

// User is an account on either the factory or the dealership side. Dealer
// users carry the dealership they belong to; manufacturer and admin users
// have no dealer.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	Email        string     `gorm:"type:varchar(255);column:email;not null;uniqueIndex" json:"email"`
	Name         string     `gorm:"type:varchar(255);column:name;not null" json:"name"`
	PasswordHash string     `gorm:"type:varchar(255);column:password_hash;not null" json:"-"`
	Role         Role       `gorm:"type:varchar(20);column:role;not null" json:"role"`
	DealerID     *uuid.UUID `gorm:"type:uuid;column:dealer_id" json:"dealerId,omitempty"`
	Active       bool       `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt    time.Time  `gorm:"type:timestamptz;column:created_at" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"type:timestamptz;column:updated_at" json:"updatedAt"`
}

func (u *User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
