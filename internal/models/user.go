package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User represents a registered account.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"` // bcrypt hash after registration
	IsActive   bool   `json:"is_active" gorm:"default:true"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// Profile holds the optional display fields a user may fill in.
// It is keyed 1:1 by the owning user's ID.
type Profile struct {
	UserID    string     `json:"user_id" gorm:"primaryKey;type:varchar(36)"`
	Username  *string    `json:"username,omitempty" gorm:"type:varchar(255);index"`
	FirstName *string    `json:"first_name,omitempty" gorm:"type:varchar(255)"`
	LastName  *string    `json:"last_name,omitempty" gorm:"type:varchar(255)"`
	Birthday  *time.Time `json:"birthday,omitempty"`
	PhotoURL  *string    `json:"photo_url,omitempty" gorm:"type:varchar(1024)"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// DisplayName returns the public-facing name for the profile owner:
// "First Last" when either name part is set, otherwise the username,
// otherwise an empty string.
func (p *Profile) DisplayName() string {
	if p == nil {
		return ""
	}
	parts := make([]string, 0, 2)
	if p.FirstName != nil && *p.FirstName != "" {
		parts = append(parts, *p.FirstName)
	}
	if p.LastName != nil && *p.LastName != "" {
		parts = append(parts, *p.LastName)
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	if p.Username != nil {
		return *p.Username
	}
	return ""
}
