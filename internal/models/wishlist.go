package models

import "gorm.io/gorm"

// Wishlist visibility values.
const (
	VisibilityPrivate = "private"
	VisibilityPublic  = "public"
)

// Wishlist is a named list of items owned by exactly one user.
type Wishlist struct {
	ID          string         `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	OwnerID     string         `json:"owner_id" gorm:"type:varchar(36);index;not null"`
	Name        string         `json:"name" gorm:"type:varchar(255);not null" validate:"required,min=1,max=255"`
	Description *string        `json:"description,omitempty"`
	Visibility  string         `json:"visibility" gorm:"type:varchar(16);default:private" validate:"omitempty,oneof=private public"`
	Items       []WishlistItem `json:"items" gorm:"foreignKey:WishlistID"`
	gorm.Model                 // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// WishlistItem is a single wish inside a wishlist. ReceivedNote is only
// meaningful while IsReceived is true; clearing receipt clears the note.
type WishlistItem struct {
	ID           string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	WishlistID   string  `json:"wishlist_id" gorm:"type:varchar(36);index;not null"`
	Title        string  `json:"title" gorm:"type:varchar(255);not null" validate:"required,min=1,max=255"`
	Description  *string `json:"description,omitempty"`
	Link         *string `json:"link,omitempty" gorm:"type:varchar(1024)"`
	Priority     *int    `json:"priority,omitempty" validate:"omitempty,gte=1"`
	IsReceived   bool    `json:"is_received"`
	ReceivedNote *string `json:"received_note,omitempty"`
	gorm.Model           // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
