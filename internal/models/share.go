package models

import (
	"time"

	"gorm.io/gorm"
)

// PublicShare grants anonymous read access to one wishlist through an
// opaque token. A wishlist may have several outstanding shares; each
// share can be claimed at most once.
type PublicShare struct {
	ID          string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	WishlistID  string     `json:"wishlist_id" gorm:"type:varchar(36);index;not null"`
	Token       string     `json:"token" gorm:"uniqueIndex;type:varchar(64);not null"`
	IsClaimable bool       `json:"is_claimable"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	ClaimedAt   *time.Time `json:"claimed_at,omitempty"`
	ClaimedByID *string    `json:"claimed_by_id,omitempty" gorm:"type:varchar(36)"`
	gorm.Model             // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// IsActive reports whether the share can still be resolved at the given
// time. An unset expiry never expires.
func (s *PublicShare) IsActive(now time.Time) bool {
	return s.ExpiresAt == nil || now.Before(*s.ExpiresAt)
}

// IsClaimed reports whether the share has already been consumed by a claim.
func (s *PublicShare) IsClaimed() bool {
	return s.ClaimedAt != nil
}
