package models

import "gorm.io/gorm"

// ItemComment is a comment on a shared wishlist item. A comment with a
// nil ParentID is a root comment; a comment with a ParentID is a reply to
// a root comment on the same item. Replies cannot be replied to, so the
// thread depth is exactly two levels.
type ItemComment struct {
	ID         string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ItemID     string  `json:"item_id" gorm:"type:varchar(36);index;not null"`
	UserID     string  `json:"user_id" gorm:"type:varchar(36);index;not null"`
	ParentID   *string `json:"parent_id,omitempty" gorm:"type:varchar(36);index"`
	Content    string  `json:"content" gorm:"not null" validate:"required,min=1"`
	UserName   string  `json:"user_name,omitempty" gorm:"-"` // filled in from the author's profile when listing
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// IsRoot reports whether the comment starts a thread on its item.
func (c *ItemComment) IsRoot() bool {
	return c.ParentID == nil
}

// CommentThread groups one item's comments into root comments and their
// direct replies, both in the order the store returned them.
type CommentThread struct {
	Roots           []ItemComment            `json:"roots"`
	RepliesByParent map[string][]ItemComment `json:"replies_by_parent"`
}
