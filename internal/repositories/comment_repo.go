package repositories

import "github.com/saber-be/nextiwant/internal/models"

// CommentRepository defines the interface for item comment data access.
// Listings are ordered by creation time; readers must preserve that order.
type CommentRepository interface {
	Create(comment *models.ItemComment) error
	GetByID(id string) (*models.ItemComment, error)
	ListByItemIDs(itemIDs []string) ([]models.ItemComment, error)
}
