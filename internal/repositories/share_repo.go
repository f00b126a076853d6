package repositories

import "github.com/saber-be/nextiwant/internal/models"

// ShareRepository defines the interface for public share data access.
type ShareRepository interface {
	Create(share *models.PublicShare) error
	GetByToken(token string) (*models.PublicShare, error)
	ListByWishlist(wishlistID string) ([]models.PublicShare, error)
	Update(share *models.PublicShare) error
}
