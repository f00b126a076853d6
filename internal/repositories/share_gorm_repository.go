package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saber-be/nextiwant/internal/models"
)

// GORMShareRepository is a GORM implementation of ShareRepository.
type GORMShareRepository struct {
	db *gorm.DB
}

// NewGORMShareRepository creates a new instance of GORMShareRepository.
func NewGORMShareRepository(db *gorm.DB) *GORMShareRepository {
	return &GORMShareRepository{
		db: db,
	}
}

// Create creates a new public share in the database.
func (r *GORMShareRepository) Create(share *models.PublicShare) error {
	if share.ID == "" {
		share.ID = uuid.New().String()
	}
	if err := r.db.Create(share).Error; err != nil {
		return fmt.Errorf("failed to create share: %w", err)
	}
	return nil
}

// GetByToken retrieves a share by its opaque token.
func (r *GORMShareRepository) GetByToken(token string) (*models.PublicShare, error) {
	var share models.PublicShare
	if err := r.db.First(&share, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("share for token: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get share by token: %w", err)
	}
	return &share, nil
}

// ListByWishlist retrieves all shares minted for the given wishlist.
func (r *GORMShareRepository) ListByWishlist(wishlistID string) ([]models.PublicShare, error) {
	shares := make([]models.PublicShare, 0)
	err := r.db.Where("wishlist_id = ?", wishlistID).Order("created_at ASC").Find(&shares).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list shares for wishlist %s: %w", wishlistID, err)
	}
	return shares, nil
}

// Update updates an existing share in the database.
func (r *GORMShareRepository) Update(share *models.PublicShare) error {
	res := r.db.Save(share) // Save will update all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update share: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("share with ID %s for update: %w", share.ID, ErrNotFound)
	}
	return nil
}
