package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/saber-be/nextiwant/internal/models"
)

// MockShareRepository is an in-memory implementation of ShareRepository.
type MockShareRepository struct {
	shares []models.PublicShare
	mu     sync.RWMutex
}

// NewMockShareRepository creates a new instance of MockShareRepository.
func NewMockShareRepository() *MockShareRepository {
	return &MockShareRepository{}
}

// Create adds a new share.
func (r *MockShareRepository) Create(share *models.PublicShare) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if share.ID == "" {
		share.ID = uuid.New().String()
	}
	r.shares = append(r.shares, *share)
	return nil
}

// GetByToken returns the share with the given token.
func (r *MockShareRepository) GetByToken(token string) (*models.PublicShare, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, share := range r.shares {
		if share.Token == token {
			found := share
			return &found, nil
		}
	}
	return nil, fmt.Errorf("share for token: %w", ErrNotFound)
}

// ListByWishlist returns all shares minted for the given wishlist.
func (r *MockShareRepository) ListByWishlist(wishlistID string) ([]models.PublicShare, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.PublicShare, 0)
	for _, share := range r.shares {
		if share.WishlistID == wishlistID {
			out = append(out, share)
		}
	}
	return out, nil
}

// Update replaces an existing share.
func (r *MockShareRepository) Update(share *models.PublicShare) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.shares {
		if r.shares[i].ID == share.ID {
			r.shares[i] = *share
			return nil
		}
	}
	return fmt.Errorf("share with ID %s for update: %w", share.ID, ErrNotFound)
}
