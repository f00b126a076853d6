package services

import (
	"errors"
	"fmt"

	"github.com/saber-be/nextiwant/internal/models"
	"github.com/saber-be/nextiwant/internal/repositories"
)

// ProfileService handles business logic for user profiles.
type ProfileService struct {
	userRepo     repositories.UserRepository
	wishlistRepo repositories.WishlistRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(userRepo repositories.UserRepository, wishlistRepo repositories.WishlistRepository) *ProfileService {
	return &ProfileService{
		userRepo:     userRepo,
		wishlistRepo: wishlistRepo,
	}
}

// GetProfile retrieves the caller's own profile.
func (s *ProfileService) GetProfile(userID string) (*models.Profile, error) {
	return s.userRepo.GetProfile(userID)
}

// UpsertProfile creates or replaces the caller's profile. Only the owner
// can write it; the identity comes from the session, never the payload.
func (s *ProfileService) UpsertProfile(profile *models.Profile) (*models.Profile, error) {
	if profile.UserID == "" {
		return nil, fmt.Errorf("%w: profile owner is required", ErrValidation)
	}
	if err := s.userRepo.UpsertProfile(profile); err != nil {
		return nil, err
	}
	return s.userRepo.GetProfile(profile.UserID)
}

// PublicProfile retrieves another user's profile together with their
// public wishlists. Unknown users are a not-found condition; a user
// without a saved profile still resolves, with empty display fields.
func (s *ProfileService) PublicProfile(userID string) (*models.Profile, []models.Wishlist, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, nil, err
	}

	profile, err := s.userRepo.GetProfile(userID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, err
		}
		profile = &models.Profile{UserID: userID}
	}

	wishlists, err := s.wishlistRepo.ListPublicByOwner(userID)
	if err != nil {
		return nil, nil, err
	}
	return profile, wishlists, nil
}
