package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/saber-be/nextiwant/internal/models"
	"github.com/saber-be/nextiwant/internal/repositories"
	"github.com/saber-be/nextiwant/pkg/rabbitmq"
)

// ShareService handles public share tokens: minting, resolution and the
// one-time claim that moves a wishlist to the claiming account.
type ShareService struct {
	shareRepo    repositories.ShareRepository
	wishlistRepo repositories.WishlistRepository
	userRepo     repositories.UserRepository
	mqClient     *rabbitmq.Client
}

// NewShareService creates a new ShareService.
func NewShareService(
	shareRepo repositories.ShareRepository,
	wishlistRepo repositories.WishlistRepository,
	userRepo repositories.UserRepository,
	mqClient *rabbitmq.Client,
) *ShareService {
	return &ShareService{
		shareRepo:    shareRepo,
		wishlistRepo: wishlistRepo,
		userRepo:     userRepo,
		mqClient:     mqClient,
	}
}

// CreateShare mints a fresh share for the caller's wishlist. The token is
// an opaque URL-safe NanoID; readers must not assume any structure.
func (s *ShareService) CreateShare(callerID, wishlistID string, isClaimable bool) (*models.PublicShare, error) {
	wishlist, err := s.wishlistRepo.GetByID(wishlistID)
	if err != nil {
		return nil, err
	}
	if wishlist.OwnerID != callerID {
		return nil, fmt.Errorf("%w: wishlist %s", ErrForbidden, wishlistID)
	}

	token, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate share token: %w", err)
	}

	share := &models.PublicShare{
		WishlistID:  wishlistID,
		Token:       token,
		IsClaimable: isClaimable,
	}
	if err := s.shareRepo.Create(share); err != nil {
		return nil, fmt.Errorf("failed to create share for wishlist %s: %w", wishlistID, err)
	}
	return share, nil
}

// ResolvePublicWishlist resolves a share token to the shared wishlist,
// the share record and the owner's display name. Unknown and expired
// tokens are both a not-found condition; the result is never partial.
// Beyond the display name no owner identity is exposed.
func (s *ShareService) ResolvePublicWishlist(token string) (*models.Wishlist, *models.PublicShare, string, error) {
	share, err := s.shareRepo.GetByToken(token)
	if err != nil {
		return nil, nil, "", err
	}
	if !share.IsActive(time.Now()) {
		return nil, nil, "", fmt.Errorf("share expired: %w", repositories.ErrNotFound)
	}

	wishlist, err := s.wishlistRepo.GetByID(share.WishlistID)
	if err != nil {
		return nil, nil, "", err
	}

	return wishlist, share, s.ownerName(wishlist.OwnerID), nil
}

// Claim transfers ownership of a shared wishlist to the claiming user.
// A share can be claimed at most once: the first successful claim flips
// IsClaimable off and records who claimed it; later attempts fail with
// ErrAlreadyClaimed.
func (s *ShareService) Claim(token, newOwnerID string) (*models.Wishlist, error) {
	share, err := s.shareRepo.GetByToken(token)
	if err != nil {
		return nil, err
	}
	if !share.IsActive(time.Now()) {
		return nil, fmt.Errorf("share expired: %w", repositories.ErrNotFound)
	}
	if share.IsClaimed() {
		return nil, ErrAlreadyClaimed
	}
	if !share.IsClaimable {
		return nil, ErrNotClaimable
	}

	wishlist, err := s.wishlistRepo.GetByID(share.WishlistID)
	if err != nil {
		return nil, err
	}

	wishlist.OwnerID = newOwnerID
	if err := s.wishlistRepo.Update(wishlist); err != nil {
		return nil, fmt.Errorf("failed to transfer wishlist %s: %w", wishlist.ID, err)
	}

	now := time.Now()
	share.IsClaimable = false
	share.ClaimedAt = &now
	share.ClaimedByID = &newOwnerID
	if err := s.shareRepo.Update(share); err != nil {
		return nil, fmt.Errorf("failed to mark share %s claimed: %w", share.ID, err)
	}

	if s.mqClient != nil {
		err := s.mqClient.PublishEvent(rabbitmq.EventWishlistClaimed, map[string]interface{}{
			"token":        share.Token,
			"wishlist_id":  wishlist.ID,
			"new_owner_id": newOwnerID,
		})
		if err != nil {
			log.Printf("Warning: failed to publish claim event for wishlist %s: %v", wishlist.ID, err)
		}
	}

	return s.wishlistRepo.GetByID(wishlist.ID)
}

// ownerName looks up the owner's public display name; a missing profile
// just yields an empty name.
func (s *ShareService) ownerName(ownerID string) string {
	profile, err := s.userRepo.GetProfile(ownerID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			log.Printf("Failed to load profile for owner %s: %v", ownerID, err)
		}
		return ""
	}
	return profile.DisplayName()
}
