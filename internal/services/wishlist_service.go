package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/saber-be/nextiwant/internal/models"
	"github.com/saber-be/nextiwant/internal/repositories"
	"github.com/saber-be/nextiwant/pkg/rabbitmq"
)

// WishlistService handles business logic for wishlists and their items.
type WishlistService struct {
	wishlistRepo repositories.WishlistRepository
	mqClient     *rabbitmq.Client
}

// NewWishlistService creates a new WishlistService.
func NewWishlistService(wishlistRepo repositories.WishlistRepository, mqClient *rabbitmq.Client) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		mqClient:     mqClient,
	}
}

// CreateWishlist creates a wishlist owned by the given user. Visibility
// defaults to private.
func (s *WishlistService) CreateWishlist(ownerID, name string, description *string, visibility string) (*models.Wishlist, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if visibility == "" {
		visibility = models.VisibilityPrivate
	}
	if visibility != models.VisibilityPrivate && visibility != models.VisibilityPublic {
		return nil, fmt.Errorf("%w: invalid visibility %q", ErrValidation, visibility)
	}

	wishlist := &models.Wishlist{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		Visibility:  visibility,
	}
	if err := s.wishlistRepo.Create(wishlist); err != nil {
		return nil, fmt.Errorf("failed to create wishlist: %w", err)
	}
	wishlist.Items = make([]models.WishlistItem, 0)
	return wishlist, nil
}

// ListMyWishlists retrieves every wishlist owned by the caller.
func (s *WishlistService) ListMyWishlists(ownerID string) ([]models.Wishlist, error) {
	return s.wishlistRepo.ListByOwner(ownerID)
}

// GetWishlist retrieves one wishlist with its items; only the owner may
// read it through this path (public access goes through shares).
func (s *WishlistService) GetWishlist(callerID, wishlistID string) (*models.Wishlist, error) {
	wishlist, err := s.wishlistRepo.GetByID(wishlistID)
	if err != nil {
		return nil, err
	}
	if wishlist.OwnerID != callerID {
		return nil, fmt.Errorf("%w: wishlist %s", ErrForbidden, wishlistID)
	}
	return wishlist, nil
}

// UpdateWishlist changes name, description or visibility of a wishlist.
// Nil fields are left untouched.
func (s *WishlistService) UpdateWishlist(callerID, wishlistID string, name, description, visibility *string) (*models.Wishlist, error) {
	wishlist, err := s.GetWishlist(callerID, wishlistID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return nil, fmt.Errorf("%w: name is required", ErrValidation)
		}
		wishlist.Name = *name
	}
	if description != nil {
		wishlist.Description = description
	}
	if visibility != nil {
		if *visibility != models.VisibilityPrivate && *visibility != models.VisibilityPublic {
			return nil, fmt.Errorf("%w: invalid visibility %q", ErrValidation, *visibility)
		}
		wishlist.Visibility = *visibility
	}

	if err := s.wishlistRepo.Update(wishlist); err != nil {
		return nil, fmt.Errorf("failed to update wishlist %s: %w", wishlistID, err)
	}
	return s.wishlistRepo.GetByID(wishlistID)
}

// DeleteWishlist removes a wishlist and all of its items.
func (s *WishlistService) DeleteWishlist(callerID, wishlistID string) error {
	if _, err := s.GetWishlist(callerID, wishlistID); err != nil {
		return err
	}
	return s.wishlistRepo.Delete(wishlistID)
}

// AddItem appends a new item to the caller's wishlist.
func (s *WishlistService) AddItem(callerID, wishlistID, title string, description, link *string, priority *int) (*models.WishlistItem, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if priority != nil && *priority < 1 {
		return nil, fmt.Errorf("%w: priority must be positive", ErrValidation)
	}
	if _, err := s.GetWishlist(callerID, wishlistID); err != nil {
		return nil, err
	}

	item := &models.WishlistItem{
		WishlistID:  wishlistID,
		Title:       title,
		Description: description,
		Link:        link,
		Priority:    priority,
	}
	if err := s.wishlistRepo.CreateItem(item); err != nil {
		return nil, fmt.Errorf("failed to add item to wishlist %s: %w", wishlistID, err)
	}
	return item, nil
}

// ItemUpdate carries the full replacement record for an item. The caller
// must resend every field it wants preserved; omitted optional fields are
// cleared.
type ItemUpdate struct {
	Title        string
	Description  *string
	Link         *string
	Priority     *int
	IsReceived   bool
	ReceivedNote *string
}

// UpdateItem replaces an item with the given record. When the item is
// marked not received the note is cleared regardless of what was passed.
func (s *WishlistService) UpdateItem(callerID, itemID string, update ItemUpdate) (*models.WishlistItem, error) {
	if strings.TrimSpace(update.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if update.Priority != nil && *update.Priority < 1 {
		return nil, fmt.Errorf("%w: priority must be positive", ErrValidation)
	}

	item, err := s.wishlistRepo.GetItemByID(itemID)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetWishlist(callerID, item.WishlistID); err != nil {
		return nil, err
	}

	receiptChanged := item.IsReceived != update.IsReceived

	item.Title = update.Title
	item.Description = update.Description
	item.Link = update.Link
	item.Priority = update.Priority
	item.IsReceived = update.IsReceived
	item.ReceivedNote = update.ReceivedNote
	if !item.IsReceived {
		item.ReceivedNote = nil
	}

	if err := s.wishlistRepo.UpdateItem(item); err != nil {
		return nil, fmt.Errorf("failed to update item %s: %w", itemID, err)
	}

	if receiptChanged {
		s.publishEvent(rabbitmq.EventItemReceived, map[string]interface{}{
			"item_id":     item.ID,
			"wishlist_id": item.WishlistID,
			"received":    item.IsReceived,
		})
	}

	return item, nil
}

// DeleteItem removes an item from the caller's wishlist.
func (s *WishlistService) DeleteItem(callerID, itemID string) error {
	item, err := s.wishlistRepo.GetItemByID(itemID)
	if err != nil {
		return err
	}
	if _, err := s.GetWishlist(callerID, item.WishlistID); err != nil {
		return err
	}
	return s.wishlistRepo.DeleteItem(itemID)
}

// publishEvent emits a domain event best-effort; failures are logged and
// never fail the request.
func (s *WishlistService) publishEvent(eventType string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	if err := s.mqClient.PublishEvent(eventType, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
	}
}
