package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/saber-be/nextiwant/internal/models"
)

// MockWishlistRepository is an in-memory implementation of WishlistRepository.
type MockWishlistRepository struct {
	wishlists map[string]models.Wishlist
	order     []string
	items     []models.WishlistItem
	mu        sync.RWMutex
}

// NewMockWishlistRepository creates a new instance of MockWishlistRepository.
func NewMockWishlistRepository() *MockWishlistRepository {
	return &MockWishlistRepository{
		wishlists: make(map[string]models.Wishlist),
	}
}

// Create adds a new wishlist.
func (r *MockWishlistRepository) Create(wishlist *models.Wishlist) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if wishlist.ID == "" {
		wishlist.ID = uuid.New().String()
	}
	if wishlist.Visibility == "" {
		wishlist.Visibility = models.VisibilityPrivate
	}
	r.wishlists[wishlist.ID] = *wishlist
	r.order = append(r.order, wishlist.ID)
	return nil
}

// itemsOf collects the items of one wishlist in insertion order.
// Caller must hold the lock.
func (r *MockWishlistRepository) itemsOf(wishlistID string) []models.WishlistItem {
	out := make([]models.WishlistItem, 0)
	for _, item := range r.items {
		if item.WishlistID == wishlistID {
			out = append(out, item)
		}
	}
	return out
}

// GetByID returns a wishlist including its items.
func (r *MockWishlistRepository) GetByID(id string) (*models.Wishlist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wishlist, ok := r.wishlists[id]
	if !ok {
		return nil, fmt.Errorf("wishlist with ID %s: %w", id, ErrNotFound)
	}
	wishlist.Items = r.itemsOf(id)
	return &wishlist, nil
}

// ListByOwner returns all wishlists owned by the given user.
func (r *MockWishlistRepository) ListByOwner(ownerID string) ([]models.Wishlist, error) {
	return r.list(ownerID, false)
}

// ListPublicByOwner returns the given user's public wishlists.
func (r *MockWishlistRepository) ListPublicByOwner(ownerID string) ([]models.Wishlist, error) {
	return r.list(ownerID, true)
}

func (r *MockWishlistRepository) list(ownerID string, publicOnly bool) ([]models.Wishlist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Wishlist, 0)
	for _, id := range r.order {
		wishlist, ok := r.wishlists[id]
		if !ok || wishlist.OwnerID != ownerID {
			continue
		}
		if publicOnly && wishlist.Visibility != models.VisibilityPublic {
			continue
		}
		wishlist.Items = r.itemsOf(id)
		out = append(out, wishlist)
	}
	return out, nil
}

// Update modifies an existing wishlist.
func (r *MockWishlistRepository) Update(wishlist *models.Wishlist) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.wishlists[wishlist.ID]; !ok {
		return fmt.Errorf("wishlist with ID %s for update: %w", wishlist.ID, ErrNotFound)
	}
	stored := *wishlist
	stored.Items = nil
	r.wishlists[wishlist.ID] = stored
	return nil
}

// Delete removes a wishlist and its items.
func (r *MockWishlistRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.wishlists[id]; !ok {
		return fmt.Errorf("wishlist with ID %s for deletion: %w", id, ErrNotFound)
	}
	delete(r.wishlists, id)
	kept := r.items[:0]
	for _, item := range r.items {
		if item.WishlistID != id {
			kept = append(kept, item)
		}
	}
	r.items = kept
	return nil
}

// CreateItem adds a new item.
func (r *MockWishlistRepository) CreateItem(item *models.WishlistItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.wishlists[item.WishlistID]; !ok {
		return fmt.Errorf("wishlist with ID %s: %w", item.WishlistID, ErrNotFound)
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.items = append(r.items, *item)
	return nil
}

// GetItemByID returns an item by its ID.
func (r *MockWishlistRepository) GetItemByID(id string) (*models.WishlistItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, fmt.Errorf("item with ID %s: %w", id, ErrNotFound)
}

// UpdateItem replaces an existing item.
func (r *MockWishlistRepository) UpdateItem(item *models.WishlistItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == item.ID {
			r.items[i] = *item
			return nil
		}
	}
	return fmt.Errorf("item with ID %s for update: %w", item.ID, ErrNotFound)
}

// DeleteItem removes an item by its ID.
func (r *MockWishlistRepository) DeleteItem(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("item with ID %s for deletion: %w", id, ErrNotFound)
}
