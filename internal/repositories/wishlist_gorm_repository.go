package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saber-be/nextiwant/internal/models"
)

// GORMWishlistRepository is a GORM implementation of WishlistRepository.
type GORMWishlistRepository struct {
	db *gorm.DB
}

// NewGORMWishlistRepository creates a new instance of GORMWishlistRepository.
func NewGORMWishlistRepository(db *gorm.DB) *GORMWishlistRepository {
	return &GORMWishlistRepository{
		db: db,
	}
}

// preloadItems loads a wishlist's items in creation order.
func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("created_at ASC, id ASC")
	})
}

// Create creates a new wishlist in the database.
func (r *GORMWishlistRepository) Create(wishlist *models.Wishlist) error {
	if wishlist.ID == "" {
		wishlist.ID = uuid.New().String()
	}
	if wishlist.Visibility == "" {
		wishlist.Visibility = models.VisibilityPrivate
	}
	if err := r.db.Create(wishlist).Error; err != nil {
		return fmt.Errorf("failed to create wishlist: %w", err)
	}
	return nil
}

// GetByID retrieves a wishlist including its items.
func (r *GORMWishlistRepository) GetByID(id string) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	if err := preloadItems(r.db).First(&wishlist, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("wishlist with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get wishlist by ID %s: %w", id, err)
	}
	return &wishlist, nil
}

// ListByOwner retrieves all wishlists owned by the given user.
func (r *GORMWishlistRepository) ListByOwner(ownerID string) ([]models.Wishlist, error) {
	wishlists := make([]models.Wishlist, 0)
	err := preloadItems(r.db).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&wishlists).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlists for owner %s: %w", ownerID, err)
	}
	return wishlists, nil
}

// ListPublicByOwner retrieves the given user's wishlists with public visibility.
func (r *GORMWishlistRepository) ListPublicByOwner(ownerID string) ([]models.Wishlist, error) {
	wishlists := make([]models.Wishlist, 0)
	err := preloadItems(r.db).
		Where("owner_id = ? AND visibility = ?", ownerID, models.VisibilityPublic).
		Order("created_at ASC").
		Find(&wishlists).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list public wishlists for owner %s: %w", ownerID, err)
	}
	return wishlists, nil
}

// Update updates an existing wishlist in the database.
func (r *GORMWishlistRepository) Update(wishlist *models.Wishlist) error {
	res := r.db.Omit("Items").Save(wishlist) // Save will update all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update wishlist: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("wishlist with ID %s for update: %w", wishlist.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a wishlist and all of its items.
func (r *GORMWishlistRepository) Delete(id string) error {
	if err := r.db.Where("wishlist_id = ?", id).Delete(&models.WishlistItem{}).Error; err != nil {
		return fmt.Errorf("failed to delete items of wishlist %s: %w", id, err)
	}
	res := r.db.Delete(&models.Wishlist{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete wishlist %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("wishlist with ID %s for deletion: %w", id, ErrNotFound)
	}
	return nil
}

// CreateItem creates a new wishlist item in the database.
func (r *GORMWishlistRepository) CreateItem(item *models.WishlistItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create wishlist item: %w", err)
	}
	return nil
}

// GetItemByID retrieves a single wishlist item by its ID.
func (r *GORMWishlistRepository) GetItemByID(id string) (*models.WishlistItem, error) {
	var item models.WishlistItem
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("item with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get item by ID %s: %w", id, err)
	}
	return &item, nil
}

// UpdateItem replaces all fields of an existing item, including cleared
// optional fields.
func (r *GORMWishlistRepository) UpdateItem(item *models.WishlistItem) error {
	res := r.db.Save(item) // Save will update all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("item with ID %s for update: %w", item.ID, ErrNotFound)
	}
	return nil
}

// DeleteItem removes a wishlist item by its ID.
func (r *GORMWishlistRepository) DeleteItem(id string) error {
	res := r.db.Delete(&models.WishlistItem{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete item %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("item with ID %s for deletion: %w", id, ErrNotFound)
	}
	return nil
}
