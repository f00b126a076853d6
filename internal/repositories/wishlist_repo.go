package repositories

import "github.com/saber-be/nextiwant/internal/models"

// WishlistRepository defines the interface for wishlist and item data access.
// Wishlists are always loaded with their items in creation order.
type WishlistRepository interface {
	Create(wishlist *models.Wishlist) error
	GetByID(id string) (*models.Wishlist, error)
	ListByOwner(ownerID string) ([]models.Wishlist, error)
	ListPublicByOwner(ownerID string) ([]models.Wishlist, error)
	Update(wishlist *models.Wishlist) error
	Delete(id string) error

	CreateItem(item *models.WishlistItem) error
	GetItemByID(id string) (*models.WishlistItem, error)
	UpdateItem(item *models.WishlistItem) error
	DeleteItem(id string) error
}
