package repositories

import "github.com/saber-be/nextiwant/internal/models"

// UserRepository defines the interface for user and profile data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	GetProfile(userID string) (*models.Profile, error)
	UpsertProfile(profile *models.Profile) error
}
