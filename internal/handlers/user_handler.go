package handlers

import (
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/saber-be/nextiwant/internal/middleware"
	"github.com/saber-be/nextiwant/internal/models"
	"github.com/saber-be/nextiwant/internal/services"
)

// UserHandler handles HTTP requests for profiles and public user pages.
type UserHandler struct {
	profileService *services.ProfileService
	validate       *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(profileService *services.ProfileService) *UserHandler {
	return &UserHandler{
		profileService: profileService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the user routes. Profile read/write is bound
// to the session; the per-user page is open.
func (h *UserHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/me/profile", auth, h.HandleGetMyProfile)
	userRoutes.Put("/me/profile", auth, h.HandleUpsertMyProfile)
	userRoutes.Get("/:id", h.HandlePublicProfile)
}

// ProfileRequest represents the request body for a profile upsert.
// Birthday is a calendar date, "YYYY-MM-DD".
type ProfileRequest struct {
	Username  *string `json:"username"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Birthday  *string `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
	PhotoURL  *string `json:"photo_url" validate:"omitempty,url"`
}

// ProfileResponse is a profile plus its computed display name.
type ProfileResponse struct {
	models.Profile
	Name string `json:"name"`
}

func profileResponse(profile *models.Profile) ProfileResponse {
	return ProfileResponse{
		Profile: *profile,
		Name:    profile.DisplayName(),
	}
}

// HandleGetMyProfile returns the caller's profile, 404 when none saved.
func (h *UserHandler) HandleGetMyProfile(c *fiber.Ctx) error {
	profile, err := h.profileService.GetProfile(middleware.UserID(c))
	if err != nil {
		return respondError(c, err, "Could not retrieve profile")
	}
	return c.JSON(profileResponse(profile))
}

// HandleUpsertMyProfile creates or replaces the caller's profile.
func (h *UserHandler) HandleUpsertMyProfile(c *fiber.Ctx) error {
	var req ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing profile request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	profile := &models.Profile{
		UserID:    middleware.UserID(c),
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		PhotoURL:  req.PhotoURL,
	}
	if req.Birthday != nil {
		birthday, err := time.Parse("2006-01-02", *req.Birthday)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid birthday, expected YYYY-MM-DD",
				"error":   err.Error(),
			})
		}
		profile.Birthday = &birthday
	}

	saved, err := h.profileService.UpsertProfile(profile)
	if err != nil {
		log.Printf("Error upserting profile for user %s: %v", profile.UserID, err)
		return respondError(c, err, "Could not save profile")
	}
	return c.JSON(profileResponse(saved))
}

// HandlePublicProfile returns a user's profile and their public
// wishlists.
func (h *UserHandler) HandlePublicProfile(c *fiber.Ctx) error {
	userID := c.Params("id")
	profile, wishlists, err := h.profileService.PublicProfile(userID)
	if err != nil {
		log.Printf("Error loading public profile %s: %v", userID, err)
		return respondError(c, err, "Could not retrieve user")
	}
	return c.JSON(fiber.Map{
		"profile":   profileResponse(profile),
		"wishlists": wishlists,
	})
}
