package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/saber-be/nextiwant/internal/middleware"
	"github.com/saber-be/nextiwant/internal/services"
)

// WishlistHandler handles HTTP requests for wishlists and their items.
// All routes require an authenticated owner; anonymous access goes
// through the public share routes instead.
type WishlistHandler struct {
	service  *services.WishlistService
	validate *validator.Validate
}

// NewWishlistHandler creates a new WishlistHandler.
func NewWishlistHandler(service *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the wishlist routes with the Fiber app.
// Every route runs behind the auth middleware.
func (h *WishlistHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	wishlistRoutes := router.Group("/wishlists", auth)
	wishlistRoutes.Get("/", h.HandleListMyWishlists)
	wishlistRoutes.Post("/", h.HandleCreateWishlist)
	wishlistRoutes.Put("/items/:itemId", h.HandleUpdateItem)
	wishlistRoutes.Delete("/items/:itemId", h.HandleDeleteItem)
	wishlistRoutes.Get("/:id", h.HandleGetWishlist)
	wishlistRoutes.Put("/:id", h.HandleUpdateWishlist)
	wishlistRoutes.Delete("/:id", h.HandleDeleteWishlist)
	wishlistRoutes.Post("/:id/items", h.HandleAddItem)
}

// WishlistCreateRequest represents the request body for creating a wishlist.
type WishlistCreateRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=255"`
	Description *string `json:"description"`
	Visibility  string  `json:"visibility" validate:"omitempty,oneof=private public"`
}

// WishlistUpdateRequest represents the request body for updating a
// wishlist; nil fields stay untouched.
type WishlistUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Visibility  *string `json:"visibility" validate:"omitempty,oneof=private public"`
}

// ItemRequest represents the request body for adding an item.
type ItemRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Description *string `json:"description"`
	Link        *string `json:"link"`
	Priority    *int    `json:"priority" validate:"omitempty,gte=1"`
}

// ItemUpdateRequest is the full replacement record for an item. The
// caller resends every field it wants preserved.
type ItemUpdateRequest struct {
	Title        string  `json:"title" validate:"required,min=1,max=255"`
	Description  *string `json:"description"`
	Link         *string `json:"link"`
	Priority     *int    `json:"priority" validate:"omitempty,gte=1"`
	IsReceived   bool    `json:"is_received"`
	ReceivedNote *string `json:"received_note"`
}

// HandleListMyWishlists retrieves all wishlists of the caller.
func (h *WishlistHandler) HandleListMyWishlists(c *fiber.Ctx) error {
	wishlists, err := h.service.ListMyWishlists(middleware.UserID(c))
	if err != nil {
		log.Printf("Error listing wishlists: %v", err)
		return respondError(c, err, "Could not retrieve wishlists")
	}
	return c.JSON(wishlists)
}

// HandleCreateWishlist creates a new wishlist owned by the caller.
func (h *WishlistHandler) HandleCreateWishlist(c *fiber.Ctx) error {
	var req WishlistCreateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing wishlist request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	wishlist, err := h.service.CreateWishlist(middleware.UserID(c), req.Name, req.Description, req.Visibility)
	if err != nil {
		log.Printf("Error creating wishlist: %v", err)
		return respondError(c, err, "Could not create wishlist")
	}
	return c.Status(fiber.StatusCreated).JSON(wishlist)
}

// HandleGetWishlist retrieves a single wishlist including its items.
func (h *WishlistHandler) HandleGetWishlist(c *fiber.Ctx) error {
	wishlistID := c.Params("id")
	wishlist, err := h.service.GetWishlist(middleware.UserID(c), wishlistID)
	if err != nil {
		log.Printf("Error getting wishlist %s: %v", wishlistID, err)
		return respondError(c, err, "Could not retrieve wishlist")
	}
	return c.JSON(wishlist)
}

// HandleUpdateWishlist updates name, description or visibility.
func (h *WishlistHandler) HandleUpdateWishlist(c *fiber.Ctx) error {
	var req WishlistUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing wishlist update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	wishlistID := c.Params("id")
	wishlist, err := h.service.UpdateWishlist(middleware.UserID(c), wishlistID, req.Name, req.Description, req.Visibility)
	if err != nil {
		log.Printf("Error updating wishlist %s: %v", wishlistID, err)
		return respondError(c, err, "Could not update wishlist")
	}
	return c.JSON(wishlist)
}

// HandleDeleteWishlist removes a wishlist and its items.
func (h *WishlistHandler) HandleDeleteWishlist(c *fiber.Ctx) error {
	wishlistID := c.Params("id")
	if err := h.service.DeleteWishlist(middleware.UserID(c), wishlistID); err != nil {
		log.Printf("Error deleting wishlist %s: %v", wishlistID, err)
		return respondError(c, err, "Could not delete wishlist")
	}
	return c.SendStatus(fiber.StatusOK)
}

// HandleAddItem appends a new item to a wishlist.
func (h *WishlistHandler) HandleAddItem(c *fiber.Ctx) error {
	var req ItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing item request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	wishlistID := c.Params("id")
	item, err := h.service.AddItem(middleware.UserID(c), wishlistID, req.Title, req.Description, req.Link, req.Priority)
	if err != nil {
		log.Printf("Error adding item to wishlist %s: %v", wishlistID, err)
		return respondError(c, err, "Could not add item")
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleUpdateItem replaces an item with the full record from the body.
func (h *WishlistHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var req ItemUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing item update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	itemID := c.Params("itemId")
	item, err := h.service.UpdateItem(middleware.UserID(c), itemID, services.ItemUpdate{
		Title:        req.Title,
		Description:  req.Description,
		Link:         req.Link,
		Priority:     req.Priority,
		IsReceived:   req.IsReceived,
		ReceivedNote: req.ReceivedNote,
	})
	if err != nil {
		log.Printf("Error updating item %s: %v", itemID, err)
		return respondError(c, err, "Could not update item")
	}
	return c.JSON(item)
}

// HandleDeleteItem removes a wishlist item.
func (h *WishlistHandler) HandleDeleteItem(c *fiber.Ctx) error {
	itemID := c.Params("itemId")
	if err := h.service.DeleteItem(middleware.UserID(c), itemID); err != nil {
		log.Printf("Error deleting item %s: %v", itemID, err)
		return respondError(c, err, "Could not delete item")
	}
	return c.SendStatus(fiber.StatusOK)
}
