package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/saber-be/nextiwant/internal/middleware"
	"github.com/saber-be/nextiwant/internal/services"
)

// PublicHandler handles share links and everything reachable through
// them: resolving a shared wishlist, claiming it, and the comment
// threads on its items. Reads are open; writes require a bearer token.
type PublicHandler struct {
	shareService   *services.ShareService
	commentService *services.CommentService
	validate       *validator.Validate
}

// NewPublicHandler creates a new PublicHandler.
func NewPublicHandler(shareService *services.ShareService, commentService *services.CommentService) *PublicHandler {
	return &PublicHandler{
		shareService:   shareService,
		commentService: commentService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the public routes. The auth middleware is
// applied per route so resolve and comment reads stay anonymous.
func (h *PublicHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	publicRoutes := router.Group("/public")
	publicRoutes.Post("/wishlists/:id/share", auth, h.HandleCreateShare)
	publicRoutes.Post("/items/:itemId/comments", auth, h.HandleAddComment)
	publicRoutes.Post("/comments/:commentId/replies", auth, h.HandleAddReply)
	publicRoutes.Get("/:token", h.HandleResolve)
	publicRoutes.Post("/:token/claim", auth, h.HandleClaim)
	publicRoutes.Get("/:token/comments", h.HandleListComments)
}

// ShareRequest represents the request body for minting a share link.
type ShareRequest struct {
	IsClaimable bool `json:"is_claimable"`
}

// CommentRequest represents the request body for comments and replies.
type CommentRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}

// PublicWishlistResponse is the payload served for a resolved share
// token.
type PublicWishlistResponse struct {
	Wishlist  interface{} `json:"wishlist"`
	Share     interface{} `json:"share"`
	OwnerName string      `json:"owner_name"`
}

// HandleCreateShare mints a fresh share token for a wishlist the
// caller owns.
func (h *PublicHandler) HandleCreateShare(c *fiber.Ctx) error {
	var req ShareRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing share request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	wishlistID := c.Params("id")
	share, err := h.shareService.CreateShare(middleware.UserID(c), wishlistID, req.IsClaimable)
	if err != nil {
		log.Printf("Error creating share for wishlist %s: %v", wishlistID, err)
		return respondError(c, err, "Could not create share")
	}
	return c.Status(fiber.StatusCreated).JSON(share)
}

// HandleResolve serves the shared wishlist for an anonymous viewer.
func (h *PublicHandler) HandleResolve(c *fiber.Ctx) error {
	token := c.Params("token")
	wishlist, share, ownerName, err := h.shareService.ResolvePublicWishlist(token)
	if err != nil {
		log.Printf("Error resolving share token %s: %v", token, err)
		return respondError(c, err, "Could not resolve share link")
	}
	return c.JSON(PublicWishlistResponse{
		Wishlist:  wishlist,
		Share:     share,
		OwnerName: ownerName,
	})
}

// HandleClaim transfers the shared wishlist to the caller. A share can
// be claimed at most once.
func (h *PublicHandler) HandleClaim(c *fiber.Ctx) error {
	token := c.Params("token")
	wishlist, err := h.shareService.Claim(token, middleware.UserID(c))
	if err != nil {
		log.Printf("Error claiming share token %s: %v", token, err)
		return respondError(c, err, "Could not claim wishlist")
	}
	return c.JSON(wishlist)
}

// HandleListComments returns the comment threads for every item of the
// shared wishlist, grouped by item ID.
func (h *PublicHandler) HandleListComments(c *fiber.Ctx) error {
	token := c.Params("token")
	threads, err := h.commentService.ListThreadsByToken(token)
	if err != nil {
		log.Printf("Error listing comments for token %s: %v", token, err)
		return respondError(c, err, "Could not retrieve comments")
	}
	return c.JSON(threads)
}

// HandleAddComment creates a new root comment on an item.
func (h *PublicHandler) HandleAddComment(c *fiber.Ctx) error {
	var req CommentRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing comment request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	itemID := c.Params("itemId")
	comment, err := h.commentService.AddComment(middleware.UserID(c), itemID, req.Content)
	if err != nil {
		log.Printf("Error adding comment to item %s: %v", itemID, err)
		return respondError(c, err, "Could not add comment")
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// HandleAddReply creates a reply under a root comment. Replying to a
// reply is rejected, threads stay two levels deep.
func (h *PublicHandler) HandleAddReply(c *fiber.Ctx) error {
	var req CommentRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing reply request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	parentID := c.Params("commentId")
	reply, err := h.commentService.AddReply(middleware.UserID(c), parentID, req.Content)
	if err != nil {
		log.Printf("Error adding reply to comment %s: %v", parentID, err)
		return respondError(c, err, "Could not add reply")
	}
	return c.Status(fiber.StatusCreated).JSON(reply)
}
