package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/saber-be/nextiwant/internal/handlers"
	"github.com/saber-be/nextiwant/internal/middleware"
	"github.com/saber-be/nextiwant/internal/models"
	"github.com/saber-be/nextiwant/internal/repositories"
	"github.com/saber-be/nextiwant/internal/services"
)

// setupApp wires the full API against an in-memory SQLite database.
func setupApp() (*fiber.App, error) {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to in-memory database: %w", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Wishlist{},
		&models.WishlistItem{},
		&models.PublicShare{},
		&models.ItemComment{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	userRepo := repositories.NewGORMUserRepository(db)
	wishlistRepo := repositories.NewGORMWishlistRepository(db)
	shareRepo := repositories.NewGORMShareRepository(db)
	commentRepo := repositories.NewGORMCommentRepository(db)

	authService := services.NewAuthService(userRepo, "test_jwt_secret")
	profileService := services.NewProfileService(userRepo, wishlistRepo)
	wishlistService := services.NewWishlistService(wishlistRepo, nil)
	shareService := services.NewShareService(shareRepo, wishlistRepo, userRepo, nil)
	commentService := services.NewCommentService(commentRepo, shareRepo, wishlistRepo, userRepo, nil)

	app := fiber.New()
	api := app.Group("/api")
	auth := middleware.AuthRequired(authService)

	handlers.NewAuthHandler(authService).RegisterRoutes(api)
	handlers.NewUserHandler(profileService).RegisterRoutes(api, auth)
	handlers.NewWishlistHandler(wishlistService).RegisterRoutes(api, auth)
	handlers.NewPublicHandler(shareService, commentService).RegisterRoutes(api, auth)

	return app, nil
}

// doJSON issues a JSON request with an optional bearer token and decodes
// the response body into out when it is non-nil.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}, out interface{}) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// signupAndLogin registers a fresh user and returns their ID and token.
func signupAndLogin(t *testing.T, app *fiber.App, email string) (string, string) {
	t.Helper()

	credentials := map[string]string{"email": email, "password": "password123"}

	var user models.User
	status := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", credentials, &user)
	assert.Equal(t, http.StatusCreated, status)
	assert.NotEmpty(t, user.ID)

	var tokenResp map[string]interface{}
	status = doJSON(t, app, http.MethodPost, "/api/auth/login", "", credentials, &tokenResp)
	assert.Equal(t, http.StatusOK, status)
	token, _ := tokenResp["access_token"].(string)
	assert.NotEmpty(t, token)
	assert.Equal(t, "bearer", tokenResp["token_type"])

	return user.ID, token
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestSignupAndLogin(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)

	credentials := map[string]string{"email": "signup@example.com", "password": "password123"}

	var user models.User
	status := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", credentials, &user)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "signup@example.com", user.Email)
	assert.Empty(t, user.Password)

	// Duplicate email is a conflict.
	status = doJSON(t, app, http.MethodPost, "/api/auth/signup", "", credentials, nil)
	assert.Equal(t, http.StatusConflict, status)

	var tokenResp map[string]interface{}
	status = doJSON(t, app, http.MethodPost, "/api/auth/login", "", credentials, &tokenResp)
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, tokenResp["access_token"])

	status = doJSON(t, app, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "signup@example.com", "password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized,
		doJSON(t, app, http.MethodGet, "/api/wishlists", "", nil, nil))
	assert.Equal(t, http.StatusUnauthorized,
		doJSON(t, app, http.MethodGet, "/api/users/me/profile", "", nil, nil))
	assert.Equal(t, http.StatusUnauthorized,
		doJSON(t, app, http.MethodPost, "/api/public/sometoken/claim", "", nil, nil))
}

func TestProfileLifecycle(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)

	userID, token := signupAndLogin(t, app, "profile@example.com")

	// No profile saved yet.
	status := doJSON(t, app, http.MethodGet, "/api/users/me/profile", token, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)

	var profile map[string]interface{}
	status = doJSON(t, app, http.MethodPut, "/api/users/me/profile", token, map[string]interface{}{
		"username":   "ada",
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"birthday":   "1990-12-10",
	}, &profile)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Ada Lovelace", profile["name"])

	status = doJSON(t, app, http.MethodGet, "/api/users/me/profile", token, nil, &profile)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ada", profile["username"])

	// Malformed birthday is rejected.
	status = doJSON(t, app, http.MethodPut, "/api/users/me/profile", token, map[string]interface{}{
		"birthday": "12/10/1990",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// The public page is readable without a token.
	var publicPage map[string]json.RawMessage
	status = doJSON(t, app, http.MethodGet, "/api/users/"+userID, "", nil, &publicPage)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, publicPage, "profile")
	assert.Contains(t, publicPage, "wishlists")
}

func TestWishlistAndItemLifecycle(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)

	_, token := signupAndLogin(t, app, "wishlist@example.com")

	var wishlist models.Wishlist
	status := doJSON(t, app, http.MethodPost, "/api/wishlists", token, map[string]interface{}{
		"name": "Birthday",
	}, &wishlist)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, models.VisibilityPrivate, wishlist.Visibility)

	var item models.WishlistItem
	status = doJSON(t, app, http.MethodPost, "/api/wishlists/"+wishlist.ID+"/items", token, map[string]interface{}{
		"title":    "Headphones",
		"link":     "https://example.com/headphones",
		"priority": 1,
	}, &item)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, wishlist.ID, item.WishlistID)

	// Mark the item received with a note.
	var received models.WishlistItem
	status = doJSON(t, app, http.MethodPut, "/api/wishlists/items/"+item.ID, token, map[string]interface{}{
		"title":         "Headphones",
		"is_received":   true,
		"received_note": "from grandma",
	}, &received)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, received.IsReceived)
	assert.NotNil(t, received.ReceivedNote)
	assert.Equal(t, "from grandma", *received.ReceivedNote)
	// The omitted link was cleared by the full-record update.
	assert.Nil(t, received.Link)

	// Flipping back to not received drops the note.
	var unreceived models.WishlistItem
	status = doJSON(t, app, http.MethodPut, "/api/wishlists/items/"+item.ID, token, map[string]interface{}{
		"title":         "Headphones",
		"is_received":   false,
		"received_note": "stale",
	}, &unreceived)
	assert.Equal(t, http.StatusOK, status)
	assert.False(t, unreceived.IsReceived)
	assert.Nil(t, unreceived.ReceivedNote)

	var fetched models.Wishlist
	status = doJSON(t, app, http.MethodGet, "/api/wishlists/"+wishlist.ID, token, nil, &fetched)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, fetched.Items, 1)

	// Another user cannot see it.
	_, otherToken := signupAndLogin(t, app, "wishlist-other@example.com")
	status = doJSON(t, app, http.MethodGet, "/api/wishlists/"+wishlist.ID, otherToken, nil, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status = doJSON(t, app, http.MethodDelete, "/api/wishlists/"+wishlist.ID, token, nil, nil)
	assert.Equal(t, http.StatusOK, status)
	status = doJSON(t, app, http.MethodGet, "/api/wishlists/"+wishlist.ID, token, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestShareResolveClaimAndComments(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)

	_, ownerToken := signupAndLogin(t, app, "share-owner@example.com")
	_, friendToken := signupAndLogin(t, app, "share-friend@example.com")
	claimerID, claimerToken := signupAndLogin(t, app, "share-claimer@example.com")

	status := doJSON(t, app, http.MethodPut, "/api/users/me/profile", ownerToken, map[string]interface{}{
		"first_name": "Grace",
		"last_name":  "Hopper",
	}, nil)
	assert.Equal(t, http.StatusOK, status)

	var wishlist models.Wishlist
	status = doJSON(t, app, http.MethodPost, "/api/wishlists", ownerToken, map[string]interface{}{
		"name": "Housewarming",
	}, &wishlist)
	assert.Equal(t, http.StatusCreated, status)

	var item models.WishlistItem
	status = doJSON(t, app, http.MethodPost, "/api/wishlists/"+wishlist.ID+"/items", ownerToken, map[string]interface{}{
		"title": "Kettle",
	}, &item)
	assert.Equal(t, http.StatusCreated, status)

	var share models.PublicShare
	status = doJSON(t, app, http.MethodPost, "/api/public/wishlists/"+wishlist.ID+"/share", ownerToken, map[string]interface{}{
		"is_claimable": true,
	}, &share)
	assert.Equal(t, http.StatusCreated, status)
	assert.NotEmpty(t, share.Token)

	// Only the owner can mint shares.
	status = doJSON(t, app, http.MethodPost, "/api/public/wishlists/"+wishlist.ID+"/share", friendToken, map[string]interface{}{
		"is_claimable": true,
	}, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// Anonymous resolve.
	var resolved map[string]json.RawMessage
	status = doJSON(t, app, http.MethodGet, "/api/public/"+share.Token, "", nil, &resolved)
	assert.Equal(t, http.StatusOK, status)
	var ownerName string
	assert.NoError(t, json.Unmarshal(resolved["owner_name"], &ownerName))
	assert.Equal(t, "Grace Hopper", ownerName)

	status = doJSON(t, app, http.MethodGet, "/api/public/unknown-token", "", nil, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// Commenting needs a token; reading the thread does not.
	status = doJSON(t, app, http.MethodPost, "/api/public/items/"+item.ID+"/comments", "", map[string]interface{}{
		"content": "anonymous",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	var comment models.ItemComment
	status = doJSON(t, app, http.MethodPost, "/api/public/items/"+item.ID+"/comments", friendToken, map[string]interface{}{
		"content": "I can pitch in for this one",
	}, &comment)
	assert.Equal(t, http.StatusCreated, status)

	var reply models.ItemComment
	status = doJSON(t, app, http.MethodPost, "/api/public/comments/"+comment.ID+"/replies", ownerToken, map[string]interface{}{
		"content": "thank you!",
	}, &reply)
	assert.Equal(t, http.StatusCreated, status)

	// Replying to a reply is rejected.
	status = doJSON(t, app, http.MethodPost, "/api/public/comments/"+reply.ID+"/replies", friendToken, map[string]interface{}{
		"content": "too deep",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	var threads map[string]models.CommentThread
	status = doJSON(t, app, http.MethodGet, "/api/public/"+share.Token+"/comments", "", nil, &threads)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, threads[item.ID].Roots, 1)
	assert.Len(t, threads[item.ID].RepliesByParent[comment.ID], 1)

	// First claim transfers ownership.
	var claimed models.Wishlist
	status = doJSON(t, app, http.MethodPost, "/api/public/"+share.Token+"/claim", claimerToken, nil, &claimed)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, claimerID, claimed.OwnerID)

	// The wishlist now shows up for the claimer, not the old owner.
	status = doJSON(t, app, http.MethodGet, "/api/wishlists/"+wishlist.ID, claimerToken, nil, nil)
	assert.Equal(t, http.StatusOK, status)
	status = doJSON(t, app, http.MethodGet, "/api/wishlists/"+wishlist.ID, ownerToken, nil, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// A second claim conflicts, even from the original owner.
	status = doJSON(t, app, http.MethodPost, "/api/public/"+share.Token+"/claim", ownerToken, nil, nil)
	assert.Equal(t, http.StatusConflict, status)
}
