package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saber-be/nextiwant/internal/models"
	"github.com/saber-be/nextiwant/internal/repositories"
	"github.com/saber-be/nextiwant/internal/services"
)

func newCommentServiceFixture() (*services.CommentService, *services.ShareService, *repositories.MockWishlistRepository, *repositories.MockUserRepository) {
	commentRepo := repositories.NewMockCommentRepository()
	shareRepo := repositories.NewMockShareRepository()
	wishlistRepo := repositories.NewMockWishlistRepository()
	userRepo := repositories.NewMockUserRepository()

	commentService := services.NewCommentService(commentRepo, shareRepo, wishlistRepo, userRepo, nil)
	shareService := services.NewShareService(shareRepo, wishlistRepo, userRepo, nil)
	return commentService, shareService, wishlistRepo, userRepo
}

func seedItem(t *testing.T, repo *repositories.MockWishlistRepository, wishlistID, title string) *models.WishlistItem {
	t.Helper()
	item := &models.WishlistItem{WishlistID: wishlistID, Title: title}
	assert.NoError(t, repo.CreateItem(item))
	return item
}

func strPtr(s string) *string { return &s }

func TestGroupComments(t *testing.T) {
	comments := []models.ItemComment{
		{ID: "c1", ItemID: "item-1", Content: "first root"},
		{ID: "c2", ItemID: "item-1", ParentID: strPtr("c1"), Content: "first reply"},
		{ID: "c3", ItemID: "item-2", Content: "other item"},
		{ID: "c4", ItemID: "item-1", Content: "second root"},
		{ID: "c5", ItemID: "item-1", ParentID: strPtr("c1"), Content: "second reply"},
		{ID: "c6", ItemID: "item-1", ParentID: strPtr("c4"), Content: "reply elsewhere"},
	}

	threads := services.GroupComments(comments)
	assert.Len(t, threads, 2)

	item1 := threads["item-1"]
	assert.Len(t, item1.Roots, 2)
	assert.Equal(t, "c1", item1.Roots[0].ID)
	assert.Equal(t, "c4", item1.Roots[1].ID)
	assert.Len(t, item1.RepliesByParent["c1"], 2)
	assert.Equal(t, "c2", item1.RepliesByParent["c1"][0].ID)
	assert.Equal(t, "c5", item1.RepliesByParent["c1"][1].ID)
	assert.Len(t, item1.RepliesByParent["c4"], 1)

	item2 := threads["item-2"]
	assert.Len(t, item2.Roots, 1)
	assert.Empty(t, item2.RepliesByParent)

	// Every comment lands in exactly one bucket.
	total := 0
	for _, thread := range threads {
		total += len(thread.Roots)
		for _, replies := range thread.RepliesByParent {
			total += len(replies)
		}
	}
	assert.Equal(t, len(comments), total)
}

func TestGroupComments_Empty(t *testing.T) {
	threads := services.GroupComments(nil)
	assert.Empty(t, threads)
}

func TestCommentService_AddComment(t *testing.T) {
	commentService, _, wishlistRepo, userRepo := newCommentServiceFixture()
	wishlist := seedWishlist(t, wishlistRepo, "owner-1", "Birthday")
	item := seedItem(t, wishlistRepo, wishlist.ID, "Headphones")

	username := "ada"
	assert.NoError(t, userRepo.UpsertProfile(&models.Profile{UserID: "commenter-1", Username: &username}))

	comment, err := commentService.AddComment("commenter-1", item.ID, "  Nice pick!  ")
	assert.NoError(t, err)
	assert.Equal(t, "Nice pick!", comment.Content)
	assert.Equal(t, item.ID, comment.ItemID)
	assert.Nil(t, comment.ParentID)
	assert.Equal(t, "ada", comment.UserName)
}

func TestCommentService_AddComment_EmptyContent(t *testing.T) {
	commentService, _, wishlistRepo, _ := newCommentServiceFixture()
	wishlist := seedWishlist(t, wishlistRepo, "owner-1", "Birthday")
	item := seedItem(t, wishlistRepo, wishlist.ID, "Headphones")

	_, err := commentService.AddComment("commenter-1", item.ID, "   ")
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestCommentService_AddComment_UnknownItem(t *testing.T) {
	commentService, _, _, _ := newCommentServiceFixture()

	_, err := commentService.AddComment("commenter-1", "no-such-item", "hello")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCommentService_AddReply(t *testing.T) {
	commentService, _, wishlistRepo, _ := newCommentServiceFixture()
	wishlist := seedWishlist(t, wishlistRepo, "owner-1", "Birthday")
	item := seedItem(t, wishlistRepo, wishlist.ID, "Headphones")

	root, err := commentService.AddComment("commenter-1", item.ID, "root comment")
	assert.NoError(t, err)

	reply, err := commentService.AddReply("commenter-2", root.ID, "a reply")
	assert.NoError(t, err)
	assert.Equal(t, item.ID, reply.ItemID)
	assert.NotNil(t, reply.ParentID)
	assert.Equal(t, root.ID, *reply.ParentID)
}

func TestCommentService_AddReply_ToReplyRejected(t *testing.T) {
	commentService, _, wishlistRepo, _ := newCommentServiceFixture()
	wishlist := seedWishlist(t, wishlistRepo, "owner-1", "Birthday")
	item := seedItem(t, wishlistRepo, wishlist.ID, "Headphones")

	root, err := commentService.AddComment("commenter-1", item.ID, "root comment")
	assert.NoError(t, err)
	reply, err := commentService.AddReply("commenter-2", root.ID, "a reply")
	assert.NoError(t, err)

	_, err = commentService.AddReply("commenter-3", reply.ID, "too deep")
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestCommentService_ListThreadsByToken(t *testing.T) {
	commentService, shareService, wishlistRepo, userRepo := newCommentServiceFixture()
	wishlist := seedWishlist(t, wishlistRepo, "owner-1", "Birthday")
	headphones := seedItem(t, wishlistRepo, wishlist.ID, "Headphones")
	book := seedItem(t, wishlistRepo, wishlist.ID, "Book")

	username := "ada"
	assert.NoError(t, userRepo.UpsertProfile(&models.Profile{UserID: "commenter-1", Username: &username}))

	root, err := commentService.AddComment("commenter-1", headphones.ID, "love these")
	assert.NoError(t, err)
	_, err = commentService.AddReply("commenter-2", root.ID, "me too")
	assert.NoError(t, err)
	_, err = commentService.AddComment("commenter-2", book.ID, "great read")
	assert.NoError(t, err)

	share, err := shareService.CreateShare("owner-1", wishlist.ID, false)
	assert.NoError(t, err)

	threads, err := commentService.ListThreadsByToken(share.Token)
	assert.NoError(t, err)
	assert.Len(t, threads, 2)

	headphoneThread := threads[headphones.ID]
	assert.Len(t, headphoneThread.Roots, 1)
	assert.Equal(t, "ada", headphoneThread.Roots[0].UserName)
	assert.Len(t, headphoneThread.RepliesByParent[root.ID], 1)
	// A commenter without a profile still shows up, just nameless.
	assert.Equal(t, "", headphoneThread.RepliesByParent[root.ID][0].UserName)

	assert.Len(t, threads[book.ID].Roots, 1)
}

func TestCommentService_ListThreadsByToken_UnknownToken(t *testing.T) {
	commentService, _, _, _ := newCommentServiceFixture()

	_, err := commentService.ListThreadsByToken("no-such-token")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
