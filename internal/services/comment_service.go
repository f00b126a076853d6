package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/saber-be/nextiwant/internal/models"
	"github.com/saber-be/nextiwant/internal/repositories"
	"github.com/saber-be/nextiwant/pkg/rabbitmq"
)

// CommentService handles comments on shared wishlist items. Reading is
// open to anyone holding a share token; writing requires an
// authenticated user. Threads are exactly two levels deep: root comments
// and their direct replies.
type CommentService struct {
	commentRepo  repositories.CommentRepository
	shareRepo    repositories.ShareRepository
	wishlistRepo repositories.WishlistRepository
	userRepo     repositories.UserRepository
	mqClient     *rabbitmq.Client
}

// NewCommentService creates a new CommentService.
func NewCommentService(
	commentRepo repositories.CommentRepository,
	shareRepo repositories.ShareRepository,
	wishlistRepo repositories.WishlistRepository,
	userRepo repositories.UserRepository,
	mqClient *rabbitmq.Client,
) *CommentService {
	return &CommentService{
		commentRepo:  commentRepo,
		shareRepo:    shareRepo,
		wishlistRepo: wishlistRepo,
		userRepo:     userRepo,
		mqClient:     mqClient,
	}
}

// GroupComments buckets a flat comment sequence into per-item threads in
// a single pass. A comment without a parent is a root for its item; a
// comment with a parent lands under that parent. Order within every
// bucket preserves input order, so callers must not resort the input.
// Every comment ends up in exactly one bucket.
func GroupComments(comments []models.ItemComment) map[string]models.CommentThread {
	threads := make(map[string]models.CommentThread)
	for _, comment := range comments {
		thread, ok := threads[comment.ItemID]
		if !ok {
			thread = models.CommentThread{
				Roots:           make([]models.ItemComment, 0),
				RepliesByParent: make(map[string][]models.ItemComment),
			}
		}
		if comment.ParentID == nil {
			thread.Roots = append(thread.Roots, comment)
		} else {
			thread.RepliesByParent[*comment.ParentID] = append(thread.RepliesByParent[*comment.ParentID], comment)
		}
		threads[comment.ItemID] = thread
	}
	return threads
}

// ListThreadsByToken resolves a share token and returns the shared
// wishlist's comments grouped per item, with author display names filled
// in.
func (s *CommentService) ListThreadsByToken(token string) (map[string]models.CommentThread, error) {
	share, err := s.shareRepo.GetByToken(token)
	if err != nil {
		return nil, err
	}
	if !share.IsActive(time.Now()) {
		return nil, fmt.Errorf("share expired: %w", repositories.ErrNotFound)
	}

	wishlist, err := s.wishlistRepo.GetByID(share.WishlistID)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]string, 0, len(wishlist.Items))
	for _, item := range wishlist.Items {
		itemIDs = append(itemIDs, item.ID)
	}

	comments, err := s.commentRepo.ListByItemIDs(itemIDs)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string)
	for i := range comments {
		comments[i].UserName = s.authorName(names, comments[i].UserID)
	}

	return GroupComments(comments), nil
}

// AddComment creates a root comment on an item.
func (s *CommentService) AddComment(userID, itemID, content string) (*models.ItemComment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}
	if _, err := s.wishlistRepo.GetItemByID(itemID); err != nil {
		return nil, err
	}

	comment := &models.ItemComment{
		ItemID:  itemID,
		UserID:  userID,
		Content: content,
	}
	return s.save(comment)
}

// AddReply creates a reply to a root comment. Replying to a reply is
// rejected so the thread depth stays at two levels; the check lives
// here, at the write boundary, not only in whoever renders threads.
func (s *CommentService) AddReply(userID, parentID, content string) (*models.ItemComment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}

	parent, err := s.commentRepo.GetByID(parentID)
	if err != nil {
		return nil, err
	}
	if !parent.IsRoot() {
		return nil, fmt.Errorf("%w: cannot reply to a reply", ErrValidation)
	}

	comment := &models.ItemComment{
		ItemID:   parent.ItemID,
		UserID:   userID,
		ParentID: &parent.ID,
		Content:  content,
	}
	return s.save(comment)
}

func (s *CommentService) save(comment *models.ItemComment) (*models.ItemComment, error) {
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	comment.UserName = s.authorName(nil, comment.UserID)

	if s.mqClient != nil {
		payload := map[string]interface{}{
			"comment_id": comment.ID,
			"item_id":    comment.ItemID,
		}
		if comment.ParentID != nil {
			payload["parent_id"] = *comment.ParentID
		}
		if err := s.mqClient.PublishEvent(rabbitmq.EventCommentCreated, payload); err != nil {
			log.Printf("Warning: failed to publish comment event for comment %s: %v", comment.ID, err)
		}
	}

	return comment, nil
}

// authorName resolves a commenter's display name, memoizing lookups in
// cache when one is provided.
func (s *CommentService) authorName(cache map[string]string, userID string) string {
	if cache != nil {
		if name, ok := cache[userID]; ok {
			return name
		}
	}
	name := ""
	profile, err := s.userRepo.GetProfile(userID)
	if err == nil {
		name = profile.DisplayName()
	} else if !errors.Is(err, repositories.ErrNotFound) {
		log.Printf("Failed to load profile for commenter %s: %v", userID, err)
	}
	if cache != nil {
		cache[userID] = name
	}
	return name
}
