package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/saber-be/nextiwant/internal/models"
)

// MockCommentRepository is an in-memory implementation of CommentRepository.
// Comments are kept in insertion order so listings mirror the GORM
// implementation's creation-time ordering.
type MockCommentRepository struct {
	comments []models.ItemComment
	mu       sync.RWMutex
}

// NewMockCommentRepository creates a new instance of MockCommentRepository.
func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{}
}

// Create adds a new comment.
func (r *MockCommentRepository) Create(comment *models.ItemComment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	r.comments = append(r.comments, *comment)
	return nil
}

// GetByID returns a comment by its ID.
func (r *MockCommentRepository) GetByID(id string) (*models.ItemComment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, comment := range r.comments {
		if comment.ID == id {
			found := comment
			return &found, nil
		}
	}
	return nil, fmt.Errorf("comment with ID %s: %w", id, ErrNotFound)
}

// ListByItemIDs returns all comments for the given items in insertion order.
func (r *MockCommentRepository) ListByItemIDs(itemIDs []string) ([]models.ItemComment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}
	out := make([]models.ItemComment, 0)
	for _, comment := range r.comments {
		if wanted[comment.ItemID] {
			out = append(out, comment)
		}
	}
	return out, nil
}
