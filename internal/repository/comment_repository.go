package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard/internal/model"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create appends a comment to its task; comments are never edited or
// deleted individually
func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// ListByTask retrieves a task's comments chronologically with authors and
// nested attachments
func (r *CommentRepository) ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.Comment, error) {
	var comments []model.Comment
	result := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Attachments").
		Where("task_id = ?", taskID).
		Order("created_at").
		Find(&comments)
	if result.Error != nil {
		return nil, result.Error
	}
	return comments, nil
}
