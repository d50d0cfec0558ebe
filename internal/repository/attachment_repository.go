package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard/internal/model"
)

type AttachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

// Create records an uploaded file against its task and, when the upload
// arrived with a submit or deny comment, against that comment
func (r *AttachmentRepository) Create(ctx context.Context, attachment *model.Attachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

// GetByID retrieves an attachment by its ID
func (r *AttachmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Attachment, error) {
	var attachment model.Attachment
	result := r.db.WithContext(ctx).First(&attachment, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrAttachmentNotFound
		}
		return nil, result.Error
	}
	return &attachment, nil
}

// ListByTask retrieves the stored object names for a task, used to clean
// the file store up after a delete
func (r *AttachmentRepository) ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.Attachment, error) {
	var attachments []model.Attachment
	result := r.db.WithContext(ctx).Where("task_id = ?", taskID).Find(&attachments)
	if result.Error != nil {
		return nil, result.Error
	}
	return attachments, nil
}
