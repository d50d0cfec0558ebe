package handler

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/model"
)

// Store interfaces the handlers depend on. The repository package
// satisfies them; handler tests substitute mocks.

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	ListWorkers(ctx context.Context) ([]model.User, error)
}

type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*model.Task, error)
	ListWindow(ctx context.Context, start, end time.Time) ([]model.Task, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error)
	ListUnderReview(ctx context.Context, query string) ([]model.Task, error)
	Transition(ctx context.Context, id uuid.UUID, from, to string) (*model.Task, error)
	TransitionWithComment(ctx context.Context, id uuid.UUID, from, to string, comment *model.Comment) (*model.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CommentStore interface {
	Create(ctx context.Context, comment *model.Comment) error
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.Comment, error)
}

type AttachmentStore interface {
	Create(ctx context.Context, attachment *model.Attachment) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Attachment, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.Attachment, error)
}

// FileStore is the disk store behind attachment serving.
type FileStore interface {
	Save(file *multipart.FileHeader) (string, error)
	Path(objectName string) (string, error)
	Remove(objectName string) error
}
