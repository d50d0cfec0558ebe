package handler_test

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"taskboard/internal/middleware"
	"taskboard/internal/model"
)

// Mocks substituting the repository layer behind the handler store
// interfaces.

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserStore) ListWorkers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	users := args.Get(0)
	if users == nil {
		return nil, args.Error(1)
	}
	return users.([]model.User), args.Error(1)
}

type MockTaskStore struct {
	mock.Mock
}

func (m *MockTaskStore) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	task := args.Get(0)
	if task == nil {
		return nil, args.Error(1)
	}
	return task.(*model.Task), args.Error(1)
}

func (m *MockTaskStore) GetDetail(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	task := args.Get(0)
	if task == nil {
		return nil, args.Error(1)
	}
	return task.(*model.Task), args.Error(1)
}

func (m *MockTaskStore) ListWindow(ctx context.Context, start, end time.Time) ([]model.Task, error) {
	args := m.Called(ctx, start, end)
	tasks := args.Get(0)
	if tasks == nil {
		return nil, args.Error(1)
	}
	return tasks.([]model.Task), args.Error(1)
}

func (m *MockTaskStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, ownerID)
	tasks := args.Get(0)
	if tasks == nil {
		return nil, args.Error(1)
	}
	return tasks.([]model.Task), args.Error(1)
}

func (m *MockTaskStore) ListUnderReview(ctx context.Context, query string) ([]model.Task, error) {
	args := m.Called(ctx, query)
	tasks := args.Get(0)
	if tasks == nil {
		return nil, args.Error(1)
	}
	return tasks.([]model.Task), args.Error(1)
}

func (m *MockTaskStore) Transition(ctx context.Context, id uuid.UUID, from, to string) (*model.Task, error) {
	args := m.Called(ctx, id, from, to)
	task := args.Get(0)
	if task == nil {
		return nil, args.Error(1)
	}
	return task.(*model.Task), args.Error(1)
}

func (m *MockTaskStore) TransitionWithComment(ctx context.Context, id uuid.UUID, from, to string, comment *model.Comment) (*model.Task, error) {
	args := m.Called(ctx, id, from, to, comment)
	task := args.Get(0)
	if task == nil {
		return nil, args.Error(1)
	}
	return task.(*model.Task), args.Error(1)
}

func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCommentStore struct {
	mock.Mock
}

func (m *MockCommentStore) Create(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentStore) ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.Comment, error) {
	args := m.Called(ctx, taskID)
	comments := args.Get(0)
	if comments == nil {
		return nil, args.Error(1)
	}
	return comments.([]model.Comment), args.Error(1)
}

type MockAttachmentStore struct {
	mock.Mock
}

func (m *MockAttachmentStore) Create(ctx context.Context, attachment *model.Attachment) error {
	args := m.Called(ctx, attachment)
	return args.Error(0)
}

func (m *MockAttachmentStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Attachment, error) {
	args := m.Called(ctx, id)
	attachment := args.Get(0)
	if attachment == nil {
		return nil, args.Error(1)
	}
	return attachment.(*model.Attachment), args.Error(1)
}

func (m *MockAttachmentStore) ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.Attachment, error) {
	args := m.Called(ctx, taskID)
	attachments := args.Get(0)
	if attachments == nil {
		return nil, args.Error(1)
	}
	return attachments.([]model.Attachment), args.Error(1)
}

type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Save(file *multipart.FileHeader) (string, error) {
	args := m.Called(file)
	return args.String(0), args.Error(1)
}

func (m *MockFileStore) Path(objectName string) (string, error) {
	args := m.Called(objectName)
	return args.String(0), args.Error(1)
}

func (m *MockFileStore) Remove(objectName string) error {
	args := m.Called(objectName)
	return args.Error(0)
}

// authAs injects the authenticated caller the way JWTAuthMiddleware would.
func authAs(userID uuid.UUID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Set(middleware.RoleKey, role)
		c.Next()
	}
}
