package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard/internal/model"
)

var (
	ErrTaskNotFound = errors.New("task not found")
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create adds a new task to the database
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetByID retrieves a task by its ID without relations
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// GetDetail retrieves a task with its full comment history (chronological,
// with authors and nested attachments) and task-level attachments; this is
// what the detail panel renders
func (r *TaskRepository) GetDetail(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Director").
		Preload("Attachments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at")
		}).
		Preload("Comments.Author").
		Preload("Comments.Attachments").
		First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// ListWindow retrieves all tasks whose [start_date, due_date] intersects
// the inclusive [start, end] window, with their owners preloaded
func (r *TaskRepository) ListWindow(ctx context.Context, start, end time.Time) ([]model.Task, error) {
	var tasks []model.Task
	result := r.db.WithContext(ctx).
		Preload("Owner").
		Where("start_date <= ? AND due_date >= ?", end, start).
		Order("start_date").
		Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// ListByOwner retrieves all of one user's tasks for the kanban board
func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("due_date").
		Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// ListUnderReview retrieves tasks awaiting review, newest submission first,
// optionally filtered by a case-insensitive substring over title or owner name
func (r *TaskRepository) ListUnderReview(ctx context.Context, query string) ([]model.Task, error) {
	var tasks []model.Task
	q := r.db.WithContext(ctx).
		Preload("Owner").
		Joins("JOIN users ON users.id = tasks.owner_id").
		Where("tasks.status = ?", model.StatusUnderReview)
	if query != "" {
		pattern := "%" + query + "%"
		q = q.Where("tasks.title ILIKE ? OR users.name ILIKE ?", pattern, pattern)
	}
	result := q.Order("tasks.updated_at DESC").Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// Transition atomically moves a task from one status to another. The
// update is conditional on the expected current status, so a transition
// that lost a race fails with ErrStatusConflict instead of clobbering the
// winner. The returned task is re-read after the write.
func (r *TaskRepository) Transition(ctx context.Context, id uuid.UUID, from, to string) (*model.Task, error) {
	return r.transition(ctx, id, from, to, nil)
}

// TransitionWithComment performs the same conditional status update and
// records the comment in the same transaction. A task never lands in the
// new status without its reason, and a failed comment insert rolls the
// status change back.
func (r *TaskRepository) TransitionWithComment(ctx context.Context, id uuid.UUID, from, to string, comment *model.Comment) (*model.Task, error) {
	return r.transition(ctx, id, from, to, comment)
}

func (r *TaskRepository) transition(ctx context.Context, id uuid.UUID, from, to string, comment *model.Comment) (*model.Task, error) {
	var fresh model.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Task{}).
			Where("id = ? AND status = ?", id, from).
			Update("status", to)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Distinguish a vanished task from a concurrent transition.
			var count int64
			if err := tx.Model(&model.Task{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrTaskNotFound
			}
			return ErrStatusConflict
		}
		if comment != nil {
			if err := tx.Create(comment).Error; err != nil {
				return err
			}
		}
		return tx.First(&fresh, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &fresh, nil
}

// Delete permanently removes a task together with its comments and
// attachment rows
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Attachment{}, "task_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Comment{}, "task_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Task{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTaskNotFound
		}
		return nil
	})
}
