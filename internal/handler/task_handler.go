package handler

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/schedule"
	"taskboard/internal/workflow"
)

type TaskHandler struct {
	taskRepo       TaskStore
	commentRepo    CommentStore
	attachmentRepo AttachmentStore
	userRepo       UserStore
	files          FileStore
}

func NewTaskHandler(
	taskRepo TaskStore,
	commentRepo CommentStore,
	attachmentRepo AttachmentStore,
	userRepo UserStore,
	files FileStore,
) *TaskHandler {
	return &TaskHandler{
		taskRepo:       taskRepo,
		commentRepo:    commentRepo,
		attachmentRepo: attachmentRepo,
		userRepo:       userRepo,
		files:          files,
	}
}

// CreateTaskRequest is the multipart form for task creation. Dates are
// inclusive calendar dates.
type CreateTaskRequest struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description"`
	OwnerUserID string `form:"owner_user_id" binding:"required,uuid"`
	StartDate   string `form:"start_date" binding:"required"`
	DueDate     string `form:"due_date" binding:"required"`
	Priority    string `form:"priority" binding:"omitempty,oneof=low normal high"`
}

// StatusRequest drives start, restart, approve and deny. Submit has its
// own multipart endpoint because it carries files.
type StatusRequest struct {
	Action  string `json:"action" binding:"required,oneof=start restart approve deny"`
	Comment string `json:"comment"`
}

// CommentRequest appends a note without touching status; the week board's
// drag-to-reschedule posts here.
type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// Create creates a task in the assigned state; directors only
func (h *TaskHandler) Create(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		return
	}
	if role != model.RoleDirector {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only directors can create tasks"})
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	startDate, err := time.Parse(schedule.DateLayout, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date, expected YYYY-MM-DD"})
		return
	}
	dueDate, err := time.Parse(schedule.DateLayout, req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due_date, expected YYYY-MM-DD"})
		return
	}
	if dueDate.Before(startDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "due_date must not be before start_date"})
		return
	}

	ownerID, err := uuid.Parse(req.OwnerUserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid owner ID format"})
		return
	}
	if _, err := h.userRepo.GetByID(c.Request.Context(), ownerID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Owner not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve owner"})
		}
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityNormal
	}

	task := &model.Task{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		OwnerID:     ownerID,
		DirectorID:  userID,
		StartDate:   startDate,
		DueDate:     dueDate,
		Priority:    priority,
		Status:      model.StatusAssigned,
	}

	if err := h.taskRepo.Create(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	if err := h.saveUploads(c, task.ID, nil); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store attachments"})
		return
	}

	// Respond with the row as stored, not the request echoed back.
	fresh, err := h.taskRepo.GetDetail(c.Request.Context(), task.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return
	}
	c.JSON(http.StatusCreated, h.detailResponse(fresh, userID, role))
}

// GetByID returns the full task for the detail panel: comments,
// attachments, the viewer's role and the exact action set legal for
// (status, role)
func (h *TaskHandler) GetByID(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	task, err := h.taskRepo.GetDetail(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	if workflow.ActorFor(task, userID, role) == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have access to this task"})
		return
	}

	c.JSON(http.StatusOK, h.detailResponse(task, userID, role))
}

// Status performs a start, restart, approve or deny transition against
// the transition table. Deny requires a non-empty reason, which becomes
// a director comment on the task.
func (h *TaskHandler) Status(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	actor := workflow.ActorFor(task, userID, role)
	rule, err := workflow.Lookup(task.Status, req.Action, actor)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Action not allowed for this task's current status"})
		return
	}

	// Validation failure: the reason must exist before anything mutates.
	if rule.NeedsComment && strings.TrimSpace(req.Comment) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A non-empty comment is required for this action"})
		return
	}

	// The reason travels in the same transaction as the status change, so
	// a task never ends up denied without its comment.
	var fresh *model.Task
	if rule.NeedsComment {
		comment := &model.Comment{
			ID:       uuid.New(),
			TaskID:   taskID,
			AuthorID: userID,
			Text:     strings.TrimSpace(req.Comment),
		}
		fresh, err = h.taskRepo.TransitionWithComment(c.Request.Context(), taskID, rule.From, rule.To, comment)
	} else {
		fresh, err = h.taskRepo.Transition(c.Request.Context(), taskID, rule.From, rule.To)
	}
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrStatusConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Task status changed, reload and retry"})
		case errors.Is(err, repository.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"action": req.Action, "task": toTaskResponse(fresh)})
}

// Submit moves a task from in_progress to under_review. The comment is
// mandatory; uploaded files are attached to the submit comment.
func (h *TaskHandler) Submit(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	commentText := strings.TrimSpace(c.PostForm("comment"))
	if commentText == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A non-empty comment is required to submit"})
		return
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	actor := workflow.ActorFor(task, userID, role)
	rule, err := workflow.Lookup(task.Status, workflow.ActionSubmit, actor)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Task cannot be submitted from its current status"})
		return
	}

	// The submission comment commits together with the status change.
	comment := &model.Comment{
		ID:       uuid.New(),
		TaskID:   taskID,
		AuthorID: userID,
		Text:     commentText,
	}
	fresh, err := h.taskRepo.TransitionWithComment(c.Request.Context(), taskID, rule.From, rule.To, comment)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrStatusConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Task status changed, reload and retry"})
		case errors.Is(err, repository.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task status"})
		}
		return
	}

	if err := h.saveUploads(c, taskID, &comment.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store attachments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"action": workflow.ActionSubmit, "task": toTaskResponse(fresh)})
}

// Delete permanently removes a task; directors only, never from completed
func (h *TaskHandler) Delete(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	// Role problems are forbidden; a completed task is a state conflict.
	actor := workflow.ActorFor(task, userID, role)
	if actor != workflow.ActorDirector {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only directors can delete tasks"})
		return
	}
	if _, err := workflow.Lookup(task.Status, workflow.ActionDelete, actor); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Task cannot be deleted from its current status"})
		return
	}

	// Object names must be read before the rows go away.
	attachments, err := h.attachmentRepo.ListByTask(c.Request.Context(), taskID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve attachments"})
		return
	}

	if err := h.taskRepo.Delete(c.Request.Context(), taskID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		}
		return
	}

	// The rows are gone; a leftover file is only worth a log line.
	for i := range attachments {
		if err := h.files.Remove(attachments[i].ObjectName); err != nil {
			log.Printf("⚠️  Failed to remove stored file %s: %v", attachments[i].ObjectName, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// AddComment appends a note to a task without changing its status
func (h *TaskHandler) AddComment(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	if workflow.ActorFor(task, userID, role) == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have access to this task"})
		return
	}

	comment := &model.Comment{
		ID:       uuid.New(),
		TaskID:   taskID,
		AuthorID: userID,
		Text:     req.Text,
	}
	if err := h.commentRepo.Create(c.Request.Context(), comment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record comment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Comment added"})
}

// saveUploads stores every file of the "files" multipart field and
// records an attachment row per file, optionally tied to a comment.
func (h *TaskHandler) saveUploads(c *gin.Context, taskID uuid.UUID, commentID *uuid.UUID) error {
	form, err := c.MultipartForm()
	if err != nil {
		// No multipart body at all means no files to save.
		return nil
	}
	var files []*multipart.FileHeader
	if form != nil {
		files = form.File["files"]
	}

	for _, file := range files {
		objectName, err := h.files.Save(file)
		if err != nil {
			return err
		}
		attachment := &model.Attachment{
			ID:         uuid.New(),
			TaskID:     taskID,
			CommentID:  commentID,
			Filename:   file.Filename,
			ObjectName: objectName,
		}
		if err := h.attachmentRepo.Create(c.Request.Context(), attachment); err != nil {
			return err
		}
	}
	return nil
}

func (h *TaskHandler) detailResponse(task *model.Task, userID uuid.UUID, role string) TaskDetailResponse {
	actor := workflow.ActorFor(task, userID, role)

	comments := make([]CommentResponse, 0, len(task.Comments))
	for i := range task.Comments {
		comments = append(comments, toCommentResponse(&task.Comments[i]))
	}
	attachments := make([]AttachmentResponse, 0, len(task.Attachments))
	for i := range task.Attachments {
		attachments = append(attachments, toAttachmentResponse(&task.Attachments[i]))
	}

	return TaskDetailResponse{
		TaskResponse:   toTaskResponse(task),
		ViewerRole:     actor,
		AllowedActions: workflow.AllowedActions(task.Status, actor),
		Comments:       comments,
		Attachments:    attachments,
	}
}
