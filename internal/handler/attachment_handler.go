package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/storage"
	"taskboard/internal/workflow"
)

// AttachmentHandler serves stored files in their two forms: download
// (forces a save) and inline (renders in an embedded frame). Both are
// independent affordances over the same object.
type AttachmentHandler struct {
	attachmentRepo AttachmentStore
	taskRepo       TaskStore
	files          FileStore
}

func NewAttachmentHandler(attachmentRepo AttachmentStore, taskRepo TaskStore, files FileStore) *AttachmentHandler {
	return &AttachmentHandler{attachmentRepo: attachmentRepo, taskRepo: taskRepo, files: files}
}

// Download serves the attachment with an attachment disposition
func (h *AttachmentHandler) Download(c *gin.Context) {
	attachment, path, ok := h.resolve(c)
	if !ok {
		return
	}
	c.FileAttachment(path, attachment.Filename)
}

// Inline serves the attachment with an inline disposition so the detail
// panel can load it into an embedded frame
func (h *AttachmentHandler) Inline(c *gin.Context) {
	attachment, path, ok := h.resolve(c)
	if !ok {
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+attachment.Filename+`"`)
	c.File(path)
}

func (h *AttachmentHandler) resolve(c *gin.Context) (*model.Attachment, string, bool) {
	userID, role, ok := currentUser(c)
	if !ok {
		return nil, "", false
	}

	attachmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attachment ID format"})
		return nil, "", false
	}

	attachment, err := h.attachmentRepo.GetByID(c.Request.Context(), attachmentID)
	if err != nil {
		if errors.Is(err, repository.ErrAttachmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Attachment not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve attachment"})
		}
		return nil, "", false
	}

	// Same access gate as the detail panel: files are only reachable
	// through a task the caller can see.
	task, err := h.taskRepo.GetByID(c.Request.Context(), attachment.TaskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return nil, "", false
	}
	if workflow.ActorFor(task, userID, role) == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have access to this task"})
		return nil, "", false
	}

	path, err := h.files.Path(attachment.ObjectName)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Stored file not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve stored file"})
		}
		return nil, "", false
	}

	return attachment, path, true
}
