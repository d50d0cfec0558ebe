package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskboard/internal/middleware"
	"taskboard/internal/model"
	"taskboard/internal/schedule"
)

// UserResponse is the public shape of a user.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// TaskResponse is the summary shape carried by board and queue payloads.
// Cards carry only these fields; the detail panel always re-fetches.
type TaskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OwnerUserID string `json:"owner_user_id"`
	OwnerName   string `json:"owner_name,omitempty"`
	DirectorID  string `json:"director_id"`
	StartDate   string `json:"start_date"`
	DueDate     string `json:"due_date"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
}

// AttachmentResponse always carries both URL forms: download forces a
// save, inline is guaranteed to render in an embedded frame.
type AttachmentResponse struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	DownloadURL string `json:"download_url"`
	InlineURL   string `json:"inline_url"`
}

// CommentResponse renders identically whether the owner or the director
// authored the comment.
type CommentResponse struct {
	AuthorName  string               `json:"author_name"`
	CreatedAt   string               `json:"created_at"`
	Text        string               `json:"text"`
	Attachments []AttachmentResponse `json:"attachments"`
}

// TaskDetailResponse is the full task the detail panel renders.
type TaskDetailResponse struct {
	TaskResponse
	ViewerRole     string               `json:"viewer_role"`
	AllowedActions []string             `json:"allowed_actions"`
	Comments       []CommentResponse    `json:"comments"`
	Attachments    []AttachmentResponse `json:"attachments"`
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

func toTaskResponse(t *model.Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		OwnerUserID: t.OwnerID.String(),
		DirectorID:  t.DirectorID.String(),
		StartDate:   t.StartDate.Format(schedule.DateLayout),
		DueDate:     t.DueDate.Format(schedule.DateLayout),
		Priority:    t.Priority,
		Status:      t.Status,
	}
	if t.Owner.ID != uuid.Nil {
		resp.OwnerName = t.Owner.Name
	}
	return resp
}

func toAttachmentResponse(a *model.Attachment) AttachmentResponse {
	id := a.ID.String()
	return AttachmentResponse{
		ID:          id,
		Filename:    a.Filename,
		DownloadURL: "/api/attachments/" + id + "/download",
		InlineURL:   "/api/attachments/" + id + "/inline",
	}
}

func toCommentResponse(cm *model.Comment) CommentResponse {
	attachments := make([]AttachmentResponse, 0, len(cm.Attachments))
	for i := range cm.Attachments {
		attachments = append(attachments, toAttachmentResponse(&cm.Attachments[i]))
	}
	return CommentResponse{
		AuthorName:  cm.Author.Name,
		CreatedAt:   cm.CreatedAt.Format(time.RFC3339),
		Text:        cm.Text,
		Attachments: attachments,
	}
}

// currentUser pulls the authenticated caller off the request context. It
// writes the error response itself, so callers just return on !ok.
func currentUser(c *gin.Context) (uuid.UUID, string, bool) {
	rawID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return uuid.Nil, "", false
	}
	userID, ok := rawID.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return uuid.Nil, "", false
	}
	role, _ := c.Get(middleware.RoleKey)
	roleStr, _ := role.(string)
	return userID, roleStr, true
}
