package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/model"
	"taskboard/internal/schedule"
)

// ReviewHandler serves the director's flat queue of tasks awaiting
// approval. Approve and deny themselves go through the task status
// endpoint, so the queue stays a pure read projection.
type ReviewHandler struct {
	taskRepo TaskStore
}

func NewReviewHandler(taskRepo TaskStore) *ReviewHandler {
	return &ReviewHandler{taskRepo: taskRepo}
}

type ReviewItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	OwnerName string `json:"owner_name"`
	DueDate   string `json:"due_date"`
}

type ReviewResponse struct {
	Items []ReviewItem `json:"items"`
}

// List returns tasks in under_review, optionally filtered by ?q over
// title and owner name; directors only
func (h *ReviewHandler) List(c *gin.Context) {
	_, role, ok := currentUser(c)
	if !ok {
		return
	}
	if role != model.RoleDirector {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only directors can view the review queue"})
		return
	}

	tasks, err := h.taskRepo.ListUnderReview(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve review queue"})
		return
	}

	resp := ReviewResponse{Items: make([]ReviewItem, 0, len(tasks))}
	for i := range tasks {
		resp.Items = append(resp.Items, ReviewItem{
			ID:        tasks[i].ID.String(),
			Title:     tasks[i].Title,
			OwnerName: tasks[i].Owner.Name,
			DueDate:   tasks[i].DueDate.Format(schedule.DateLayout),
		})
	}

	c.JSON(http.StatusOK, resp)
}
