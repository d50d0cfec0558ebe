package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/schedule"
	"taskboard/internal/workflow"
)

type BoardHandler struct {
	taskRepo TaskStore
	userRepo UserStore
}

func NewBoardHandler(taskRepo TaskStore, userRepo UserStore) *BoardHandler {
	return &BoardHandler{taskRepo: taskRepo, userRepo: userRepo}
}

// WeekResponse is the director's grid payload: one row per worker, one
// column per weekday; cell placement is the client's pure date-range
// intersection over these tasks.
type WeekResponse struct {
	Start string         `json:"start"`
	End   string         `json:"end"`
	Users []UserResponse `json:"users"`
	Tasks []TaskResponse `json:"tasks"`
}

// KanbanResponse always carries all five columns, empty or not.
type KanbanResponse struct {
	Assigned    []TaskResponse `json:"assigned"`
	InProgress  []TaskResponse `json:"in_progress"`
	UnderReview []TaskResponse `json:"under_review"`
	Returned    []TaskResponse `json:"returned"`
	Completed   []TaskResponse `json:"completed"`
}

// MoveRequest is a kanban drag: the source and destination columns plus
// the dragged task.
type MoveRequest struct {
	TaskID string `json:"task_id" binding:"required,uuid"`
	From   string `json:"from" binding:"required,oneof=assigned in_progress under_review returned completed"`
	To     string `json:"to" binding:"required,oneof=assigned in_progress under_review returned completed"`
}

// Week returns the Monday-aligned week window containing ?start (current
// week when omitted); directors only
func (h *BoardHandler) Week(c *gin.Context) {
	_, role, ok := currentUser(c)
	if !ok {
		return
	}
	if role != model.RoleDirector {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only directors can view the week board"})
		return
	}

	day := time.Now()
	if raw := c.Query("start"); raw != "" {
		parsed, err := time.Parse(schedule.DateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date, expected YYYY-MM-DD"})
			return
		}
		day = parsed
	}
	week := schedule.WeekOf(day)

	users, err := h.userRepo.ListWorkers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	tasks, err := h.taskRepo.ListWindow(c.Request.Context(), week.Start, week.End)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	resp := WeekResponse{
		Start: week.Start.Format(schedule.DateLayout),
		End:   week.End.Format(schedule.DateLayout),
		Users: make([]UserResponse, 0, len(users)),
		Tasks: make([]TaskResponse, 0, len(tasks)),
	}
	for i := range users {
		resp.Users = append(resp.Users, toUserResponse(&users[i]))
	}
	for i := range tasks {
		resp.Tasks = append(resp.Tasks, toTaskResponse(&tasks[i]))
	}

	c.JSON(http.StatusOK, resp)
}

// Kanban returns the caller's tasks grouped into the five status columns
func (h *BoardHandler) Kanban(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	tasks, err := h.taskRepo.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	resp := KanbanResponse{
		Assigned:    []TaskResponse{},
		InProgress:  []TaskResponse{},
		UnderReview: []TaskResponse{},
		Returned:    []TaskResponse{},
		Completed:   []TaskResponse{},
	}
	for i := range tasks {
		card := toTaskResponse(&tasks[i])
		switch tasks[i].Status {
		case model.StatusAssigned:
			resp.Assigned = append(resp.Assigned, card)
		case model.StatusInProgress:
			resp.InProgress = append(resp.InProgress, card)
		case model.StatusUnderReview:
			resp.UnderReview = append(resp.UnderReview, card)
		case model.StatusReturned:
			resp.Returned = append(resp.Returned, card)
		case model.StatusCompleted:
			resp.Completed = append(resp.Completed, card)
		}
	}

	c.JSON(http.StatusOK, resp)
}

// Move resolves a kanban drag through the pair table. Unknown pairs and
// drops onto read-only columns are accepted no-ops; the submit pair is
// answered with requires_input so the client opens the detail panel
// instead.
func (h *BoardHandler) Move(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		return
	}

	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	move := workflow.ResolveMove(req.From, req.To)
	if move.Noop {
		c.JSON(http.StatusOK, gin.H{"noop": true})
		return
	}
	if move.RequiresInput {
		c.JSON(http.StatusOK, gin.H{"action": move.Action, "requires_input": true})
		return
	}

	taskID, err := uuid.Parse(req.TaskID)
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

	// A stale board may drag from a column the task already left.
	if task.Status != req.From {
		c.JSON(http.StatusConflict, gin.H{"error": "Task status changed, reload and retry"})
		return
	}

	actor := workflow.ActorFor(task, userID, role)
	rule, err := workflow.Lookup(task.Status, move.Action, actor)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Action not allowed for this task's current status"})
		return
	}

	fresh, err := h.taskRepo.Transition(c.Request.Context(), taskID, rule.From, rule.To)
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

	c.JSON(http.StatusOK, gin.H{"action": move.Action, "task": toTaskResponse(fresh)})
}
