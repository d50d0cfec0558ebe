package model

import (
	"time"

	"github.com/google/uuid"
)

// Task statuses. Status is the single source of truth for which actions
// are legal; no other field is consulted.
const (
	StatusAssigned    = "assigned"
	StatusInProgress  = "in_progress"
	StatusUnderReview = "under_review"
	StatusReturned    = "returned"
	StatusCompleted   = "completed"
)

// Task priorities, display-only.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title       string    `gorm:"not null"`
	Description string
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	DirectorID  uuid.UUID `gorm:"type:uuid;not null;index"`
	StartDate   time.Time `gorm:"type:date;not null;index"`
	DueDate     time.Time `gorm:"type:date;not null;index"`
	Priority    string    `gorm:"not null;default:'normal';check:priority IN ('low', 'normal', 'high')"`
	Status      string    `gorm:"not null;default:'assigned';check:status IN ('assigned', 'in_progress', 'under_review', 'returned', 'completed')"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Owner       User         `gorm:"foreignKey:OwnerID"`
	Director    User         `gorm:"foreignKey:DirectorID"`
	Comments    []Comment    `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	Attachments []Attachment `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}
