package model

import (
	"time"

	"github.com/google/uuid"
)

// Comment is append-only: created as a side effect of submit (owner),
// deny (director) or a week-board reschedule note; never edited or deleted
// on its own.
type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TaskID    uuid.UUID `gorm:"type:uuid;not null;index"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null"`
	Text      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Author      User         `gorm:"foreignKey:AuthorID"`
	Attachments []Attachment `gorm:"foreignKey:CommentID"`
}
