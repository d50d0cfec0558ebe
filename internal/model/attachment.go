package model

import (
	"time"

	"github.com/google/uuid"
)

// Attachment belongs to exactly one task and optionally to the comment
// that introduced it. ObjectName is the name in the file store; download
// and inline URLs are derived from the ID at render time.
type Attachment struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TaskID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	CommentID  *uuid.UUID `gorm:"type:uuid;index"`
	Filename   string     `gorm:"not null"`
	ObjectName string     `gorm:"not null"`
	CreatedAt  time.Time  `gorm:"autoCreateTime"`
}
