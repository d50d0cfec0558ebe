package model

import (
	"time"

	"github.com/google/uuid"
)

// User roles. Directors assign, review and delete tasks; workers perform
// and submit them.
const (
	RoleDirector = "director"
	RoleWorker   = "worker"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Email          string    `gorm:"uniqueIndex;not null"`
	HashedPassword string    `gorm:"not null"`
	Name           string    `gorm:"not null"`
	Role           string    `gorm:"not null;default:'worker';check:role IN ('director', 'worker')"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}
