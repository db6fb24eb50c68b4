package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Run states. A run only moves running -> completed or running -> failed
// and is immutable once terminal.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

type ScraperRun struct {
	ID             string     `json:"id" gorm:"type:varchar(64);primaryKey"`
	Status         string     `json:"status" gorm:"type:varchar(20);not null"`
	DocumentsFound *int       `json:"documentsFound"`
	ChunksCreated  *int       `json:"chunksCreated"`
	StartedAt      time.Time  `json:"startedAt" gorm:"not null;index"`
	CompletedAt    *time.Time `json:"completedAt"`
	ErrorMessage   *string    `json:"errorMessage" gorm:"type:text"`
}

func (r *ScraperRun) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
