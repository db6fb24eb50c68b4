package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation is created implicitly on the first message of a new chat
// session and never mutated afterwards.
type Conversation struct {
	ID        string    `json:"id" gorm:"type:varchar(64);primaryKey"`
	UserID    *string   `json:"userId" gorm:"type:varchar(64)"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
