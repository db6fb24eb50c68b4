package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Provenance tags for assistant messages.
const (
	ModelOpenAI    = "openai"
	ModelOllamaRAG = "ollama-rag"
)

// StringList is stored as a jsonb array; an empty list is stored as NULL.
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if len(s) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringList) Scan(src interface{}) error {
	if src == nil {
		*s = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported source type %T for StringList", src)
	}
}

type Message struct {
	ID             string     `json:"id" gorm:"type:varchar(64);primaryKey"`
	ConversationID string     `json:"conversationId" gorm:"type:varchar(64);not null;index"`
	Role           string     `json:"role" gorm:"type:varchar(20);not null"`
	Content        string     `json:"content" gorm:"type:text;not null"`
	Sources        StringList `json:"sources" gorm:"type:jsonb"`
	ModelUsed      *string    `json:"modelUsed" gorm:"type:varchar(50)"`
	CreatedAt      time.Time  `json:"createdAt" gorm:"not null;index"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
