package dao

import (
	"context"
	"errors"

	"shipdocs/shipdocs/sources/psql/models"

	"gorm.io/gorm"
)

type ConversationDAO struct {
	DB *gorm.DB
}

func NewConversationDAO(db *gorm.DB) *ConversationDAO {
	return &ConversationDAO{DB: db}
}

func (dao *ConversationDAO) CreateConversation(ctx context.Context, userID *string) (*models.Conversation, error) {
	conv := &models.Conversation{UserID: userID}
	if err := dao.DB.WithContext(ctx).Create(conv).Error; err != nil {
		return nil, err
	}
	return conv, nil
}

// GetConversation returns nil without error when the id is unknown.
func (dao *ConversationDAO) GetConversation(ctx context.Context, id string) (*models.Conversation, error) {
	var conv models.Conversation
	err := dao.DB.WithContext(ctx).First(&conv, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (dao *ConversationDAO) GetRecentConversations(ctx context.Context, limit int) ([]models.Conversation, error) {
	if limit <= 0 {
		limit = 10
	}
	var convs []models.Conversation
	err := dao.DB.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&convs).Error
	if err != nil {
		return nil, err
	}
	return convs, nil
}
