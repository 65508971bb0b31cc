package repository

import (
	"context"

	"github.com/ianbedrick007/aichatbot/internal/model"
	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(ctx context.Context, message *model.Message) error
	ListRecent(ctx context.Context, conversationID int64, limit int) ([]model.Message, error)
	ListAfter(ctx context.Context, afterID int64, limit int) ([]model.Message, error)
	DeleteByConversation(ctx context.Context, conversationID int64) error
}

type Message struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &Message{db: db}
}

func (m *Message) Create(ctx context.Context, message *model.Message) error {
	return GetTx(ctx, m.db).Create(message).Error
}

// ListRecent returns the last limit messages of a conversation in
// chronological order, oldest first.
func (m *Message) ListRecent(ctx context.Context, conversationID int64, limit int) ([]model.Message, error) {
	var messages []model.Message

	err := GetTx(ctx, m.db).
		Where("conversation_id = ?", conversationID).
		Order("id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

// ListAfter returns messages with id strictly greater than afterID in
// ascending id order. The polling endpoint relies on both properties.
func (m *Message) ListAfter(ctx context.Context, afterID int64, limit int) ([]model.Message, error) {
	var messages []model.Message

	err := GetTx(ctx, m.db).
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	return messages, nil
}

func (m *Message) DeleteByConversation(ctx context.Context, conversationID int64) error {
	return GetTx(ctx, m.db).Where("conversation_id = ?", conversationID).Delete(&model.Message{}).Error
}
