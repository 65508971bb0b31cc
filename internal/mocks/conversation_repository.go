package mocks

import (
	"context"

	"github.com/ianbedrick007/aichatbot/internal/model"
	"github.com/stretchr/testify/mock"
)

type ConversationRepository struct {
	mock.Mock
}

func (m *ConversationRepository) GetOrCreate(ctx context.Context, businessID int64, waID, customerName string,
	platform model.Platform) (*model.Conversation, error) {
	args := m.Called(ctx, businessID, waID, customerName, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Conversation), args.Error(1)
}

func (m *ConversationRepository) GetByWaID(ctx context.Context, businessID int64, waID string) (*model.Conversation, error) {
	args := m.Called(ctx, businessID, waID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Conversation), args.Error(1)
}
