package mocks

import (
	"context"

	"github.com/ianbedrick007/aichatbot/internal/ai"
	"github.com/ianbedrick007/aichatbot/internal/model"
	"github.com/ianbedrick007/aichatbot/internal/service"
	"github.com/stretchr/testify/mock"
)

type ConversationService struct {
	mock.Mock
}

func (m *ConversationService) Resolve(ctx context.Context, cmd service.ResolveConversationCommand) (*model.Conversation, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Conversation), args.Error(1)
}

func (m *ConversationService) Open(ctx context.Context, cmd service.ResolveConversationCommand,
	inbound service.RecordMessageCommand) (*model.Conversation, error) {
	args := m.Called(ctx, cmd, inbound)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Conversation), args.Error(1)
}

func (m *ConversationService) Record(ctx context.Context, cmd service.RecordMessageCommand) (*model.Message, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Message), args.Error(1)
}

func (m *ConversationService) History(ctx context.Context, conversationID int64, limit int) ([]ai.Turn, error) {
	args := m.Called(ctx, conversationID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ai.Turn), args.Error(1)
}

func (m *ConversationService) Clear(ctx context.Context, conversationID int64) error {
	args := m.Called(ctx, conversationID)
	return args.Error(0)
}

func (m *ConversationService) ListLiveMessages(ctx context.Context, query service.ListLiveMessagesQuery) ([]service.LiveMessage, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.LiveMessage), args.Error(1)
}
