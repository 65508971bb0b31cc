package mocks

import (
	"context"

	"github.com/ianbedrick007/aichatbot/internal/service"
	"github.com/stretchr/testify/mock"
)

type ChatService struct {
	mock.Mock
}

func (m *ChatService) Chat(ctx context.Context, cmd service.ChatCommand) (*service.ChatResponse, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ChatResponse), args.Error(1)
}
