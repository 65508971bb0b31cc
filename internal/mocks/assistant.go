package mocks

import (
	"context"

	"github.com/ianbedrick007/aichatbot/internal/ai"
	"github.com/stretchr/testify/mock"
)

type Assistant struct {
	mock.Mock
}

func (m *Assistant) Respond(ctx context.Context, cmd ai.RespondCommand) (string, error) {
	args := m.Called(ctx, cmd)
	return args.String(0), args.Error(1)
}
