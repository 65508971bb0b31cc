package mocks

import (
	"context"

	"github.com/ianbedrick007/aichatbot/internal/service"
	"github.com/ianbedrick007/aichatbot/pkg/whatsapp"
	"github.com/stretchr/testify/mock"
)

type WebhookService struct {
	mock.Mock
}

func (m *WebhookService) VerifySubscription(cmd service.VerifySubscriptionCommand) (string, error) {
	args := m.Called(cmd)
	return args.String(0), args.Error(1)
}

func (m *WebhookService) ProcessEvent(ctx context.Context, payload *whatsapp.Payload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
