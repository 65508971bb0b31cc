package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type WhatsAppClient struct {
	mock.Mock
}

func (m *WhatsAppClient) SendText(ctx context.Context, to string, text string) error {
	args := m.Called(ctx, to, text)
	return args.Error(0)
}

func (m *WhatsAppClient) MediaURL(ctx context.Context, mediaID string) (string, error) {
	args := m.Called(ctx, mediaID)
	return args.String(0), args.Error(1)
}

func (m *WhatsAppClient) DownloadMedia(ctx context.Context, mediaURL string) (string, string, error) {
	args := m.Called(ctx, mediaURL)
	return args.String(0), args.String(1), args.Error(2)
}
