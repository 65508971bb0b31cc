package mocks

import (
	"context"

	"github.com/ianbedrick007/aichatbot/pkg/paystack"
	"github.com/stretchr/testify/mock"
)

type PaymentGateway struct {
	mock.Mock
}

func (m *PaymentGateway) Initialize(ctx context.Context, request paystack.InitializeRequest) (paystack.InitializeResponse, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(paystack.InitializeResponse), args.Error(1)
}

func (m *PaymentGateway) Verify(ctx context.Context, reference string) (paystack.VerifyResponse, error) {
	args := m.Called(ctx, reference)
	return args.Get(0).(paystack.VerifyResponse), args.Error(1)
}
