package mocks

import (
	"context"

	"github.com/ianbedrick007/aichatbot/internal/model"
	"github.com/stretchr/testify/mock"
)

type BusinessRepository struct {
	mock.Mock
}

func (m *BusinessRepository) GetByPhoneNumberID(ctx context.Context, phoneNumberID string) (*model.Business, error) {
	args := m.Called(ctx, phoneNumberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Business), args.Error(1)
}
