package mocks

import (
	"context"

	"github.com/ianbedrick007/aichatbot/internal/model"
	"github.com/stretchr/testify/mock"
)

type ProductRepository struct {
	mock.Mock
}

func (m *ProductRepository) ListByBusiness(ctx context.Context, businessID int64) ([]model.Product, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}
