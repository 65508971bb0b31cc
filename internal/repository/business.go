package repository

import (
	"context"
	"errors"

	"github.com/ianbedrick007/aichatbot/internal/model"
	"gorm.io/gorm"
)

var ErrBusinessNotFound = errors.New("BUSINESS_NOT_FOUND")

type BusinessRepository interface {
	GetByPhoneNumberID(ctx context.Context, phoneNumberID string) (*model.Business, error)
}

type Business struct {
	db *gorm.DB
}

func NewBusinessRepository(db *gorm.DB) BusinessRepository {
	return &Business{db: db}
}

func (b *Business) GetByPhoneNumberID(ctx context.Context, phoneNumberID string) (*model.Business, error) {
	var business model.Business

	err := GetTx(ctx, b.db).Where("phone_number_id = ?", phoneNumberID).First(&business).Error
	if err == nil {
		return &business, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBusinessNotFound
	}

	return nil, err
}
