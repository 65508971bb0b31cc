package repository

import (
	"context"

	"github.com/ianbedrick007/aichatbot/internal/model"
	"gorm.io/gorm"
)

type ProductRepository interface {
	ListByBusiness(ctx context.Context, businessID int64) ([]model.Product, error)
}

type Product struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &Product{db: db}
}

func (p *Product) ListByBusiness(ctx context.Context, businessID int64) ([]model.Product, error) {
	var products []model.Product

	err := GetTx(ctx, p.db).
		Where("business_id = ?", businessID).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	return products, nil
}
