package database

import (
	"context"

	"github.com/ianbedrick007/aichatbot/internal/config"
	"github.com/ianbedrick007/aichatbot/internal/model"
	"github.com/ianbedrick007/aichatbot/pkg/mysql"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewConnection(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	db, err := mysql.NewConnection(context.Background(), cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&model.Business{}, &model.Conversation{}, &model.Message{}, &model.Product{})
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return nil, err
	}

	return db, nil
}
