package repository

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/ianbedrick007/aichatbot/internal/model"
	"gorm.io/gorm"
)

var ErrConversationNotFound = errors.New("CONVERSATION_NOT_FOUND")

type ConversationRepository interface {
	GetOrCreate(ctx context.Context, businessID int64, waID, customerName string, platform model.Platform) (*model.Conversation, error)
	GetByWaID(ctx context.Context, businessID int64, waID string) (*model.Conversation, error)
}

type Conversation struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &Conversation{db: db}
}

func (c *Conversation) GetOrCreate(ctx context.Context, businessID int64, waID, customerName string,
	platform model.Platform) (*model.Conversation, error) {

	db := GetTx(ctx, c.db)

	conversation, err := c.GetByWaID(ctx, businessID, waID)
	if err == nil {
		return conversation, nil
	}

	if !errors.Is(err, ErrConversationNotFound) {
		return nil, err
	}

	created := model.Conversation{
		BusinessID:   businessID,
		WaID:         waID,
		CustomerName: customerName,
		Platform:     platform,
		CreatedAt:    time.Now(),
	}

	err = db.Create(&created).Error
	if err == nil {
		return &created, nil
	}

	// Concurrent first message from the same contact: the unique index on
	// (business_id, wa_id) loses the race, so re-read the winner's row.
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return c.GetByWaID(ctx, businessID, waID)
	}

	return nil, err
}

func (c *Conversation) GetByWaID(ctx context.Context, businessID int64, waID string) (*model.Conversation, error) {
	var conversation model.Conversation

	err := GetTx(ctx, c.db).Where("business_id = ? AND wa_id = ?", businessID, waID).First(&conversation).Error
	if err == nil {
		return &conversation, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConversationNotFound
	}

	return nil, err
}
