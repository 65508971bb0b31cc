package service

import (
	"context"
	"time"

	"github.com/ianbedrick007/aichatbot/internal/ai"
	"github.com/ianbedrick007/aichatbot/internal/model"
	"github.com/ianbedrick007/aichatbot/internal/repository"
	"go.uber.org/zap"
)

const defaultLiveLimit = 100

type ConversationService interface {
	Resolve(ctx context.Context, cmd ResolveConversationCommand) (*model.Conversation, error)
	Open(ctx context.Context, cmd ResolveConversationCommand, inbound RecordMessageCommand) (*model.Conversation, error)
	Record(ctx context.Context, cmd RecordMessageCommand) (*model.Message, error)
	History(ctx context.Context, conversationID int64, limit int) ([]ai.Turn, error)
	Clear(ctx context.Context, conversationID int64) error
	ListLiveMessages(ctx context.Context, query ListLiveMessagesQuery) ([]LiveMessage, error)
}

type conversation struct {
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
	txm              repository.TxManager
	logger           *zap.Logger
}

func NewConversationService(conversationRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository, txm repository.TxManager, logger *zap.Logger) ConversationService {
	return &conversation{conversationRepo: conversationRepo, messageRepo: messageRepo, txm: txm, logger: logger}
}

func (c *conversation) Resolve(ctx context.Context, cmd ResolveConversationCommand) (*model.Conversation, error) {
	conv, err := c.conversationRepo.GetOrCreate(ctx, cmd.BusinessID, cmd.WaID, cmd.CustomerName, cmd.Platform)
	if err != nil {
		c.logger.Error("Failed to resolve conversation",
			zap.Int64("businessID", cmd.BusinessID),
			zap.String("waID", cmd.WaID),
			zap.Error(err))
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	return conv, nil
}

// Open resolves the conversation and persists the inbound message in one
// transaction, so a brand-new conversation never exists without its first
// message.
func (c *conversation) Open(ctx context.Context, cmd ResolveConversationCommand,
	inbound RecordMessageCommand) (*model.Conversation, error) {

	var conv *model.Conversation

	err := c.txm.WithTx(ctx, func(txCtx context.Context) error {
		resolved, err := c.conversationRepo.GetOrCreate(txCtx, cmd.BusinessID, cmd.WaID, cmd.CustomerName, cmd.Platform)
		if err != nil {
			return err
		}

		inbound.ConversationID = resolved.ID
		message := model.Message{
			ConversationID: inbound.ConversationID,
			Direction:      inbound.Direction,
			Sender:         inbound.Sender,
			Text:           inbound.Text,
			MediaID:        inbound.MediaID,
			IsBot:          inbound.IsBot,
			Timestamp:      time.Now(),
		}
		if err := c.messageRepo.Create(txCtx, &message); err != nil {
			return err
		}

		conv = resolved
		return nil
	})
	if err != nil {
		c.logger.Error("Failed to open conversation",
			zap.Int64("businessID", cmd.BusinessID),
			zap.String("waID", cmd.WaID),
			zap.Error(err))
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	return conv, nil
}

func (c *conversation) Record(ctx context.Context, cmd RecordMessageCommand) (*model.Message, error) {
	message := model.Message{
		ConversationID: cmd.ConversationID,
		Direction:      cmd.Direction,
		Sender:         cmd.Sender,
		Text:           cmd.Text,
		MediaID:        cmd.MediaID,
		IsBot:          cmd.IsBot,
		Timestamp:      time.Now(),
	}

	if err := c.messageRepo.Create(ctx, &message); err != nil {
		c.logger.Error("Failed to persist message",
			zap.Int64("conversationID", cmd.ConversationID),
			zap.String("direction", string(cmd.Direction)),
			zap.Error(err))
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	return &message, nil
}

// History returns the bounded window of prior turns, oldest first, in the
// shape the AI forwarder consumes.
func (c *conversation) History(ctx context.Context, conversationID int64, limit int) ([]ai.Turn, error) {
	messages, err := c.messageRepo.ListRecent(ctx, conversationID, limit)
	if err != nil {
		c.logger.Error("Failed to load conversation history",
			zap.Int64("conversationID", conversationID),
			zap.Error(err))
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	turns := make([]ai.Turn, 0, len(messages))
	for _, msg := range messages {
		turns = append(turns, ai.Turn{Text: msg.Text, IsBot: msg.IsBot})
	}

	return turns, nil
}

func (c *conversation) Clear(ctx context.Context, conversationID int64) error {
	if err := c.messageRepo.DeleteByConversation(ctx, conversationID); err != nil {
		c.logger.Error("Failed to clear conversation history",
			zap.Int64("conversationID", conversationID),
			zap.Error(err))
		return NewServiceError(ErrCodeDatabase, err)
	}

	return nil
}

// ListLiveMessages returns messages with id strictly greater than AfterID in
// ascending id order; the polling front end advances its cursor from the
// last id it received.
func (c *conversation) ListLiveMessages(ctx context.Context, query ListLiveMessagesQuery) ([]LiveMessage, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultLiveLimit
	}

	messages, err := c.messageRepo.ListAfter(ctx, query.AfterID, limit)
	if err != nil {
		c.logger.Error("Failed to list live messages",
			zap.Int64("afterID", query.AfterID),
			zap.Error(err))
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	out := make([]LiveMessage, 0, len(messages))
	for _, msg := range messages {
		out = append(out, LiveMessage{
			ID:        msg.ID,
			Text:      msg.Text,
			IsBot:     msg.IsBot,
			Sender:    msg.Sender,
			Timestamp: msg.Timestamp,
		})
	}

	return out, nil
}
