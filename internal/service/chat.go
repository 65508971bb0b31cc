package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ianbedrick007/aichatbot/internal/ai"
	"github.com/ianbedrick007/aichatbot/internal/metrics"
	"github.com/ianbedrick007/aichatbot/internal/model"
	"github.com/ianbedrick007/aichatbot/internal/repository"
	"go.uber.org/zap"
)

const emptyChatResponse = "I didn't catch that."

type ChatService interface {
	Chat(ctx context.Context, cmd ChatCommand) (*ChatResponse, error)
}

// ChatConfig pins the web chat surface to a single business and a fixed
// sender identity; there is no authentication in front of it.
type ChatConfig struct {
	PhoneNumberID string
	Sender        string
	HistoryLimit  int
}

type chat struct {
	cfg           ChatConfig
	businessRepo  repository.BusinessRepository
	conversations ConversationService
	assistant     ai.Assistant
	metrics       *metrics.Metrics
	logger        *zap.Logger
}

func NewChatService(cfg ChatConfig, businessRepo repository.BusinessRepository,
	conversations ConversationService, assistant ai.Assistant,
	m *metrics.Metrics, logger *zap.Logger) ChatService {

	if cfg.Sender == "" {
		cfg.Sender = "user"
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 20
	}

	return &chat{
		cfg:           cfg,
		businessRepo:  businessRepo,
		conversations: conversations,
		assistant:     assistant,
		metrics:       m,
		logger:        logger,
	}
}

func (c *chat) Chat(ctx context.Context, cmd ChatCommand) (*ChatResponse, error) {
	text := strings.TrimSpace(cmd.Message)
	if text == "" {
		return &ChatResponse{Response: emptyChatResponse}, nil
	}

	business, err := c.businessRepo.GetByPhoneNumberID(ctx, c.cfg.PhoneNumberID)
	if err != nil {
		if errors.Is(err, repository.ErrBusinessNotFound) {
			c.logger.Error("Web chat business not configured",
				zap.String("phoneNumberID", c.cfg.PhoneNumberID))
			return nil, NewServiceError(ErrCodeBusinessNotFound, err)
		}

		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	conv, err := c.conversations.Open(ctx, ResolveConversationCommand{
		BusinessID:   business.ID,
		WaID:         c.cfg.Sender,
		CustomerName: c.cfg.Sender,
		Platform:     model.PlatformWeb,
	}, RecordMessageCommand{
		Direction: model.DirectionInbound,
		Sender:    c.cfg.Sender,
		Text:      text,
	})
	if err != nil {
		return nil, err
	}

	response := c.respond(ctx, business, conv, text)

	_, err = c.conversations.Record(ctx, RecordMessageCommand{
		ConversationID: conv.ID,
		Direction:      model.DirectionOutbound,
		Sender:         botSender,
		Text:           response,
		IsBot:          true,
	})
	if err != nil {
		return nil, err
	}

	return &ChatResponse{Response: response}, nil
}

func (c *chat) respond(ctx context.Context, business *model.Business, conv *model.Conversation, text string) string {
	if strings.EqualFold(text, refreshWord) {
		if err := c.conversations.Clear(ctx, conv.ID); err != nil {
			c.logger.Warn("History reset failed", zap.Int64("conversationID", conv.ID), zap.Error(err))
		}
		return ai.HistoryResetResponse
	}

	history, err := c.conversations.History(ctx, conv.ID, c.cfg.HistoryLimit)
	if err != nil {
		history = nil
	}

	start := time.Now()
	response, err := c.assistant.Respond(ctx, ai.RespondCommand{
		BusinessID: business.ID,
		Persona:    business.Persona,
		History:    history,
		Prompt:     text,
	})
	if err != nil {
		c.metrics.RecordAIRequest("error", time.Since(start))
		c.logger.Error("AI response failed",
			zap.Int64("businessID", business.ID),
			zap.Int64("conversationID", conv.ID),
			zap.Error(err))
		return ai.FallbackResponse
	}

	c.metrics.RecordAIRequest("ok", time.Since(start))

	return response
}
