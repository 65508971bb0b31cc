package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ianbedrick007/aichatbot/internal/ai"
	"github.com/ianbedrick007/aichatbot/internal/mocks"
	"github.com/ianbedrick007/aichatbot/internal/model"
	"github.com/ianbedrick007/aichatbot/internal/repository"
	"github.com/ianbedrick007/aichatbot/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type chatFixture struct {
	businessRepo  *mocks.BusinessRepository
	conversations *mocks.ConversationService
	assistant     *mocks.Assistant
	svc           service.ChatService
}

func newChatFixture() *chatFixture {
	f := &chatFixture{
		businessRepo:  &mocks.BusinessRepository{},
		conversations: &mocks.ConversationService{},
		assistant:     &mocks.Assistant{},
	}

	f.svc = service.NewChatService(service.ChatConfig{
		PhoneNumberID: "15550001111",
		Sender:        "user",
		HistoryLimit:  20,
	}, f.businessRepo, f.conversations, f.assistant, testMetrics, zap.NewNop())

	return f
}

func TestChat_Chat(t *testing.T) {
	business := &model.Business{ID: 1, PhoneNumberID: "15550001111", Persona: "Helpful store clerk"}
	conv := &model.Conversation{ID: 20, BusinessID: 1, WaID: "user", Platform: model.PlatformWeb}

	t.Run("empty message gets fixed response without pipeline", func(t *testing.T) {
		f := newChatFixture()

		resp, err := f.svc.Chat(context.Background(), service.ChatCommand{Message: "   "})

		assert.NoError(t, err)
		assert.Equal(t, "I didn't catch that.", resp.Response)
		f.businessRepo.AssertNotCalled(t, "GetByPhoneNumberID", mock.Anything, mock.Anything)
	})

	t.Run("message round trip", func(t *testing.T) {
		f := newChatFixture()

		f.businessRepo.On("GetByPhoneNumberID", mock.Anything, "15550001111").Return(business, nil)

		f.conversations.On("Open", mock.Anything,
			service.ResolveConversationCommand{
				BusinessID:   1,
				WaID:         "user",
				CustomerName: "user",
				Platform:     model.PlatformWeb,
			},
			mock.MatchedBy(func(cmd service.RecordMessageCommand) bool {
				return cmd.Direction == model.DirectionInbound && cmd.Text == "any deals today?"
			})).Return(conv, nil)

		f.conversations.On("History", mock.Anything, int64(20), 20).Return([]ai.Turn{}, nil)

		f.assistant.On("Respond", mock.Anything, mock.MatchedBy(func(cmd ai.RespondCommand) bool {
			return cmd.BusinessID == 1 && cmd.Prompt == "any deals today?" && cmd.Image == nil
		})).Return("We have a sale on sneakers", nil)

		f.conversations.On("Record", mock.Anything, mock.MatchedBy(func(cmd service.RecordMessageCommand) bool {
			return cmd.Direction == model.DirectionOutbound && cmd.IsBot &&
				cmd.Text == "We have a sale on sneakers"
		})).Return(&model.Message{ID: 30}, nil)

		resp, err := f.svc.Chat(context.Background(), service.ChatCommand{Message: "any deals today?"})

		assert.NoError(t, err)
		assert.Equal(t, "We have a sale on sneakers", resp.Response)
		f.conversations.AssertExpectations(t)
	})

	t.Run("refresh clears history", func(t *testing.T) {
		f := newChatFixture()

		f.businessRepo.On("GetByPhoneNumberID", mock.Anything, "15550001111").Return(business, nil)
		f.conversations.On("Open", mock.Anything, mock.Anything, mock.Anything).Return(conv, nil)
		f.conversations.On("Clear", mock.Anything, int64(20)).Return(nil)
		f.conversations.On("Record", mock.Anything, mock.Anything).Return(&model.Message{ID: 31}, nil)

		resp, err := f.svc.Chat(context.Background(), service.ChatCommand{Message: "refresh"})

		assert.NoError(t, err)
		assert.Equal(t, ai.HistoryResetResponse, resp.Response)
		f.assistant.AssertNotCalled(t, "Respond", mock.Anything, mock.Anything)
	})

	t.Run("assistant failure falls back", func(t *testing.T) {
		f := newChatFixture()

		f.businessRepo.On("GetByPhoneNumberID", mock.Anything, "15550001111").Return(business, nil)
		f.conversations.On("Open", mock.Anything, mock.Anything, mock.Anything).Return(conv, nil)
		f.conversations.On("History", mock.Anything, int64(20), 20).Return([]ai.Turn{}, nil)
		f.assistant.On("Respond", mock.Anything, mock.Anything).Return("", errors.New("upstream down"))
		f.conversations.On("Record", mock.Anything, mock.Anything).Return(&model.Message{ID: 32}, nil)

		resp, err := f.svc.Chat(context.Background(), service.ChatCommand{Message: "hello"})

		assert.NoError(t, err)
		assert.Equal(t, ai.FallbackResponse, resp.Response)
	})

	t.Run("unconfigured business", func(t *testing.T) {
		f := newChatFixture()

		f.businessRepo.On("GetByPhoneNumberID", mock.Anything, "15550001111").
			Return(nil, repository.ErrBusinessNotFound)

		_, err := f.svc.Chat(context.Background(), service.ChatCommand{Message: "hello"})

		var serviceErr service.Error
		assert.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, service.ErrCodeBusinessNotFound, serviceErr.Code)
	})
}
