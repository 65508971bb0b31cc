package v1_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/ianbedrick007/aichatbot/internal/api"
	v1 "github.com/ianbedrick007/aichatbot/internal/api/v1"
	apivalidator "github.com/ianbedrick007/aichatbot/internal/api/validator"
	apierrors "github.com/ianbedrick007/aichatbot/internal/errors"
	"github.com/ianbedrick007/aichatbot/internal/metrics"
	"github.com/ianbedrick007/aichatbot/internal/mocks"
	"github.com/ianbedrick007/aichatbot/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

var testMetrics = metrics.NewMetrics()

type handlerFixture struct {
	webhookService *mocks.WebhookService
	chatService    *mocks.ChatService
	conversations  *mocks.ConversationService
	app            *fiber.App
}

func newHandlerFixture() *handlerFixture {
	f := &handlerFixture{
		webhookService: &mocks.WebhookService{},
		chatService:    &mocks.ChatService{},
		conversations:  &mocks.ConversationService{},
	}

	handler := v1.NewHandler(zap.NewNop(), f.webhookService, f.chatService, f.conversations,
		apivalidator.NewXValidator(validator.New()), testMetrics)

	f.app = fiber.New(fiber.Config{ErrorHandler: apierrors.ErrorHandler()})
	passThrough := func(c *fiber.Ctx) error { return c.Next() }
	api.SetupRoutes(f.app, handler, passThrough)

	return f
}

func TestHandler_VerifyWebhook(t *testing.T) {
	t.Run("echoes challenge", func(t *testing.T) {
		f := newHandlerFixture()

		f.webhookService.On("VerifySubscription", service.VerifySubscriptionCommand{
			Mode:      "subscribe",
			Token:     "verify-123",
			Challenge: "challenge-42",
		}).Return("challenge-42", nil)

		req := httptest.NewRequest(http.MethodGet,
			"/webhook?hub.mode=subscribe&hub.verify_token=verify-123&hub.challenge=challenge-42", nil)

		resp, err := f.app.Test(req)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "challenge-42", string(body))
	})

	t.Run("missing parameters yields 400", func(t *testing.T) {
		f := newHandlerFixture()

		f.webhookService.On("VerifySubscription", mock.Anything).
			Return("", service.NewServiceError(service.ErrCodeMissingParameter, errors.New("missing")))

		resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/webhook", nil))

		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("token mismatch yields 403", func(t *testing.T) {
		f := newHandlerFixture()

		f.webhookService.On("VerifySubscription", mock.Anything).
			Return("", service.NewServiceError(service.ErrCodeVerificationFailed, errors.New("mismatch")))

		req := httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=wrong", nil)

		resp, err := f.app.Test(req)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestHandler_ReceiveWebhook(t *testing.T) {
	messageBody := `{"object":"whatsapp_business_account","entry":[{"changes":[{"value":{
		"metadata":{"phone_number_id":"15550001111"},
		"contacts":[{"wa_id":"233200000001","profile":{"name":"Ama"}}],
		"messages":[{"from":"233200000001","type":"text","text":{"body":"hello"}}]}}]}]}`

	post := func(app *fiber.App, body string) (*http.Response, error) {
		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return app.Test(req)
	}

	t.Run("message event is processed", func(t *testing.T) {
		f := newHandlerFixture()

		f.webhookService.On("ProcessEvent", mock.Anything, mock.Anything).Return(nil)

		resp, err := post(f.app, messageBody)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		f.webhookService.AssertExpectations(t)
	})

	t.Run("status update is acknowledged without processing", func(t *testing.T) {
		f := newHandlerFixture()

		statusBody := `{"object":"whatsapp_business_account","entry":[{"changes":[{"value":{
			"statuses":[{"id":"wamid.1","status":"delivered"}]}}]}]}`

		resp, err := post(f.app, statusBody)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		f.webhookService.AssertNotCalled(t, "ProcessEvent", mock.Anything, mock.Anything)
	})

	t.Run("malformed JSON yields 400", func(t *testing.T) {
		f := newHandlerFixture()

		resp, err := post(f.app, `{not json`)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("non-message event yields 404", func(t *testing.T) {
		f := newHandlerFixture()

		resp, err := post(f.app, `{"object":"whatsapp_business_account","entry":[]}`)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("pipeline failure maps through error handler", func(t *testing.T) {
		f := newHandlerFixture()

		f.webhookService.On("ProcessEvent", mock.Anything, mock.Anything).
			Return(service.NewServiceError(service.ErrCodeDatabase, errors.New("down")))

		resp, err := post(f.app, messageBody)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestHandler_Chat(t *testing.T) {
	t.Run("returns assistant response", func(t *testing.T) {
		f := newHandlerFixture()

		f.chatService.On("Chat", mock.Anything, service.ChatCommand{Message: "hello"}).
			Return(&service.ChatResponse{Response: "hi there"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hello"}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := f.app.Test(req)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "hi there", body["response"])
	})

	t.Run("explicit empty message reaches the service", func(t *testing.T) {
		f := newHandlerFixture()

		f.chatService.On("Chat", mock.Anything, service.ChatCommand{Message: ""}).
			Return(&service.ChatResponse{Response: "I didn't catch that."}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":""}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := f.app.Test(req)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "I didn't catch that.", body["response"])
	})

	t.Run("missing message field reaches the service", func(t *testing.T) {
		f := newHandlerFixture()

		f.chatService.On("Chat", mock.Anything, service.ChatCommand{Message: ""}).
			Return(&service.ChatResponse{Response: "I didn't catch that."}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := f.app.Test(req)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		f.chatService.AssertExpectations(t)
	})
}

func TestHandler_LiveMessages(t *testing.T) {
	t.Run("passes cursor and returns messages", func(t *testing.T) {
		f := newHandlerFixture()

		ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		f.conversations.On("ListLiveMessages", mock.Anything, service.ListLiveMessagesQuery{AfterID: 5}).
			Return([]service.LiveMessage{{ID: 6, Text: "new", IsBot: true, Sender: "bot", Timestamp: ts}}, nil)

		resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/api/live-messages?after_id=5", nil))

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body v1.LiveMessagesResponse
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Len(t, body.Messages, 1)
		assert.Equal(t, int64(6), body.Messages[0].ID)
	})

	t.Run("missing cursor defaults to zero", func(t *testing.T) {
		f := newHandlerFixture()

		f.conversations.On("ListLiveMessages", mock.Anything, service.ListLiveMessagesQuery{AfterID: 0}).
			Return([]service.LiveMessage{}, nil)

		resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/api/live-messages", nil))

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("non-numeric cursor yields 400", func(t *testing.T) {
		f := newHandlerFixture()

		resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/api/live-messages?after_id=abc", nil))

		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		f.conversations.AssertNotCalled(t, "ListLiveMessages", mock.Anything, mock.Anything)
	})
}
