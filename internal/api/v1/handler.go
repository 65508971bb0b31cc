package v1

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/ianbedrick007/aichatbot/internal/api/validator"
	"github.com/ianbedrick007/aichatbot/internal/constants"
	"github.com/ianbedrick007/aichatbot/internal/metrics"
	"github.com/ianbedrick007/aichatbot/internal/service"
	"github.com/ianbedrick007/aichatbot/pkg/whatsapp"
	"go.uber.org/zap"
)

type Handler struct {
	logger         *zap.Logger
	webhookService service.WebhookService
	chatService    service.ChatService
	conversations  service.ConversationService
	XValidator     validator.IXValidator
	metrics        *metrics.Metrics
}

func NewHandler(logger *zap.Logger, webhookService service.WebhookService, chatService service.ChatService,
	conversations service.ConversationService, XValidator validator.IXValidator, metrics *metrics.Metrics) *Handler {
	return &Handler{
		logger:         logger,
		webhookService: webhookService,
		chatService:    chatService,
		conversations:  conversations,
		XValidator:     XValidator,
		metrics:        metrics,
	}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

// VerifyWebhook answers the provider's subscription handshake. The
// challenge is echoed back as plain text, not JSON.
func (h *Handler) VerifyWebhook(c *fiber.Ctx) error {
	challenge, err := h.webhookService.VerifySubscription(service.VerifySubscriptionCommand{
		Mode:      c.Query("hub.mode"),
		Token:     c.Query("hub.verify_token"),
		Challenge: c.Query("hub.challenge"),
	})
	if err != nil {
		return err
	}

	return c.SendString(challenge)
}

func (h *Handler) ReceiveWebhook(c *fiber.Ctx) error {
	start := time.Now()

	var payload whatsapp.Payload
	if err := c.BodyParser(&payload); err != nil {
		h.logger.Error("Failed to decode webhook body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(StatusResponse{
			Status:  "error",
			Message: "Invalid JSON provided",
		})
	}

	if payload.IsStatusUpdate() {
		h.metrics.RecordWebhookEvent("status")
		return c.JSON(StatusResponse{Status: "ok"})
	}

	if !payload.IsValidMessage() {
		h.metrics.RecordWebhookEvent("invalid")
		return c.Status(fiber.StatusNotFound).JSON(StatusResponse{
			Status:  "error",
			Message: "Not a WhatsApp API event",
		})
	}

	h.metrics.RecordWebhookEvent("message")

	if err := h.webhookService.ProcessEvent(c.UserContext(), &payload); err != nil {
		if errors.Is(err, whatsapp.ErrNotAMessage) {
			return c.Status(fiber.StatusNotFound).JSON(StatusResponse{
				Status:  "error",
				Message: "Not a WhatsApp API event",
			})
		}

		return err
	}

	h.logger.Info("Webhook event processed", zap.Duration("duration", time.Since(start)))

	return c.JSON(StatusResponse{Status: "ok"})
}

func (h *Handler) Chat(c *fiber.Ctx) error {
	var handlerRequest ChatRequest

	responseError := h.XValidator.Validator(&handlerRequest, constants.MessageErrorFormat, c)
	if responseError.Code != "" {
		h.logger.Error("Error Validator", zap.Any("request", handlerRequest))
		responseError.Code = constants.ErrCodeInvalidRequestBody
		return c.JSON(responseError)
	}

	response, err := h.chatService.Chat(c.UserContext(), service.ChatCommand{Message: handlerRequest.Message})
	if err != nil {
		return err
	}

	return c.JSON(response)
}

func (h *Handler) LiveMessages(c *fiber.Ctx) error {
	afterID := int64(0)
	if raw := c.Query("after_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			return service.NewServiceError(service.ErrCodeMissingParameter,
				errors.New("after_id must be a non-negative integer"))
		}
		afterID = parsed
	}

	messages, err := h.conversations.ListLiveMessages(c.UserContext(), service.ListLiveMessagesQuery{AfterID: afterID})
	if err != nil {
		return err
	}

	return c.JSON(LiveMessagesResponse{Messages: messages})
}
