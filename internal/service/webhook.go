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
	"github.com/ianbedrick007/aichatbot/pkg/whatsapp"
	"go.uber.org/zap"
)

const (
	botSender     = "bot"
	refreshWord   = "refresh"
	notConfigured = "Sorry, this WhatsApp number is not configured for any business."
)

type WebhookService interface {
	VerifySubscription(cmd VerifySubscriptionCommand) (string, error)
	ProcessEvent(ctx context.Context, payload *whatsapp.Payload) error
}

type WebhookConfig struct {
	VerifyToken  string
	HistoryLimit int
}

type webhook struct {
	cfg           WebhookConfig
	businessRepo  repository.BusinessRepository
	conversations ConversationService
	assistant     ai.Assistant
	sender        whatsapp.Client
	metrics       *metrics.Metrics
	logger        *zap.Logger
}

func NewWebhookService(cfg WebhookConfig, businessRepo repository.BusinessRepository,
	conversations ConversationService, assistant ai.Assistant, sender whatsapp.Client,
	m *metrics.Metrics, logger *zap.Logger) WebhookService {

	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 20
	}

	return &webhook{
		cfg:           cfg,
		businessRepo:  businessRepo,
		conversations: conversations,
		assistant:     assistant,
		sender:        sender,
		metrics:       m,
		logger:        logger,
	}
}

// VerifySubscription handles the provider's GET handshake: echo the
// challenge when mode and token match, fail otherwise.
func (w *webhook) VerifySubscription(cmd VerifySubscriptionCommand) (string, error) {
	if cmd.Mode == "" || cmd.Token == "" {
		w.logger.Info("Webhook verification missing parameters")
		return "", NewServiceError(ErrCodeMissingParameter, errors.New("missing hub.mode or hub.verify_token"))
	}

	if cmd.Mode == "subscribe" && cmd.Token == w.cfg.VerifyToken {
		w.logger.Info("Webhook verified")
		return cmd.Challenge, nil
	}

	w.logger.Info("Webhook verification failed")
	return "", NewServiceError(ErrCodeVerificationFailed, errors.New("verify token mismatch"))
}

// ProcessEvent runs the linear pipeline for one delivered message:
// classify -> (fetch media) -> persist inbound -> AI forward -> persist
// outbound -> reply. Failures past the signature check never surface as
// errors to the provider; it would only redeliver the event.
func (w *webhook) ProcessEvent(ctx context.Context, payload *whatsapp.Payload) error {
	inbound, err := payload.FirstMessage()
	if err != nil {
		return err
	}

	business, err := w.businessRepo.GetByPhoneNumberID(ctx, inbound.PhoneNumberID)
	if err != nil {
		if errors.Is(err, repository.ErrBusinessNotFound) {
			w.logger.Error("No business found for phone number",
				zap.String("phoneNumberID", inbound.PhoneNumberID))
			w.reply(ctx, inbound.WaID, notConfigured)
			return nil
		}

		return NewServiceError(ErrCodeDatabase, err)
	}

	prompt, image, mediaID := w.resolveContent(ctx, inbound)

	conv, err := w.conversations.Open(ctx, ResolveConversationCommand{
		BusinessID:   business.ID,
		WaID:         inbound.WaID,
		CustomerName: inbound.CustomerName,
		Platform:     model.PlatformWhatsApp,
	}, RecordMessageCommand{
		Direction: model.DirectionInbound,
		Sender:    inbound.WaID,
		Text:      prompt,
		MediaID:   mediaID,
	})
	if err != nil {
		return err
	}

	response := w.respond(ctx, business, conv, inbound, prompt, image)

	_, err = w.conversations.Record(ctx, RecordMessageCommand{
		ConversationID: conv.ID,
		Direction:      model.DirectionOutbound,
		Sender:         botSender,
		Text:           response,
		IsBot:          true,
	})
	if err != nil {
		return err
	}

	w.reply(ctx, inbound.WaID, whatsapp.FormatText(response))

	w.metrics.RecordMessageProcessed(kindLabel(inbound.Kind), "ok")

	return nil
}

// resolveContent turns the classified message into the prompt text and, for
// images, the downloaded attachment. A media-fetch failure is absorbed here:
// the prompt becomes the fixed apology text and the pipeline continues
// without an image.
func (w *webhook) resolveContent(ctx context.Context, inbound *whatsapp.Inbound) (string, *ai.Image, *string) {
	switch inbound.Kind {
	case whatsapp.KindText:
		return inbound.Text, nil, nil

	case whatsapp.KindImage:
		prompt := inbound.Caption
		if prompt == "" {
			prompt = ai.DefaultImagePrompt
		}

		image, err := w.fetchMedia(ctx, inbound.MediaID)
		if err != nil {
			w.metrics.MediaFetchFailures.Inc()
			w.logger.Error("Error processing image",
				zap.String("mediaID", inbound.MediaID),
				zap.Error(err))
			return ai.ImageErrorPrompt, nil, &inbound.MediaID
		}

		return prompt, image, &inbound.MediaID

	default:
		return "", nil, nil
	}
}

// fetchMedia resolves the media id to a signed URL, downloads the bytes and
// returns them base64 encoded. Both calls fail fast; no retry.
func (w *webhook) fetchMedia(ctx context.Context, mediaID string) (*ai.Image, error) {
	url, err := w.sender.MediaURL(ctx, mediaID)
	if err != nil {
		return nil, err
	}

	data, mimeType, err := w.sender.DownloadMedia(ctx, url)
	if err != nil {
		return nil, err
	}

	return &ai.Image{Base64: data, MimeType: mimeType}, nil
}

func (w *webhook) respond(ctx context.Context, business *model.Business, conv *model.Conversation,
	inbound *whatsapp.Inbound, prompt string, image *ai.Image) string {

	if inbound.Kind == whatsapp.KindOther {
		return ai.UnsupportedTypeResponse
	}

	if strings.EqualFold(strings.TrimSpace(prompt), refreshWord) {
		if err := w.conversations.Clear(ctx, conv.ID); err != nil {
			w.logger.Warn("History reset failed", zap.Int64("conversationID", conv.ID), zap.Error(err))
		}
		return ai.HistoryResetResponse
	}

	history, err := w.conversations.History(ctx, conv.ID, w.cfg.HistoryLimit)
	if err != nil {
		history = nil
	}

	start := time.Now()
	response, err := w.assistant.Respond(ctx, ai.RespondCommand{
		BusinessID: business.ID,
		Persona:    business.Persona,
		History:    history,
		Prompt:     prompt,
		Image:      image,
	})
	if err != nil {
		w.metrics.RecordAIRequest("error", time.Since(start))
		w.logger.Error("AI response failed",
			zap.Int64("businessID", business.ID),
			zap.Int64("conversationID", conv.ID),
			zap.Error(err))
		return ai.FallbackResponse
	}

	w.metrics.RecordAIRequest("ok", time.Since(start))

	return response
}

// reply posts the outbound text back through the provider. Send failures
// are logged and do not roll anything back.
func (w *webhook) reply(ctx context.Context, to string, text string) {
	if err := w.sender.SendText(ctx, to, text); err != nil {
		w.metrics.ReplySendFailures.Inc()
		w.logger.Error("Failed to send reply",
			zap.String("to", to),
			zap.Error(err))
	}
}

func kindLabel(kind whatsapp.MessageKind) string {
	switch kind {
	case whatsapp.KindText:
		return "text"
	case whatsapp.KindImage:
		return "image"
	default:
		return "other"
	}
}
