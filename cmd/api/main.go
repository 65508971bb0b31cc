package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/ianbedrick007/aichatbot/internal/ai"
	"github.com/ianbedrick007/aichatbot/internal/api"
	v1 "github.com/ianbedrick007/aichatbot/internal/api/v1"
	"github.com/ianbedrick007/aichatbot/internal/api/v1/middleware"
	apivalidator "github.com/ianbedrick007/aichatbot/internal/api/validator"
	"github.com/ianbedrick007/aichatbot/internal/config"
	"github.com/ianbedrick007/aichatbot/internal/database"
	apierrors "github.com/ianbedrick007/aichatbot/internal/errors"
	"github.com/ianbedrick007/aichatbot/internal/metrics"
	"github.com/ianbedrick007/aichatbot/internal/repository"
	"github.com/ianbedrick007/aichatbot/internal/service"
	"github.com/ianbedrick007/aichatbot/pkg/paystack"
	"github.com/ianbedrick007/aichatbot/pkg/whatsapp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			metrics.NewMetrics,
			database.NewConnection,

			repository.NewBusinessRepository,
			repository.NewConversationRepository,
			repository.NewMessageRepository,
			repository.NewProductRepository,
			repository.NewTransactionManager,
			metrics.NewDBStatsCollector,

			NewWhatsAppClient,
			NewPaymentGateway,
			NewToolset,
			NewAssistant,

			service.NewConversationService,
			NewWebhookService,
			NewChatService,

			NewValidator,
			v1.NewHandler,
			NewFiberApp,
		),
		fx.Invoke(startServer),
	).Run()
}

func NewFiberApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: apierrors.ErrorHandler()})
}

func NewValidator() apivalidator.IXValidator {
	return apivalidator.NewXValidator(validator.New())
}

func NewWhatsAppClient(cfg *config.Config) whatsapp.Client {
	return whatsapp.NewClient(whatsapp.Config{
		AccessToken:   cfg.WhatsApp.AccessToken,
		Version:       cfg.WhatsApp.Version,
		PhoneNumberID: cfg.WhatsApp.PhoneNumberID,
		Timeout:       cfg.WhatsApp.Timeout,
	})
}

func NewPaymentGateway(cfg *config.Config) paystack.Gateway {
	return paystack.NewGateway(paystack.Config{
		SecretKey:   cfg.Paystack.SecretKey,
		CallbackURL: cfg.Paystack.CallbackURL,
	})
}

func NewToolset(cfg *config.Config, products repository.ProductRepository, payments paystack.Gateway) *ai.Registry {
	return ai.NewToolset(products, payments, ai.VaultaConfig{
		BaseURL: cfg.Vaulta.BaseURL,
		APIKey:  cfg.Vaulta.APIKey,
	})
}

func NewAssistant(cfg *config.Config, registry *ai.Registry, m *metrics.Metrics, logger *zap.Logger) ai.Assistant {
	return ai.NewAssistant(ai.Config{
		BaseURL: cfg.AI.BaseURL,
		APIKey:  cfg.AI.APIKey,
		Model:   cfg.AI.Model,
	}, registry, m, logger)
}

func NewWebhookService(cfg *config.Config, businessRepo repository.BusinessRepository,
	conversations service.ConversationService, assistant ai.Assistant, sender whatsapp.Client,
	m *metrics.Metrics, logger *zap.Logger) service.WebhookService {
	return service.NewWebhookService(service.WebhookConfig{
		VerifyToken:  cfg.WhatsApp.VerifyToken,
		HistoryLimit: cfg.Chat.HistoryLimit,
	}, businessRepo, conversations, assistant, sender, m, logger)
}

func NewChatService(cfg *config.Config, businessRepo repository.BusinessRepository,
	conversations service.ConversationService, assistant ai.Assistant,
	m *metrics.Metrics, logger *zap.Logger) service.ChatService {
	return service.NewChatService(service.ChatConfig{
		PhoneNumberID: cfg.Chat.PhoneNumberID,
		Sender:        cfg.Chat.Sender,
		HistoryLimit:  cfg.Chat.HistoryLimit,
	}, businessRepo, conversations, assistant, m, logger)
}

func startServer(app *fiber.App, handler *v1.Handler, cfg *config.Config, m *metrics.Metrics,
	collector *metrics.DBStatsCollector, logger *zap.Logger, lc fx.Lifecycle) {

	app.Use(metrics.HTTPMetricsMiddleware(m, logger))

	signature := middleware.VerifySignature(cfg.WhatsApp.AppSecret, m, logger)
	api.SetupRoutes(app, handler, signature)

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{Addr: cfg.API.MetricsPort, Handler: metricsMux}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			collector.Start(15 * time.Second)

			go func() {
				if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("Metrics server exited", zap.Error(err))
				}
			}()

			go func() {
				if err := app.Listen(cfg.API.Port); err != nil {
					logger.Error("HTTP server exited", zap.Error(err))
				}
			}()

			logger.Info("Server started", zap.String("port", cfg.API.Port))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			collector.Stop()
			metricsServer.Shutdown(ctx)
			return app.ShutdownWithContext(ctx)
		},
	})
}
