package api

import (
	"github.com/gofiber/fiber/v2"
	v1 "github.com/ianbedrick007/aichatbot/internal/api/v1"
)

const prefixAPI = "/api/"

func SetupRoutes(app *fiber.App, handler *v1.Handler, signature fiber.Handler) {
	app.Get("/ping", handler.Pong)
	app.Get("/webhook", handler.VerifyWebhook)
	app.Post("/webhook", signature, handler.ReceiveWebhook)
	app.Post(prefixAPI+"chat", handler.Chat)
	app.Get(prefixAPI+"live-messages", handler.LiveMessages)
}
