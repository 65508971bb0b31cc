package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/ianbedrick007/aichatbot/internal/metrics"
	"github.com/ianbedrick007/aichatbot/internal/service"
	"go.uber.org/zap"
)

const signaturePrefix = "sha256="

// VerifySignature authenticates webhook deliveries with the provider's
// X-Hub-Signature-256 header: HMAC-SHA256 over the raw request body, keyed
// with the app secret. Anything that does not verify is rejected before the
// body is parsed; a missing secret fails closed.
func VerifySignature(appSecret string, m *metrics.Metrics, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("X-Hub-Signature-256")
		if appSecret == "" || !strings.HasPrefix(header, signaturePrefix) {
			m.SignatureFailures.Inc()
			logger.Warn("Webhook signature missing or malformed")
			return service.NewServiceError(service.ErrCodeInvalidSignature, errors.New("signature verification failed"))
		}

		mac := hmac.New(sha256.New, []byte(appSecret))
		mac.Write(c.Body())
		expected := hex.EncodeToString(mac.Sum(nil))

		provided := strings.TrimPrefix(header, signaturePrefix)
		if !hmac.Equal([]byte(expected), []byte(provided)) {
			m.SignatureFailures.Inc()
			logger.Warn("Webhook signature mismatch")
			return service.NewServiceError(service.ErrCodeInvalidSignature, errors.New("signature verification failed"))
		}

		return c.Next()
	}
}
