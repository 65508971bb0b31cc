package paystack_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ianbedrick007/aichatbot/pkg/paystack"
	"github.com/stretchr/testify/assert"
)

func TestGateway_Initialize(t *testing.T) {
	t.Run("defaults currency and callback", func(t *testing.T) {
		var captured paystack.InitializeRequest

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/transaction/initialize", r.URL.Path)
			assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))

			json.NewDecoder(r.Body).Decode(&captured)

			json.NewEncoder(w).Encode(paystack.InitializeResponse{
				Status: true,
				Data: paystack.InitializeData{
					AuthorizationURL: "https://checkout.paystack.test/abc",
					Reference:        "ref-123",
				},
			})
		}))
		defer server.Close()

		gw := paystack.NewGateway(paystack.Config{
			BaseURL:     server.URL,
			SecretKey:   "sk_test_123",
			CallbackURL: "https://shop.test/callback",
		})

		resp, err := gw.Initialize(context.Background(), paystack.InitializeRequest{
			Email:  "ama@example.com",
			Amount: 1050,
		})

		assert.NoError(t, err)
		assert.Equal(t, "GHS", captured.Currency)
		assert.Equal(t, "https://shop.test/callback", captured.CallbackURL)
		assert.Equal(t, "ref-123", resp.Data.Reference)
		assert.Equal(t, "https://checkout.paystack.test/abc", resp.Data.AuthorizationURL)
	})

	t.Run("non-200 maps to gateway error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		gw := paystack.NewGateway(paystack.Config{BaseURL: server.URL, SecretKey: "bad"})

		_, err := gw.Initialize(context.Background(), paystack.InitializeRequest{Email: "a@b.c", Amount: 100})

		assert.ErrorIs(t, err, paystack.ErrUnauthorized)
	})
}

func TestGateway_Verify(t *testing.T) {
	t.Run("returns transaction details", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/transaction/verify/ref-123", r.URL.Path)

			json.NewEncoder(w).Encode(paystack.VerifyResponse{
				Status: true,
				Data: paystack.VerifyData{
					Status:    "success",
					Reference: "ref-123",
					Amount:    1050,
					Currency:  "GHS",
				},
			})
		}))
		defer server.Close()

		gw := paystack.NewGateway(paystack.Config{BaseURL: server.URL, SecretKey: "sk_test_123"})

		resp, err := gw.Verify(context.Background(), "ref-123")

		assert.NoError(t, err)
		assert.Equal(t, "success", resp.Data.Status)
		assert.Equal(t, int64(1050), resp.Data.Amount)
	})

	t.Run("unknown reference maps to not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		gw := paystack.NewGateway(paystack.Config{BaseURL: server.URL, SecretKey: "sk_test_123"})

		_, err := gw.Verify(context.Background(), "missing")

		assert.ErrorIs(t, err, paystack.ErrTransactionNotFound)
	})
}
