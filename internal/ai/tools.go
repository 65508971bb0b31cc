package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ianbedrick007/aichatbot/internal/repository"
	"github.com/ianbedrick007/aichatbot/pkg/paystack"
)

const (
	openMeteoURL    = "https://api.open-meteo.com/v1/forecast"
	exchangeRateURL = "https://api.exchangerate-api.com/v4/latest/"
)

// VaultaConfig points the get_rate tool at the Vaulta quoting API.
type VaultaConfig struct {
	BaseURL string
	APIKey  string
}

// NewToolset builds the capability table the assistant declares to the
// model: product lookup, weather, exchange rates, crypto quotes and
// Paystack checkout.
func NewToolset(products repository.ProductRepository, payments paystack.Gateway, vaulta VaultaConfig) *Registry {
	registry := NewRegistry()
	client := &http.Client{Timeout: 10 * time.Second}

	registry.Register(&Tool{
		Name:        "get_products",
		Description: "Get the list of products for the current business",
		Parameters: map[string]any{
			"type":                 "object",
			"properties":           map[string]any{},
			"required":             []string{},
			"additionalProperties": false,
		},
		Handler: func(ctx context.Context, call Call) (any, error) {
			list, err := products.ListByBusiness(ctx, call.BusinessID)
			if err != nil {
				return nil, err
			}

			out := make([]map[string]any, 0, len(list))
			for _, p := range list {
				out = append(out, map[string]any{
					"name":        p.Name,
					"description": p.Description,
					"price":       p.Price,
				})
			}
			return map[string]any{"products": out}, nil
		},
	})

	registry.Register(&Tool{
		Name:        "get_weather",
		Description: "Get the current temperature for a specific geographic location using latitude and longitude",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"latitude":  map[string]any{"type": "number", "description": "Latitude of the location"},
				"longitude": map[string]any{"type": "number", "description": "Longitude of the location"},
			},
			"required":             []string{"latitude", "longitude"},
			"additionalProperties": false,
		},
		Handler: func(ctx context.Context, call Call) (any, error) {
			lat, _ := call.Args["latitude"].(float64)
			lon, _ := call.Args["longitude"].(float64)

			url := fmt.Sprintf("%s?latitude=%f&longitude=%f&current=temperature_2m,wind_speed_10m",
				openMeteoURL, lat, lon)

			var payload struct {
				Current map[string]any `json:"current"`
			}
			if err := getJSON(ctx, client, url, &payload); err != nil {
				return nil, err
			}
			return payload.Current, nil
		},
	})

	registry.Register(&Tool{
		Name:        "get_exchange_rate",
		Description: "Get the exchange rate and metadata for a specific currency pair",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"local_currency":   map[string]any{"type": "string", "description": "The base currency code (e.g., 'USD')"},
				"foreign_currency": map[string]any{"type": "string", "description": "The target currency code (e.g., 'EUR')"},
			},
			"required":             []string{"local_currency", "foreign_currency"},
			"additionalProperties": false,
		},
		Handler: func(ctx context.Context, call Call) (any, error) {
			local, _ := call.Args["local_currency"].(string)
			foreign, _ := call.Args["foreign_currency"].(string)

			var payload struct {
				Date  string             `json:"date"`
				Rates map[string]float64 `json:"rates"`
			}
			if err := getJSON(ctx, client, exchangeRateURL+local, &payload); err != nil {
				return nil, err
			}

			rate, ok := payload.Rates[foreign]
			if !ok {
				return nil, fmt.Errorf("unknown currency %q", foreign)
			}

			return map[string]any{
				"local_currency":   local,
				"foreign_currency": foreign,
				"rate":             rate,
				"date":             payload.Date,
			}, nil
		},
	})

	registry.Register(&Tool{
		Name:        "get_rate",
		Description: "Create a quote for a crypto-fiat pair using the VAULTA API",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"pair":          map[string]any{"type": "string", "description": "The crypto-fiat pair (e.g., 'BTC-GHS')"},
				"side":          map[string]any{"type": "string", "description": "The side of the quote ('buy' or 'sell')"},
				"amount_crypto": map[string]any{"type": "number", "description": "Amount in crypto units"},
				"amount_fiat":   map[string]any{"type": "number", "description": "Amount in fiat units"},
			},
			"required":             []string{"pair", "side", "amount_crypto", "amount_fiat"},
			"additionalProperties": false,
		},
		Handler: func(ctx context.Context, call Call) (any, error) {
			body := map[string]any{
				"pair":          call.Args["pair"],
				"side":          call.Args["side"],
				"amount_crypto": call.Args["amount_crypto"],
				"amount_fiat":   call.Args["amount_fiat"],
			}

			var quote map[string]any
			if err := postJSON(ctx, client, vaulta.BaseURL+"/get_quote", vaulta.APIKey, body, &quote); err != nil {
				return nil, err
			}
			return quote, nil
		},
	})

	registry.Register(&Tool{
		Name:        "initialize_payment",
		Description: "Initialize a Paystack payment transaction. Amount is in major currency units (e.g., 10.50 for GHS 10.50). Returns the authorization URL and transaction reference.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"customer_email": map[string]any{"type": "string", "description": "The customer's actual email address. Ask them for it if not known."},
				"amount":         map[string]any{"type": "number", "description": "Amount in major units (e.g., 10.50 for GHS 10.50)"},
				"currency":       map[string]any{"type": "string", "description": "Currency code (default: GHS)"},
			},
			"required":             []string{"customer_email", "amount"},
			"additionalProperties": false,
		},
		Handler: func(ctx context.Context, call Call) (any, error) {
			email, _ := call.Args["customer_email"].(string)
			amount, _ := call.Args["amount"].(float64)
			currency, _ := call.Args["currency"].(string)

			resp, err := payments.Initialize(ctx, paystack.InitializeRequest{
				Email:    email,
				Amount:   int64(amount * 100),
				Currency: currency,
			})
			if err != nil {
				return nil, err
			}

			return map[string]any{
				"authorization_url": resp.Data.AuthorizationURL,
				"reference":         resp.Data.Reference,
			}, nil
		},
	})

	registry.Register(&Tool{
		Name:        "verify_payment",
		Description: "Verify a Paystack transaction using its reference. Returns transaction status and payment details.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"reference": map[string]any{"type": "string", "description": "The Paystack transaction reference to verify"},
			},
			"required":             []string{"reference"},
			"additionalProperties": false,
		},
		Handler: func(ctx context.Context, call Call) (any, error) {
			reference, _ := call.Args["reference"].(string)

			resp, err := payments.Verify(ctx, reference)
			if err != nil {
				return nil, err
			}

			return map[string]any{
				"status":    resp.Data.Status,
				"reference": resp.Data.Reference,
				"amount":    resp.Data.Amount,
				"currency":  resp.Data.Currency,
				"paid_at":   resp.Data.PaidAt,
			}, nil
		},
	})

	return registry
}

func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func postJSON(ctx context.Context, client *http.Client, url, apiKey string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", apiKey)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
