package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	defaultBaseURL     = "https://api.paystack.co"
	initializeEndpoint = "/transaction/initialize"
	verifyEndpoint     = "/transaction/verify/"
)

type Gateway interface {
	Initialize(ctx context.Context, request InitializeRequest) (InitializeResponse, error)
	Verify(ctx context.Context, reference string) (VerifyResponse, error)
}

type gateway struct {
	config Config
	client *http.Client
}

func NewGateway(cfg Config) Gateway {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &gateway{config: cfg, client: &http.Client{Timeout: cfg.Timeout}}
}

func (g *gateway) Initialize(ctx context.Context, request InitializeRequest) (InitializeResponse, error) {
	if request.Currency == "" {
		request.Currency = "GHS"
	}
	if request.CallbackURL == "" {
		request.CallbackURL = g.config.CallbackURL
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(request); err != nil {
		return InitializeResponse{}, fmt.Errorf("encoding error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.config.BaseURL+initializeEndpoint, &buf)
	if err != nil {
		return InitializeResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.config.SecretKey)

	resp, err := g.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return InitializeResponse{}, ErrTimeout
		}

		return InitializeResponse{}, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != StatusOK {
		return InitializeResponse{}, MapStatusToError(resp.StatusCode)
	}

	var response InitializeResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return InitializeResponse{}, fmt.Errorf("decoding error: %w", err)
	}

	return response, nil
}

func (g *gateway) Verify(ctx context.Context, reference string) (VerifyResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.config.BaseURL+verifyEndpoint+reference, nil)
	if err != nil {
		return VerifyResponse{}, err
	}
	req.Header.Set("Authorization", "Bearer "+g.config.SecretKey)

	resp, err := g.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return VerifyResponse{}, ErrTimeout
		}

		return VerifyResponse{}, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != StatusOK {
		return VerifyResponse{}, MapStatusToError(resp.StatusCode)
	}

	var response VerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return VerifyResponse{}, fmt.Errorf("decoding error: %w", err)
	}

	return response, nil
}
