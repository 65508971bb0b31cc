package whatsapp

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://graph.facebook.com"

// Client talks to the WhatsApp Business (Graph) API: send-message, media id
// resolution and media download, all bearer-token authenticated.
type Client interface {
	SendText(ctx context.Context, to string, text string) error
	MediaURL(ctx context.Context, mediaID string) (string, error)
	DownloadMedia(ctx context.Context, mediaURL string) (data string, mimeType string, err error)
}

type Config struct {
	BaseURL       string        `mapstructure:"base_url"`
	AccessToken   string        `mapstructure:"access_token"`
	Version       string        `mapstructure:"version"`
	PhoneNumberID string        `mapstructure:"phone_number_id"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

type GraphClient struct {
	cfg    Config
	client *http.Client
}

func NewClient(cfg Config) Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &GraphClient{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}
}

type sendTextRequest struct {
	MessagingProduct string   `json:"messaging_product"`
	RecipientType    string   `json:"recipient_type"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             textBody `json:"text"`
}

type textBody struct {
	PreviewURL bool   `json:"preview_url"`
	Body       string `json:"body"`
}

func (g *GraphClient) SendText(ctx context.Context, to string, text string) error {
	url := fmt.Sprintf("%s/%s/%s/messages", g.cfg.BaseURL, g.cfg.Version, g.cfg.PhoneNumberID)

	payload := sendTextRequest{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               to,
		Type:             "text",
		Text:             textBody{PreviewURL: false, Body: text},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.cfg.AccessToken)

	resp, err := g.client.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return classifyStatus(resp.StatusCode)
	}

	return nil
}

type mediaURLResponse struct {
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
	ID       string `json:"id"`
}

func (g *GraphClient) MediaURL(ctx context.Context, mediaID string) (string, error) {
	url := fmt.Sprintf("%s/%s/%s", g.cfg.BaseURL, g.cfg.Version, mediaID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.cfg.AccessToken)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", classifyStatus(resp.StatusCode)
	}

	var res mediaURLResponse
	if err = json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", errors.New(ErrorCodeServerError)
	}

	if res.URL == "" {
		return "", errors.New(ErrorCodeServerError)
	}

	return res.URL, nil
}

// DownloadMedia fetches the signed media URL and returns the bytes encoded
// as base64 along with the response content type. Non-2xx fails fast; the
// dispatcher handles the error, there is no retry here.
func (g *GraphClient) DownloadMedia(ctx context.Context, mediaURL string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.cfg.AccessToken)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", "", classifyStatus(resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", errors.New(ErrorCodeNetworkError)
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	return base64.StdEncoding.EncodeToString(raw), mimeType, nil
}

func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errors.New(ErrorCodeTimeout)
	}
	return errors.New(ErrorCodeNetworkError)
}

func classifyStatus(status int) error {
	switch {
	case status == 401 || status == 403:
		return errors.New(ErrorCodeUnauthorized)
	case status == 400 || status == 404:
		return errors.New(ErrorCodeBadRequest)
	default:
		return errors.New(ErrorCodeServerError)
	}
}
