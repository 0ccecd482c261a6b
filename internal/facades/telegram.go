package facades

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sylesh7/medinnovate/internal/logger"
)

const defaultTelegramBaseURL = "https://api.telegram.org"

// TelegramFacade delivers alert messages over the Telegram Bot API.
// It implements the messaging client interfaces consumed by the alert
// service.
type TelegramFacade struct {
	baseURL string
	token   string
	client  *http.Client
}

// TelegramOpt configures a TelegramFacade.
type TelegramOpt func(*TelegramFacade)

// WithTelegramBaseURL overrides the API base URL (used in tests).
func WithTelegramBaseURL(u string) TelegramOpt {
	return func(f *TelegramFacade) { f.baseURL = u }
}

// WithTelegramHTTPClient overrides the HTTP client.
func WithTelegramHTTPClient(c *http.Client) TelegramOpt {
	return func(f *TelegramFacade) { f.client = c }
}

// NewTelegramFacade creates a facade sending through the given bot token.
func NewTelegramFacade(token string, opts ...TelegramOpt) *TelegramFacade {
	f := &TelegramFacade{
		baseURL: defaultTelegramBaseURL,
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// SendMessage sends a text message to one chat.
func (f *TelegramFacade) SendMessage(ctx context.Context, chatID, text string) error {
	payload := map[string]any{
		"chat_id": chatID,
		"text":    text,
	}
	return f.post(ctx, "sendMessage", payload)
}

// SendLocation sends a live map pin to one chat.
func (f *TelegramFacade) SendLocation(ctx context.Context, chatID string, lat, lon float64) error {
	payload := map[string]any{
		"chat_id":   chatID,
		"latitude":  lat,
		"longitude": lon,
	}
	return f.post(ctx, "sendLocation", payload)
}

func (f *TelegramFacade) post(ctx context.Context, method string, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/bot%s/%s", f.baseURL, f.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := f.client.Do(req)
	if err != nil {
		logger.Log.Errorw("telegram request failed", "method", method, "error", err)
		return err
	}
	defer res.Body.Close()

	var apiResp telegramResponse
	raw, _ := io.ReadAll(res.Body)
	_ = json.Unmarshal(raw, &apiResp)

	if res.StatusCode >= 300 || !apiResp.OK {
		logger.Log.Errorw("telegram send rejected",
			"method", method, "status", res.StatusCode, "description", apiResp.Description)
		if apiResp.Description != "" {
			return fmt.Errorf("telegram %s: %s", method, apiResp.Description)
		}
		return fmt.Errorf("telegram %s: status %d", method, res.StatusCode)
	}

	return nil
}
