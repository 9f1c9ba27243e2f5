package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultTelegramAPI = "https://api.telegram.org"
	defaultTimeout     = 10 * time.Second
)

// Telegram posts HTML messages to a chat via the Bot API.
type Telegram struct {
	apiURL   string
	botToken string
	chatID   string
	client   *http.Client
}

var _ Sender = (*Telegram)(nil)

func NewTelegram(botToken, chatID string) *Telegram {
	return &Telegram{
		apiURL:   DefaultTelegramAPI,
		botToken: botToken,
		chatID:   chatID,
		client:   &http.Client{Timeout: defaultTimeout},
	}
}

// WithAPIURL points the sender at another Bot API endpoint
func (t *Telegram) WithAPIURL(apiURL string) *Telegram {
	t.apiURL = strings.TrimRight(apiURL, "/")
	return t
}

type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (t *Telegram) Send(ctx context.Context, message string) error {
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.apiURL, t.botToken)

	form := url.Values{}
	form.Set("chat_id", t.chatID)
	form.Set("text", message)
	form.Set("parse_mode", "HTML")
	form.Set("disable_web_page_preview", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var result telegramResponse
	if err := json.Unmarshal(body, &result); err != nil && resp.StatusCode == http.StatusOK {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || !result.OK {
		if result.Description != "" {
			return fmt.Errorf("telegram error: %s: %s", resp.Status, result.Description)
		}
		return fmt.Errorf("telegram error: %s", resp.Status)
	}

	return nil
}
