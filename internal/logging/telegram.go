package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/chsmth/shopify-price-manager-cli/internal/config"
)

// Notifier pushes batch summaries to a Telegram chat. It is optional:
// NewNotifier returns nil when credentials are absent, and a nil Notifier
// is safe to call.
type Notifier struct {
	creds      config.TelegramBotConfig
	httpClient *http.Client
}

type telegramRequest struct {
	ChatId string `json:"chat_id"`
	Text   string `json:"text"`
}

func NewNotifier(creds config.TelegramBotConfig) *Notifier {
	if creds.ChatId == "" || creds.Token == "" {
		return nil
	}
	return &Notifier{
		creds:      creds,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Notify sends a message best-effort; delivery failures only warn.
func (n *Notifier) Notify(logger LoggerService, message string) {
	if n == nil || strings.TrimSpace(message) == "" {
		return
	}
	if err := n.sendRequest(message); err != nil && logger != nil {
		logger.LogWarning(fmt.Sprintf("telegram notify failed: %v", err))
	}
}

func (n *Notifier) sendRequest(value string) error {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", n.creds.Token)

	reqBody := telegramRequest{
		ChatId: n.creds.ChatId,
		Text:   value,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	resp, err := n.httpClient.Post(url, "application/json", bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telegram send failed: %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	return nil
}
