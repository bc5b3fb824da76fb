package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ackMarker is the positive-acknowledgement marker in a Telegram response.
// Its absence is a delivery failure regardless of the HTTP status.
const ackMarker = `"ok":true`

const defaultAPIBase = "https://api.telegram.org"

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 64 << 10

// TelegramSender delivers messages through the Telegram bot API.
type TelegramSender struct {
	client *http.Client
	base   string
	token  string
	chatID string
}

// NewTelegramSender creates a sender for the given bot token and chat.
func NewTelegramSender(token, chatID string) (*TelegramSender, error) {
	if token == "" || chatID == "" {
		return nil, fmt.Errorf("%w: telegram token and chat id are required", ErrInvalidArguments)
	}
	return &TelegramSender{
		client: &http.Client{Timeout: 30 * time.Second},
		base:   defaultAPIBase,
		token:  token,
		chatID: chatID,
	}, nil
}

// Send performs one sendMessage POST carrying the text as form data.
// Success requires the ack marker in the response body; transport errors
// and unacknowledged responses are uniformly failures.
func (t *TelegramSender) Send(ctx context.Context, text string) error {
	form := url.Values{
		"chat_id": {t.chatID},
		"text":    {text},
	}
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.base, t.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequest, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrResponse, err)
	}

	if !strings.Contains(string(body), ackMarker) {
		return fmt.Errorf("%w: status %d: %s", ErrResponse, resp.StatusCode, firstLine(string(body)))
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
