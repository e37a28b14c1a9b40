package adapters

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ecodeli/internal/core/httpclient"
	"ecodeli/internal/features/notifications/domain"
	"ecodeli/internal/features/notifications/ports"
)

// Webhook headers.
const (
	HeaderEventID   = "X-EcoDeli-Event-ID"
	HeaderEventType = "X-EcoDeli-Event-Type"
	HeaderSignature = "X-EcoDeli-Signature"
)

const defaultWebhookTimeout = 10 * time.Second

// WebhookSender posts events as signed JSON to a single endpoint.
type WebhookSender struct {
	url    string
	secret string
	client *http.Client
}

// NewWebhookSender creates a WebhookSender using the logging HTTP client.
func NewWebhookSender(url, secret string) *WebhookSender {
	return NewWebhookSenderWithClient(url, secret, httpclient.NewClient(defaultWebhookTimeout))
}

// NewWebhookSenderWithClient creates a WebhookSender with a custom client.
func NewWebhookSenderWithClient(url, secret string, client *http.Client) *WebhookSender {
	return &WebhookSender{url: url, secret: secret, client: client}
}

// Name implements ports.Sender.
func (s *WebhookSender) Name() string { return "webhook" }

// Send implements ports.Sender.
// 2xx succeeds. 429 and 5xx are retryable. Any other status is permanent.
func (s *WebhookSender) Send(ctx context.Context, event domain.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ports.ErrPermanent, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ports.ErrPermanent, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderEventID, event.ID.String())
	req.Header.Set(HeaderEventType, string(event.Type))
	req.Header.Set(HeaderSignature, computeSignature(s.secret, body))

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	default:
		return fmt.Errorf("%w: webhook returned status %d", ports.ErrPermanent, resp.StatusCode)
	}
}

func computeSignature(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature lets receivers check the X-EcoDeli-Signature header.
func VerifySignature(secret string, body []byte, signature string) bool {
	expected := computeSignature(secret, body)
	return hmac.Equal([]byte(expected), []byte(signature))
}
