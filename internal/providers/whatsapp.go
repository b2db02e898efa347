package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"vessel-alert-service/internal/utils"
)

// WhatsAppClient sends free-text messages through the WhatsApp Cloud API
// (graph.facebook.com-style endpoint, bearer-token auth).
type WhatsAppClient struct {
	apiURL        string
	token         string
	phoneNumberID string
	client        *http.Client
}

func NewWhatsAppClient(apiURL, token, phoneNumberID string) *WhatsAppClient {
	return &WhatsAppClient{
		apiURL:        apiURL,
		token:         token,
		phoneNumberID: phoneNumberID,
		client:        &http.Client{Timeout: 15 * time.Second},
	}
}

type whatsAppText struct {
	Body string `json:"body"`
}

type whatsAppMessage struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             whatsAppText `json:"text"`
}

type whatsAppResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

// Send posts one text message and returns the provider message id. A 429
// response or a transport error comes back as a retryable error; any other
// API rejection is permanent.
func (c *WhatsAppClient) Send(ctx context.Context, to, text string) (string, error) {
	payload, err := json.Marshal(whatsAppMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             whatsAppText{Body: text},
	})
	if err != nil {
		return "", utils.Permanent(fmt.Errorf("failed to encode WhatsApp message: %w", err))
	}

	url := fmt.Sprintf("%s/%s/messages", c.apiURL, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", utils.Permanent(fmt.Errorf("failed to create WhatsApp request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send WhatsApp message to %s: %w", to, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var parsed whatsAppResponse
		if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil || len(parsed.Messages) == 0 {
			// Delivery succeeded, only the message id is missing.
			return "", nil
		}
		return parsed.Messages[0].ID, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", fmt.Errorf("WhatsApp API rate limited (status 429) for %s", to)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", utils.Permanent(fmt.Errorf("WhatsApp API returned status %d for %s: %s", resp.StatusCode, to, body))
	}
}
