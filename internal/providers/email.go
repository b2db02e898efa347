package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"vessel-alert-service/internal/utils"
)

// EmailClient sends alert emails through a Resend-style HTTP API.
type EmailClient struct {
	apiURL string
	apiKey string
	from   string
	client *http.Client
}

func NewEmailClient(apiURL, apiKey, from string) *EmailClient {
	return &EmailClient{
		apiURL: apiURL,
		apiKey: apiKey,
		from:   from,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type emailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send posts one email. A 429 response or a transport error comes back as a
// retryable error; any other API rejection is permanent.
func (c *EmailClient) Send(ctx context.Context, to, subject, html string) error {
	if !strings.Contains(to, "@") {
		return utils.Permanent(fmt.Errorf("invalid email address: %s", to))
	}

	payload, err := json.Marshal(emailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return utils.Permanent(fmt.Errorf("failed to encode email request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return utils.Permanent(fmt.Errorf("failed to create email request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("email API rate limited (status 429) for %s", to)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return utils.Permanent(fmt.Errorf("email API returned status %d for %s: %s", resp.StatusCode, to, body))
	}
}
