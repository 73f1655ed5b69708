package services

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// CRMClient forwards new leads to an external CRM webhook
type CRMClient struct {
	URL        string
	Secret     string
	HTTPClient *http.Client
	Now        func() time.Time
}

// CRMLead is the JSON document posted to the webhook
type CRMLead struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewCRMClient(webhookURL, secret string, opts ...func(*CRMClient)) *CRMClient {
	c := &CRMClient{
		URL:        webhookURL,
		Secret:     secret,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithCRMHTTPClient(hc *http.Client) func(*CRMClient) {
	return func(c *CRMClient) {
		if hc != nil {
			c.HTTPClient = hc
		}
	}
}

// SendLead posts the lead once. Any non-2xx response is an error.
func (c *CRMClient) SendLead(ctx context.Context, lead CRMLead) error {
	if c == nil {
		return errors.New("crm client is nil")
	}
	if strings.TrimSpace(c.URL) == "" {
		return errors.New("crm webhook url is not set")
	}

	body, err := json.Marshal(lead)
	if err != nil {
		return fmt.Errorf("failed to encode lead: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Secret != "" {
		ts := fmt.Sprintf("%d", c.Now().Unix())
		req.Header.Set("X-Webhook-Timestamp", ts)
		req.Header.Set("X-Webhook-Signature", SignWebhook(c.Secret, ts, body))
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("crm webhook non-2xx: %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// SignWebhook returns hex(HMAC-SHA256(secret, timestamp + "." + body))
func SignWebhook(secret, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
