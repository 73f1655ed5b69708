package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrTurnstileFailed is returned when a lead form fails the bot check
var ErrTurnstileFailed = errors.New("turnstile verification failed")

const turnstileVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// turnstileResult is the siteverify response body
type turnstileResult struct {
	Success    bool     `json:"success"`
	Hostname   string   `json:"hostname"`
	ErrorCodes []string `json:"error-codes"`
}

// TurnstileVerifier checks lead form challenge tokens with Cloudflare.
// A nil verifier accepts every request.
type TurnstileVerifier struct {
	secret   string
	hostname string
	endpoint string
	client   *http.Client
}

// NewTurnstileVerifier returns nil when no secret is configured. When appURL
// has a host, tokens solved on any other host are rejected.
func NewTurnstileVerifier(secret, appURL string) *TurnstileVerifier {
	if secret == "" {
		return nil
	}
	v := &TurnstileVerifier{
		secret:   secret,
		endpoint: turnstileVerifyURL,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
	if u, err := url.Parse(appURL); err == nil && u.Hostname() != "localhost" {
		v.hostname = u.Hostname()
	}
	return v
}

// Verify reports ErrTurnstileFailed for a missing, rejected or foreign token
func (v *TurnstileVerifier) Verify(ctx context.Context, token, remoteIP string) error {
	if v == nil {
		return nil
	}
	if token == "" {
		return fmt.Errorf("%w: missing token", ErrTurnstileFailed)
	}

	form := url.Values{
		"secret":   {v.secret},
		"response": {token},
	}
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build turnstile request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTurnstileFailed, err)
	}
	defer resp.Body.Close()

	var result turnstileResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrTurnstileFailed, err)
	}
	if !result.Success {
		return fmt.Errorf("%w, error codes: %v", ErrTurnstileFailed, result.ErrorCodes)
	}
	if v.hostname != "" && result.Hostname != "" && !strings.EqualFold(result.Hostname, v.hostname) {
		return fmt.Errorf("%w: token solved on %s", ErrTurnstileFailed, result.Hostname)
	}
	return nil
}
