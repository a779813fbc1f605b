package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"sift/internal/logger"

	"github.com/tidwall/gjson"
)

// ChatClient talks to any OpenAI-compatible chat completion endpoint
// (/v1/chat/completions), e.g. OpenRouter.
type ChatClient struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
	// MaxRetries bounds retries on 429/5xx; 0 means the default of 2.
	MaxRetries   int
	ExtraHeaders map[string]string

	HTTPClient *http.Client
}

func (c *ChatClient) ID() string {
	if c.Model != "" {
		return "openai:" + c.Model
	}
	return "openai"
}

// Complete sends a single user-role prompt and returns the raw text of the
// first choice. The response body is mined with gjson since upstream
// providers disagree on optional fields.
func (c *ChatClient) Complete(ctx context.Context, prompt string) (string, error) {
	timeout := c.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	maxRetries := c.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 2
	}
	url := c.endpoint()

	body := map[string]any{
		"model": c.Model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	httpc := c.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: timeout}
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return "", err
		}
		req.Header.Set("Content-Type", "application/json")
		if c.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.APIKey)
		}
		for k, v := range c.ExtraHeaders {
			req.Header.Set(k, v)
		}

		resp, err := httpc.Do(req)
		if err != nil {
			return "", fmt.Errorf("chat completion request: %w", err)
		}
		raw, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return "", fmt.Errorf("reading chat response: %w", readErr)
		}

		if resp.StatusCode/100 == 2 {
			content := gjson.GetBytes(raw, "choices.0.message.content")
			if !content.Exists() || strings.TrimSpace(content.String()) == "" {
				return "", fmt.Errorf("chat response has no choices")
			}
			return content.String(), nil
		}

		msg := strings.TrimSpace(gjson.GetBytes(raw, "error.message").String())
		if msg == "" {
			msg = resp.Status
		}
		lastErr = fmt.Errorf("chat completion status=%d: %s", resp.StatusCode, msg)
		if !retryableStatus(resp.StatusCode) || attempt == maxRetries {
			break
		}
		wait := retryDelay(resp.Header.Get("Retry-After"), attempt)
		logger.Debugf("[ai] %s retrying in %s: %v", c.ID(), wait, lastErr)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(wait):
		}
	}
	return "", lastErr
}

func (c *ChatClient) endpoint() string {
	url := strings.TrimSpace(c.BaseURL)
	if url == "" {
		url = "https://openrouter.ai/api/v1"
	}
	url = strings.TrimRight(url, "/")
	// Tolerate configs that already carry the full completions path.
	url = strings.TrimSuffix(url, "/chat/completions")
	return url + "/chat/completions"
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

func retryDelay(retryAfter string, attempt int) time.Duration {
	if retryAfter != "" {
		if secs, err := strconv.Atoi(retryAfter); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	wait := 800 * time.Millisecond << attempt
	if wait > 8*time.Second {
		wait = 8 * time.Second
	}
	return wait
}

var _ ModelProvider = (*ChatClient)(nil)
