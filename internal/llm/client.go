// Package llm implements the Anthropic messages API client used by the agent.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/aigenda/aigenda/internal/config"
	apperrors "github.com/aigenda/aigenda/internal/errors"
	"github.com/aigenda/aigenda/internal/metrics"
)

const apiVersion = "2023-06-01"

// Client talks to the messages endpoint with rate limiting and a circuit
// breaker in front of the HTTP call.
type Client struct {
	cfg     config.LLMConfig
	client  *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[string]
}

// NewClient creates a client from configuration. The API key must be set.
func NewClient(cfg config.LLMConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, apperrors.ErrAPIKeyMissing
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), 1)
	}

	breaker := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "anthropic",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
		limiter: limiter,
		breaker: breaker,
	}, nil
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type chatResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int64 `json:"input_tokens"`
		OutputTokens int64 `json:"output_tokens"`
	} `json:"usage"`
}

// Chat sends a single user prompt and returns the model's text reply.
func (c *Client) Chat(ctx context.Context, prompt string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter interrupted: %w", err)
		}
	}

	start := time.Now()
	reply, err := c.breaker.Execute(func() (string, error) {
		return c.send(ctx, prompt)
	})
	metrics.RecordResponseTime(time.Since(start))
	metrics.RecordModelRequest(err == nil)

	if err != nil {
		return "", err
	}

	metrics.RecordTokens(int64(CountTokens(prompt)), int64(CountTokens(reply)))
	return reply, nil
}

func (c *Client) send(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:     c.cfg.Model,
		MaxTokens: c.cfg.MaxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.cfg.BaseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrModelRequest.Code, "failed to send request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", apperrors.New(apperrors.ErrModelStatus.Code,
			fmt.Sprintf("API error (status %d): %s", resp.StatusCode, string(bodyBytes)))
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrModelResponse.Code, "failed to decode response")
	}

	if len(result.Content) == 0 {
		return "", apperrors.New(apperrors.ErrModelResponse.Code, "empty response from model")
	}

	return result.Content[0].Text, nil
}

// GetModel returns the configured model name.
func (c *Client) GetModel() string {
	return c.cfg.Model
}

// CountTokens estimates token count (rough approximation)
func CountTokens(text string) int {
	// Very rough estimate: ~4 characters per token for English
	return len(text) / 4
}
