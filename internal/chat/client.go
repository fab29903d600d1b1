package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Message is one role-tagged chat message in a completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TransportError means the completion service could not be reached or
// answered with a non-success status. It is fatal for the request and is
// never converted into a refusal.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "completion transport: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// MalformedError means the service answered 2xx but the body lacked the
// expected choices/message/content structure. Callers recover from it with a
// canned user-facing message.
type MalformedError struct {
	Detail string
}

func (e *MalformedError) Error() string { return "malformed completion: " + e.Detail }

type completionRequest struct {
	Model           string    `json:"model"`
	Messages        []Message `json:"messages"`
	Temperature     float64   `json:"temperature"`
	MaxOutputTokens int       `json:"max_output_tokens,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client talks to an OpenAI-compatible chat-completions endpoint.
type Client struct {
	url        string
	model      string
	httpClient *http.Client
}

func NewClient(url, model string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("completion url is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("completion model is required")
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		url:        strings.TrimSpace(url),
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Complete sends one completion request and returns the first choice's
// message content. maxTokens <= 0 means no cap. Single-shot, no retries.
func (c *Client) Complete(ctx context.Context, messages []Message, temperature float64, maxTokens int) (string, error) {
	payload := completionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
	}
	if maxTokens > 0 {
		payload.MaxOutputTokens = maxTokens
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal completion payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: fmt.Errorf("read completion body: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &TransportError{Err: fmt.Errorf("status=%d body=%s", resp.StatusCode, truncate(string(raw), 200))}
	}

	var parsed completionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &MalformedError{Detail: "undecodable body: " + err.Error()}
	}
	if len(parsed.Choices) == 0 {
		return "", &MalformedError{Detail: "no choices"}
	}
	if parsed.Choices[0].Message.Content == nil {
		return "", &MalformedError{Detail: "choice has no message content"}
	}
	return *parsed.Choices[0].Message.Content, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
