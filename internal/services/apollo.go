package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// LLMClient sends a chat-style prompt to the completion endpoint and returns
// the raw model text. Every failure path collapses into an error return;
// nothing panics through to the caller.
type LLMClient interface {
	Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error)
}

// CompletionOptions carries per-call overrides. A Temperature <= 0 or a
// MaxTokens <= 0 falls back to the client defaults.
type CompletionOptions struct {
	SystemPrompt string
	Temperature  float64
	MaxTokens    int
}

type apolloClient struct {
	creds       CredentialProvider
	httpClient  *http.Client
	apiURL      string
	model       string
	temperature float64
	maxTokens   int
}

func NewApolloClient(
	creds CredentialProvider,
	apiURL string,
	model string,
	temperature float64,
	maxTokens int,
	timeout time.Duration,
) LLMClient {
	return &apolloClient{
		creds:       creds,
		httpClient:  &http.Client{Timeout: timeout},
		apiURL:      strings.TrimSuffix(apiURL, "/"),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete implements LLMClient. A 401 from the completions endpoint marks
// the cached credential stale: the token is refreshed and the request retried
// exactly once. That single retry is the only retry policy, bounding the
// worst case at roughly two timeouts per call.
func (c *apolloClient) Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error) {
	token, err := c.creds.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to obtain credential: %w", err)
	}

	temperature := opts.Temperature
	if temperature <= 0 {
		temperature = c.temperature
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.maxTokens
	}

	var messages []chatMessage
	if opts.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: opts.SystemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	payload, err := json.Marshal(chatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode completion request: %w", err)
	}

	resp, err := c.post(ctx, token, payload)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()

		token, err = c.creds.Refresh(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to refresh credential: %w", err)
		}

		resp, err = c.post(ctx, token, payload)
		if err != nil {
			return "", fmt.Errorf("retried completion request failed: %w", err)
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion endpoint returned status %d", resp.StatusCode)
	}

	var body chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(body.Choices) == 0 {
		return "", fmt.Errorf("completion response has no choices")
	}

	return body.Choices[0].Message.Content, nil
}

func (c *apolloClient) post(ctx context.Context, token string, payload []byte) (*http.Response, error) {
	endpoint := c.apiURL + "/chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	return c.httpClient.Do(req)
}
