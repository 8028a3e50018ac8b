package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// CredentialProvider obtains and caches the bearer token used against the
// completions endpoint. It is injected into the gateway client so the client
// can be exercised without network access. Retry policy lives in the caller:
// a failed fetch here is terminal for this attempt.
type CredentialProvider interface {
	// Token returns the cached token, fetching one if the cache is empty.
	Token(ctx context.Context) (string, error)
	// Refresh discards the cached token and fetches a replacement. Used when
	// the completions endpoint answers 401.
	Refresh(ctx context.Context) (string, error)
}

type clientCredentials struct {
	httpClient   *http.Client
	tokenURL     string
	clientID     string
	clientSecret string

	mu    sync.Mutex
	token string
}

func NewClientCredentials(tokenURL, clientID, clientSecret string, timeout time.Duration) CredentialProvider {
	return &clientCredentials{
		httpClient:   &http.Client{Timeout: timeout},
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

func (c *clientCredentials) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()

	if token != "" {
		return token, nil
	}
	return c.Refresh(ctx)
}

func (c *clientCredentials) Refresh(ctx context.Context) (string, error) {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("token response missing access_token")
	}

	c.mu.Lock()
	c.token = body.AccessToken
	c.mu.Unlock()

	return body.AccessToken, nil
}
