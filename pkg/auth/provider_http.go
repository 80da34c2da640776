package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HTTPProvider verifies tokens by calling the hosted auth provider's
// user-info endpoint (the "verify token, get user" operation). The provider
// owns all session and key management; we only forward the bearer token.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPProvider creates a provider client for the given base URL.
// apiKey is the provider's public (anon) API key, sent alongside each request.
func NewHTTPProvider(baseURL, apiKey string, client *http.Client) *HTTPProvider {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
	}
}

// userInfoResponse is the wire shape of the provider's user endpoint
type userInfoResponse struct {
	ID           string `json:"id"`
	UserMetadata struct {
		Role string `json:"role"`
	} `json:"user_metadata"`
}

// VerifyToken implements Provider
func (p *HTTPProvider) VerifyToken(ctx context.Context, token string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build user-info request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if p.apiKey != "" {
		req.Header.Set("apikey", p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth provider rejected token: status %d", resp.StatusCode)
	}

	var user userInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user-info response: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("auth provider returned no user")
	}

	return &Identity{
		Subject: user.ID,
		Role:    Role(user.UserMetadata.Role),
	}, nil
}
