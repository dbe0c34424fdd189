package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Aubaid12/Flight-Search-Engine/internal/pkg/exception"
)

// renewMargin renews the token this long before its reported expiry so
// an in-flight search never carries a token that lapses mid-request.
const renewMargin = 60 * time.Second

// TokenProvider exchanges client credentials for a bearer token and
// caches it until shortly before expiry. Safe for concurrent callers;
// its lifetime is scoped to the client, not a package global.
type TokenProvider struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient *http.Client

	mu     sync.Mutex
	token  string
	expiry time.Time
}

func NewTokenProvider(baseURL, apiKey, apiSecret string, httpClient *http.Client) *TokenProvider {
	return &TokenProvider{
		baseURL:    baseURL,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		httpClient: httpClient,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type tokenErrorResponse struct {
	ErrorDescription string `json:"error_description"`
}

// Token returns a valid bearer token, exchanging credentials when the
// cached one is absent or about to expire.
func (p *TokenProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && time.Now().Before(p.expiry) {
		return p.token, nil
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {p.apiKey},
		"client_secret": {p.apiSecret},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/v1/security/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", exception.NewAuthError("token exchange failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body tokenErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&body)

		message := body.ErrorDescription
		if message == "" {
			message = fmt.Sprintf("token exchange returned status %d", resp.StatusCode)
		}

		return "", exception.NewAuthError(message, nil)
	}

	var body tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", exception.NewAuthError("malformed token response", err)
	}

	p.token = body.AccessToken
	p.expiry = time.Now().Add(time.Duration(body.ExpiresIn)*time.Second - renewMargin)

	return p.token, nil
}
