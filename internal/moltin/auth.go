package moltin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"fishshop-bot/internal/model"
)

// tokenRefreshMargin is the minimum remaining validity before a refresh is
// forced. Tokens close to expiry are not worth handing out: the commerce call
// they authorize could outlive them.
const tokenRefreshMargin = 60 * time.Second

// Authenticator obtains and caches a client-credentials bearer token for the
// Elasticpath API. It is the single point of truth for auth material shared
// by all commerce calls in the process.
//
// The cached pair is guarded by a mutex, so concurrent callers are safe; a
// refresh simply serializes behind the lock and the last writer wins.
type Authenticator struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewAuthenticator creates an Authenticator for the given credentials.
// baseURL must not have a trailing slash.
func NewAuthenticator(baseURL, clientID, clientSecret string, httpClient *http.Client) *Authenticator {
	return &Authenticator{
		httpClient:   httpClient,
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// Token returns a bearer token valid at call time, refreshing it through the
// client-credentials grant when fewer than tokenRefreshMargin of validity
// remain. Failure is an AUTH_ERROR; callers must not advance conversation
// state on it.
func (a *Authenticator) Token(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.token != "" && time.Until(a.expiresAt) >= tokenRefreshMargin {
		return a.token, nil
	}

	form := url.Values{}
	form.Set("client_id", a.clientID)
	form.Set("client_secret", a.clientSecret)
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.baseURL+"/oauth/access_token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", model.NewAuthError(fmt.Errorf("creating token request: %w", err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", model.NewAuthError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", model.NewAuthError(fmt.Errorf("reading token response: %w", err))
	}
	if resp.StatusCode >= 400 {
		return "", model.NewAuthError(fmt.Errorf("token exchange failed with status %d", resp.StatusCode))
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", model.NewAuthError(fmt.Errorf("parsing token response: %w", err))
	}
	if tok.AccessToken == "" {
		return "", model.NewAuthError(fmt.Errorf("empty access token from exchange"))
	}

	a.token = tok.AccessToken
	a.expiresAt = time.Unix(tok.Expires, 0)
	return a.token, nil
}
