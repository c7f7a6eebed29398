package moltin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fishshop-bot/internal/model"
)

// tokenServer serves the credentials exchange and counts how often it runs.
func tokenServer(t *testing.T, validity time.Duration) (*httptest.Server, *int) {
	t.Helper()
	exchanges := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/oauth/access_token" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parsing form: %v", err)
		}
		if got := r.Form.Get("grant_type"); got != "client_credentials" {
			t.Errorf("grant_type = %q, want client_credentials", got)
		}
		if got := r.Form.Get("client_id"); got != "test-id" {
			t.Errorf("client_id = %q, want test-id", got)
		}

		exchanges++
		json.NewEncoder(w).Encode(tokenResponse{
			AccessToken: "tok-1",
			TokenType:   "Bearer",
			ExpiresIn:   int64(validity / time.Second),
			Expires:     time.Now().Add(validity).Unix(),
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &exchanges
}

func TestTokenCachedWithinValidity(t *testing.T) {
	srv, exchanges := tokenServer(t, time.Hour)
	auth := NewAuthenticator(srv.URL, "test-id", "test-secret", srv.Client())
	ctx := context.Background()

	first, err := auth.Token(ctx)
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	second, err := auth.Token(ctx)
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}

	if first != "tok-1" || second != "tok-1" {
		t.Errorf("unexpected tokens %q / %q", first, second)
	}
	if *exchanges != 1 {
		t.Errorf("expected 1 exchange, got %d", *exchanges)
	}
}

func TestTokenRefreshedNearExpiry(t *testing.T) {
	// 30s of validity is inside the refresh margin, so every call exchanges.
	srv, exchanges := tokenServer(t, 30*time.Second)
	auth := NewAuthenticator(srv.URL, "test-id", "test-secret", srv.Client())
	ctx := context.Background()

	if _, err := auth.Token(ctx); err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	if _, err := auth.Token(ctx); err != nil {
		t.Fatalf("Token failed: %v", err)
	}

	if *exchanges != 2 {
		t.Errorf("expected 2 exchanges for near-expiry token, got %d", *exchanges)
	}
}

func TestTokenExchangeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":[{"title":"Unable to validate client"}]}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	auth := NewAuthenticator(srv.URL, "bad-id", "bad-secret", srv.Client())

	_, err := auth.Token(context.Background())
	if !errors.Is(err, model.ErrAuth) {
		t.Errorf("expected ErrAuth, got %v", err)
	}
}

func TestTokenEmptyAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(tokenResponse{})
	}))
	defer srv.Close()

	auth := NewAuthenticator(srv.URL, "test-id", "test-secret", srv.Client())

	_, err := auth.Token(context.Background())
	if !errors.Is(err, model.ErrAuth) {
		t.Errorf("expected ErrAuth for empty token, got %v", err)
	}
}
