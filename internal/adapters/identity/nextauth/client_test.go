package nextauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bnema/halo-bridge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdentityServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc(csrfPath, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		http.SetCookie(w, &http.Cookie{Name: "__Host-next-auth.csrf-token", Value: "csrf-cookie", Secure: true, Path: "/"})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"csrfToken":"csrf-123"}`))
	})
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		csrfCookie, err := r.Cookie("__Host-next-auth.csrf-token")
		require.NoError(t, err)
		assert.Equal(t, "csrf-cookie", csrfCookie.Value)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "csrf-123", r.Form.Get("csrfToken"))
		assert.Equal(t, "A1", r.Form.Get("authToken"))
		assert.Equal(t, "C1", r.Form.Get("contextToken"))
		assert.Equal(t, "true", r.Form.Get("json"))

		http.SetCookie(w, &http.Cookie{Name: domain.SessionTokenCookie, Value: "long-lived", Secure: true, Path: "/"})
		http.SetCookie(w, &http.Cookie{Name: "TE1TX0FVVEg", Value: "lms-auth", Path: "/"})
		http.SetCookie(w, &http.Cookie{Name: "analytics", Value: "ignored", Path: "/"})
		http.Redirect(w, r, "/dashboard", http.StatusFound)
	})
	mux.HandleFunc(sessionPath, func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(domain.SessionTokenCookie)
		if err != nil || cookie.Value != "long-lived" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"userId":"u1","username":"student","authToken":"A2","contextToken":"C2","expires":"2025-01-01"}`))
	})
	mux.HandleFunc("/dashboard", func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("redirect must not be followed")
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestSignInCollectsOnlySessionCookies(t *testing.T) {
	t.Parallel()

	server := newIdentityServer(t)
	client := &Client{BaseURL: server.URL, HTTPClient: server.Client()}

	cookies, err := client.SignIn(context.Background(), domain.TokenPair{AuthToken: "A1", ContextToken: "C1"})
	require.NoError(t, err)

	assert.Equal(t, domain.SessionCookies{
		"__Host-next-auth.csrf-token": "csrf-cookie",
		domain.SessionTokenCookie:     "long-lived",
		"TE1TX0FVVEg":                 "lms-auth",
	}, cookies)
	assert.True(t, cookies.HasSessionToken())
}

func TestSignInThenSessionReturnsCanonicalTokens(t *testing.T) {
	t.Parallel()

	server := newIdentityServer(t)
	client := &Client{BaseURL: server.URL, HTTPClient: server.Client()}

	cookies, err := client.SignIn(context.Background(), domain.TokenPair{AuthToken: "A1", ContextToken: "C1"})
	require.NoError(t, err)

	session, err := client.Session(context.Background(), cookies)
	require.NoError(t, err)
	assert.Equal(t, "u1", session.UserID)
	assert.Equal(t, "student", session.Username)
	assert.Equal(t, "2025-01-01", session.Expires)
	assert.Equal(t, domain.TokenPair{AuthToken: "A2", ContextToken: "C2"}, session.Tokens)
}

func TestSessionWithoutValidCookieReturnsEmptySession(t *testing.T) {
	t.Parallel()

	server := newIdentityServer(t)
	client := &Client{BaseURL: server.URL, HTTPClient: server.Client()}

	session, err := client.Session(context.Background(), domain.SessionCookies{domain.SessionTokenCookie: "stale"})
	require.NoError(t, err)
	assert.Empty(t, session.UserID)
	assert.False(t, session.Tokens.Complete())
}

func TestSignInRequiresBothTokens(t *testing.T) {
	t.Parallel()

	client := &Client{BaseURL: "https://example.invalid"}

	_, err := client.SignIn(context.Background(), domain.TokenPair{AuthToken: "A1"})
	require.Error(t, err)
}

func TestSignInFailsWhenCSRFTokenMissing(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	client := &Client{BaseURL: server.URL, HTTPClient: server.Client()}

	_, err := client.SignIn(context.Background(), domain.TokenPair{AuthToken: "A1", ContextToken: "C1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing csrfToken")
}

func TestSessionReportsNonSuccessStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	client := &Client{BaseURL: server.URL, HTTPClient: server.Client()}

	_, err := client.Session(context.Background(), domain.SessionCookies{domain.SessionTokenCookie: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestSessionTimesOutWithoutCallerDeadline(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	client := &Client{BaseURL: server.URL, HTTPClient: server.Client(), RequestTimeout: 20 * time.Millisecond}

	_, err := client.Session(context.Background(), domain.SessionCookies{domain.SessionTokenCookie: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch session")
}

func TestEndpointRejectsInvalidBaseURL(t *testing.T) {
	t.Parallel()

	tests := []string{"", "ftp://halo.example", "https://"}
	for _, base := range tests {
		client := &Client{BaseURL: base}
		_, err := client.endpoint(sessionPath)
		assert.Error(t, err, base)
	}
}
