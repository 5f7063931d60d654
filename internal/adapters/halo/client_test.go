package halo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/bnema/halo-bridge/internal/domain"
	"github.com/bnema/halo-bridge/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCredentials struct {
	mu  sync.Mutex
	set domain.CredentialSet
}

func (s *staticCredentials) Credentials(context.Context) (domain.CredentialSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set, nil
}

func (s *staticCredentials) replace(tokens domain.TokenPair) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set.Tokens = tokens
}

type recordedRequest struct {
	operation string
	outcome   string
}

type recordingMetrics struct {
	ports.NopMetrics
	mu       sync.Mutex
	requests []recordedRequest
}

func (m *recordingMetrics) ObserveRequest(operation, outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, recordedRequest{operation: operation, outcome: outcome})
}

func newTestClient(server *httptest.Server, creds *staticCredentials) *Client {
	return &Client{
		GraphQLURL:  server.URL + "/",
		RESTBaseURL: server.URL,
		HTTPClient:  server.Client(),
		Credentials: creds,
		newID:       func() string { return "uuid-1" },
	}
}

func TestGraphQLSendsAuthAndScopeHeaders(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer A1", r.Header.Get("authorization"))
		assert.Equal(t, "Bearer C1", r.Header.Get("contexttoken"))
		assert.Equal(t, "txn-uuid-1", r.Header.Get("transaction-id"))
		assert.Equal(t, "slug-1", r.Header.Get("current-class-slug-id"))
		assert.Equal(t, "class-1", r.Header.Get("current-course-class-id"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload graphQLPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "CourseClassAssessment", payload.OperationName)
		assert.Equal(t, "AX", payload.Variables["assessmentId"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"assessment":{"id":"AX","title":"Essay"}}}`))
	}))
	t.Cleanup(server.Close)

	creds := &staticCredentials{set: domain.CredentialSet{
		Tokens:        domain.TokenPair{AuthToken: "A1", ContextToken: "C1"},
		TransactionID: "txn",
	}}
	client := newTestClient(server, creds)

	var out struct {
		Assessment struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"assessment"`
	}
	err := client.GraphQL(context.Background(), ports.GraphQLRequest{
		Operation: "CourseClassAssessment",
		Query:     "query CourseClassAssessment { assessment { id title } }",
		Variables: map[string]any{"assessmentId": "AX"},
		Scope:     ports.Scope{ClassSlug: "slug-1", CourseClassID: "class-1"},
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, "Essay", out.Assessment.Title)
}

func TestGraphQLUsesBareUUIDWithoutPrefixAndOmitsEmptyScope(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "uuid-1", r.Header.Get("transaction-id"))
		assert.Empty(t, r.Header.Get("current-class-slug-id"))
		assert.Empty(t, r.Header.Get("current-course-class-id"))
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	t.Cleanup(server.Close)

	client := newTestClient(server, &staticCredentials{set: domain.CredentialSet{
		Tokens: domain.TokenPair{AuthToken: "A1", ContextToken: "C1"},
	}})

	require.NoError(t, client.GraphQL(context.Background(), ports.GraphQLRequest{Operation: "Op", Query: "query Op { x }"}, nil))
}

func TestGraphQLErrorsBecomeAPIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":null,"errors":[{"message":"assessment not found"},{}]}`))
	}))
	t.Cleanup(server.Close)

	client := newTestClient(server, &staticCredentials{set: domain.CredentialSet{
		Tokens: domain.TokenPair{AuthToken: "A1", ContextToken: "C1"},
	}})

	err := client.GraphQL(context.Background(), ports.GraphQLRequest{Operation: "Op", Query: "query Op { x }"}, nil)
	require.Error(t, err)

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Op", apiErr.Operation)
	assert.Equal(t, []string{"assessment not found", "Unknown error"}, apiErr.Messages)
	assert.NotErrorIs(t, err, domain.ErrUnauthorized)
}

func TestGraphQLAuthErrorIsClassifiedUnauthorized(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "extension code", body: `{"errors":[{"message":"denied","extensions":{"code":"UNAUTHENTICATED"}}]}`},
		{name: "message marker", body: `{"errors":[{"message":"JWT expired at 2025-01-01"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(server.Close)

			client := newTestClient(server, &staticCredentials{set: domain.CredentialSet{
				Tokens: domain.TokenPair{AuthToken: "A1", ContextToken: "C1"},
			}})

			err := client.GraphQL(context.Background(), ports.GraphQLRequest{Operation: "Op", Query: "query Op { x }"}, nil)
			require.ErrorIs(t, err, domain.ErrUnauthorized)
			var apiErr *domain.APIError
			assert.ErrorAs(t, err, &apiErr)
		})
	}
}

func TestUnauthorizedTriggersSingleRefreshAndRetry(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Header.Get("authorization") != "Bearer A2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"data":{"ok":true}}`))
	}))
	t.Cleanup(server.Close)

	creds := &staticCredentials{set: domain.CredentialSet{Tokens: domain.TokenPair{AuthToken: "A1", ContextToken: "C1"}}}
	metrics := &recordingMetrics{}
	client := newTestClient(server, creds)
	client.Metrics = metrics

	var refreshes atomic.Int32
	client.Refresh = func(context.Context) error {
		refreshes.Add(1)
		creds.replace(domain.TokenPair{AuthToken: "A2", ContextToken: "C2"})
		return nil
	}

	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, client.GraphQL(context.Background(), ports.GraphQLRequest{Operation: "Op", Query: "query Op { ok }"}, &out))
	assert.True(t, out.OK)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, int32(1), refreshes.Load())
	assert.Equal(t, []recordedRequest{
		{operation: "Op", outcome: outcomeUnauthorized},
		{operation: "Op", outcome: outcomeOK},
	}, metrics.requests)
}

func TestPersistentUnauthorizedIsNotRetriedTwice(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	client := newTestClient(server, &staticCredentials{set: domain.CredentialSet{Tokens: domain.TokenPair{AuthToken: "A1", ContextToken: "C1"}}})
	var refreshes atomic.Int32
	client.Refresh = func(context.Context) error {
		refreshes.Add(1)
		return nil
	}

	err := client.REST(context.Background(), ports.RESTRequest{Operation: "submit", Path: "/api/v1/x"}, nil)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, int32(1), refreshes.Load())
}

func TestPermissionDenialIsNotRefreshed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		graphQL bool
		check   func(t *testing.T, err error)
	}{
		{
			name:   "rest forbidden keeps body",
			status: http.StatusForbidden,
			body:   `{"message":"submission window closed"}`,
			check: func(t *testing.T, err error) {
				var transportErr *domain.TransportError
				require.ErrorAs(t, err, &transportErr)
				assert.Equal(t, http.StatusForbidden, transportErr.StatusCode)
				assert.Contains(t, transportErr.Body, "submission window closed")
				assert.False(t, transportErr.Retryable())
			},
		},
		{
			name:    "graphql forbidden code",
			status:  http.StatusOK,
			body:    `{"errors":[{"message":"Unauthorized: you do not have access to this assessment","extensions":{"code":"FORBIDDEN"}}]}`,
			graphQL: true,
			check: func(t *testing.T, err error) {
				var apiErr *domain.APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Contains(t, apiErr.Messages[0], "do not have access")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(server.Close)

			client := newTestClient(server, &staticCredentials{set: domain.CredentialSet{Tokens: domain.TokenPair{AuthToken: "A1", ContextToken: "C1"}}})
			var refreshes atomic.Int32
			client.Refresh = func(context.Context) error {
				refreshes.Add(1)
				return nil
			}

			var err error
			if tt.graphQL {
				err = client.GraphQL(context.Background(), ports.GraphQLRequest{Operation: "Op", Query: "query Op { x }"}, nil)
			} else {
				err = client.REST(context.Background(), ports.RESTRequest{Operation: "submit", Path: "/api/v1/x"}, nil)
			}

			require.Error(t, err)
			assert.NotErrorIs(t, err, domain.ErrUnauthorized)
			assert.NotEqual(t, domain.RemedyReauthenticate, domain.Classify(err))
			assert.Equal(t, int32(1), calls.Load())
			assert.Zero(t, refreshes.Load())
			tt.check(t, err)
		})
	}
}

func TestTruncateKeepsRuneBoundary(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "ab...", truncate("abcdef", 2))

	got := truncate("aé", 2)
	assert.Equal(t, "a...", got)
	assert.True(t, utf8.ValidString(got))
}

func TestFailedRefreshJoinsErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	client := newTestClient(server, &staticCredentials{set: domain.CredentialSet{Tokens: domain.TokenPair{AuthToken: "A1", ContextToken: "C1"}}})
	refreshErr := domain.NewAuthFailure(domain.ErrSessionExpired, domain.RemediationExpired)
	client.Refresh = func(context.Context) error { return refreshErr }

	err := client.GraphQL(context.Background(), ports.GraphQLRequest{Operation: "Op", Query: "query Op { x }"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.Contains(t, err.Error(), "refresh tokens")
}

func TestServerErrorIsRetryableTransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	client := newTestClient(server, &staticCredentials{set: domain.CredentialSet{Tokens: domain.TokenPair{AuthToken: "A1", ContextToken: "C1"}}})
	client.Refresh = func(context.Context) error {
		t.Error("refresh must not run for server errors")
		return nil
	}

	err := client.REST(context.Background(), ports.RESTRequest{Operation: "fileUploadStatus", Path: "/api/v1/orchestrate/fileUploadStatus"}, nil)
	var transportErr *domain.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusBadGateway, transportErr.StatusCode)
	assert.True(t, transportErr.Retryable())
	assert.Equal(t, domain.RemedyRetry, domain.Classify(err))
}

func TestRESTPostsBodyAndDecodesList(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/orchestrate/generate-presigned-urls", r.URL.Path)
		var body []map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body, 1)
		assert.Equal(t, "essay.docx", body[0]["fileName"])
		_, _ = w.Write([]byte(`[{"resourceId":"R1","s3UploadUrl":"https://s3/x"}]`))
	}))
	t.Cleanup(server.Close)

	client := newTestClient(server, &staticCredentials{set: domain.CredentialSet{Tokens: domain.TokenPair{AuthToken: "A1", ContextToken: "C1"}}})

	var out []struct {
		ResourceID  string `json:"resourceId"`
		S3UploadURL string `json:"s3UploadUrl"`
	}
	err := client.REST(context.Background(), ports.RESTRequest{
		Operation: "generate-presigned-urls",
		Path:      "/api/v1/orchestrate/generate-presigned-urls",
		Body:      []map[string]any{{"fileName": "essay.docx"}},
	}, &out)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "R1", out[0].ResourceID)
	assert.Equal(t, "https://s3/x", out[0].S3UploadURL)
}

func TestMissingTokensFailBeforeAnyRequest(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	t.Cleanup(server.Close)

	client := newTestClient(server, &staticCredentials{})

	err := client.GraphQL(context.Background(), ports.GraphQLRequest{Operation: "Op", Query: "query Op { x }"}, nil)
	require.ErrorIs(t, err, domain.ErrNoTokensConfigured)
	assert.Zero(t, calls.Load())
}

func TestRequestTimesOutWithoutCallerDeadline(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	t.Cleanup(server.Close)

	client := newTestClient(server, &staticCredentials{set: domain.CredentialSet{Tokens: domain.TokenPair{AuthToken: "A1", ContextToken: "C1"}}})
	client.RequestTimeout = 20 * time.Millisecond

	err := client.GraphQL(context.Background(), ports.GraphQLRequest{Operation: "Op", Query: "query Op { x }"}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
