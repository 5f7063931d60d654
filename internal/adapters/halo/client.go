package halo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bnema/halo-bridge/internal/domain"
	"github.com/bnema/halo-bridge/internal/logging"
	"github.com/bnema/halo-bridge/internal/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	headerAuthorization = "authorization"
	headerContextToken  = "contexttoken"
	headerTransactionID = "transaction-id"
	headerClassSlug     = "current-class-slug-id"
	headerCourseClassID = "current-course-class-id"

	maxGatewayResponseBytes = 8 << 20
	maxErrorBodyBytes       = 512
	defaultRequestTimeout   = 30 * time.Second

	outcomeOK           = "ok"
	outcomeUnauthorized = "unauthorized"
	outcomeAPIError     = "api_error"
	outcomeHTTPError    = "http_error"
	outcomeTransport    = "transport_error"
)

const (
	codeUnauthenticated = "UNAUTHENTICATED"
	codeForbidden       = "FORBIDDEN"
)

var authErrorMarkers = []string{
	"unauthorized",
	"unauthenticated",
	"not authenticated",
	"jwt expired",
	"token expired",
	"invalid token",
}

// Client is the authenticated gateway. On an auth rejection it calls Refresh once and retries once.
type Client struct {
	GraphQLURL     string
	RESTBaseURL    string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	Credentials    ports.CredentialSource
	Refresh        func(ctx context.Context) error
	Metrics        ports.Metrics
	Logger         *zap.Logger

	newID func() string
}

var _ ports.Gateway = (*Client)(nil)

type graphQLPayload struct {
	OperationName string         `json:"operationName"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

type graphQLError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

func (c *Client) GraphQL(ctx context.Context, req ports.GraphQLRequest, out any) error {
	if strings.TrimSpace(req.Query) == "" {
		return fmt.Errorf("graphql %s: query is empty", req.Operation)
	}

	variables := req.Variables
	if variables == nil {
		variables = map[string]any{}
	}
	payload := graphQLPayload{OperationName: req.Operation, Query: req.Query, Variables: variables}

	return c.withRefresh(ctx, req.Operation, func(ctx context.Context) error {
		data, err := c.send(ctx, req.Operation, c.GraphQLURL, payload, req.Scope)
		if err != nil {
			return err
		}
		return c.decodeGraphQL(req.Operation, data, out)
	})
}

func (c *Client) REST(ctx context.Context, req ports.RESTRequest, out any) error {
	endpoint, err := joinURL(c.RESTBaseURL, req.Path)
	if err != nil {
		return fmt.Errorf("%s: %w", req.Operation, err)
	}

	return c.withRefresh(ctx, req.Operation, func(ctx context.Context) error {
		data, err := c.send(ctx, req.Operation, endpoint, req.Body, req.Scope)
		if err != nil {
			return err
		}
		if out == nil || len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%s: decode response: %w", req.Operation, err)
		}
		return nil
	})
}

func (c *Client) withRefresh(ctx context.Context, operation string, call func(context.Context) error) error {
	err := c.instrument(ctx, operation, call)
	if err == nil || !errors.Is(err, domain.ErrUnauthorized) || c.Refresh == nil {
		return err
	}

	c.logger().Info("gateway rejected tokens, refreshing", zap.String("operation", operation))
	if refreshErr := c.Refresh(ctx); refreshErr != nil {
		return errors.Join(err, fmt.Errorf("refresh tokens: %w", refreshErr))
	}

	return c.instrument(ctx, operation, call)
}

func (c *Client) instrument(ctx context.Context, operation string, call func(context.Context) error) error {
	started := time.Now()
	err := call(ctx)
	if c.Metrics != nil {
		c.Metrics.ObserveRequest(operation, outcomeOf(err), time.Since(started))
	}
	return err
}

func (c *Client) send(ctx context.Context, operation, endpoint string, body any, scope ports.Scope) ([]byte, error) {
	if c.Credentials == nil {
		return nil, fmt.Errorf("%s: %w", operation, domain.ErrNoTokensConfigured)
	}
	creds, err := c.Credentials.Credentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: load credentials: %w", operation, err)
	}
	if strings.TrimSpace(creds.Tokens.AuthToken) == "" {
		return nil, fmt.Errorf("%s: %w", operation, domain.ErrNoTokensConfigured)
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%s: encode request: %w", operation, err)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerTransactionID, c.transactionID(creds.TransactionID))
	req.Header.Set(headerAuthorization, "Bearer "+creds.Tokens.AuthToken)
	req.Header.Set(headerContextToken, "Bearer "+creds.Tokens.ContextToken)
	if scope.ClassSlug != "" {
		req.Header.Set(headerClassSlug, scope.ClassSlug)
	}
	if scope.CourseClassID != "" {
		req.Header.Set(headerCourseClassID, scope.CourseClassID)
	}

	started := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxGatewayResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", operation, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("%s: status %d: %w", operation, resp.StatusCode, domain.ErrUnauthorized)
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		return nil, &domain.TransportError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Body:       truncate(strings.TrimSpace(string(data)), maxErrorBodyBytes),
		}
	}

	c.logger().Debug("gateway request completed",
		zap.String("operation", operation),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
	)

	return data, nil
}

func (c *Client) decodeGraphQL(operation string, data []byte, out any) error {
	var envelope graphQLResponse
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("%s: decode response: %w", operation, err)
	}

	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		unauthorized := false
		for _, gqlErr := range envelope.Errors {
			message := gqlErr.Message
			if message == "" {
				message = "Unknown error"
			}
			messages = append(messages, message)
			if isAuthError(gqlErr) {
				unauthorized = true
			}
		}

		apiErr := &domain.APIError{Operation: operation, Messages: messages}
		if unauthorized {
			return fmt.Errorf("%w: %w", domain.ErrUnauthorized, apiErr)
		}
		return apiErr
	}

	if out == nil || len(envelope.Data) == 0 || bytes.Equal(envelope.Data, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("%s: decode data: %w", operation, err)
	}
	return nil
}

func (c *Client) transactionID(prefix string) string {
	newID := c.newID
	if newID == nil {
		newID = uuid.NewString
	}

	id := newID()
	if prefix == "" {
		return id
	}
	return prefix + "-" + id
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	timeout := c.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return context.WithTimeout(ctx, timeout)
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func outcomeOf(err error) string {
	if err == nil {
		return outcomeOK
	}
	if errors.Is(err, domain.ErrUnauthorized) {
		return outcomeUnauthorized
	}

	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		return outcomeAPIError
	}
	var transportErr *domain.TransportError
	if errors.As(err, &transportErr) {
		return outcomeHTTPError
	}
	return outcomeTransport
}

func (c *Client) logger() *zap.Logger {
	return logging.OrNop(c.Logger)
}

// isAuthError reports expired or rejected tokens. FORBIDDEN is a permission denial and never refreshes.
func isAuthError(gqlErr graphQLError) bool {
	switch strings.ToUpper(gqlErr.Extensions.Code) {
	case codeUnauthenticated:
		return true
	case codeForbidden:
		return false
	}

	message := strings.ToLower(gqlErr.Message)
	for _, marker := range authErrorMarkers {
		if strings.Contains(message, marker) {
			return true
		}
	}
	return false
}

func joinURL(base, path string) (string, error) {
	if base == "" {
		return "", errors.New("gateway base url is required")
	}

	parsed, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse gateway base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("gateway base url must use http or https")
	}

	parsed.Path = strings.TrimRight(parsed.Path, "/") + "/" + strings.TrimLeft(path, "/")
	return parsed.String(), nil
}

// truncate cuts value to at most limit bytes without splitting a UTF-8 sequence.
func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(value[cut]) {
		cut--
	}
	return value[:cut] + "..."
}
