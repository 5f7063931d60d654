package nextauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/halo-bridge/internal/domain"
	"github.com/bnema/halo-bridge/internal/logging"
	"github.com/bnema/halo-bridge/internal/ports"
	"go.uber.org/zap"
)

const (
	csrfPath     = "/api/auth/csrf"
	callbackPath = "/api/auth/callback/tokens"
	sessionPath  = "/api/auth/session"

	maxIdentityResponseBytes = 1 << 20
	defaultRequestTimeout    = 30 * time.Second
)

// Client talks to the LMS next-auth endpoints. It never parses token contents.
type Client struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	Logger         *zap.Logger
}

var _ ports.IdentityProvider = (*Client)(nil)

type csrfResponse struct {
	CSRFToken string `json:"csrfToken"`
}

type sessionResponse struct {
	UserID       string `json:"userId"`
	Username     string `json:"username"`
	Expires      string `json:"expires"`
	AuthToken    string `json:"authToken"`
	ContextToken string `json:"contextToken"`
}

func (c *Client) SignIn(ctx context.Context, tokens domain.TokenPair) (domain.SessionCookies, error) {
	if !tokens.Complete() {
		return nil, errors.New("auth token and context token are required")
	}

	collected := map[string]string{}

	csrfEndpoint, err := c.endpoint(csrfPath)
	if err != nil {
		return nil, err
	}
	csrfResp, err := c.do(ctx, http.MethodGet, csrfEndpoint, nil, "", nil)
	if err != nil {
		return nil, fmt.Errorf("request csrf token: %w", err)
	}
	var csrf csrfResponse
	err = decodeBody(csrfResp, &csrf)
	mergeCookies(collected, csrfResp.Cookies())
	if err != nil {
		return nil, fmt.Errorf("request csrf token: %w", err)
	}
	if strings.TrimSpace(csrf.CSRFToken) == "" {
		return nil, errors.New("request csrf token: response missing csrfToken")
	}

	form := url.Values{}
	form.Set("csrfToken", csrf.CSRFToken)
	form.Set("authToken", tokens.AuthToken)
	form.Set("contextToken", tokens.ContextToken)
	form.Set("json", "true")

	callbackEndpoint, err := c.endpoint(callbackPath)
	if err != nil {
		return nil, err
	}
	callbackResp, err := c.do(ctx, http.MethodPost, callbackEndpoint, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", collected)
	if err != nil {
		return nil, fmt.Errorf("sign in with tokens: %w", err)
	}
	defer func() { _ = callbackResp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(callbackResp.Body, maxIdentityResponseBytes))

	if callbackResp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("sign in with tokens: status %d", callbackResp.StatusCode)
	}
	mergeCookies(collected, callbackResp.Cookies())

	cookies := domain.SessionCookies{}
	for name, value := range collected {
		if domain.IsSessionCookieName(name) {
			cookies[name] = value
		}
	}

	c.logger().Debug("identity sign-in completed", zap.Int("cookies", len(cookies)))

	return cookies, nil
}

func (c *Client) Session(ctx context.Context, cookies domain.SessionCookies) (domain.SessionData, error) {
	endpoint, err := c.endpoint(sessionPath)
	if err != nil {
		return domain.SessionData{}, err
	}

	resp, err := c.do(ctx, http.MethodGet, endpoint, nil, "", cookies)
	if err != nil {
		return domain.SessionData{}, fmt.Errorf("fetch session: %w", err)
	}

	var payload sessionResponse
	if err := decodeBody(resp, &payload); err != nil {
		return domain.SessionData{}, fmt.Errorf("fetch session: %w", err)
	}

	return domain.SessionData{
		UserID:   payload.UserID,
		Username: payload.Username,
		Expires:  payload.Expires,
		Tokens: domain.TokenPair{
			AuthToken:    payload.AuthToken,
			ContextToken: payload.ContextToken,
		},
	}, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader, contentType string, cookies map[string]string) (*http.Response, error) {
	requestCtx, cancel := c.requestContext(ctx)

	req, err := http.NewRequestWithContext(requestCtx, method, endpoint, body)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if len(cookies) > 0 {
		req.Header.Set("Cookie", domain.SessionCookies(cookies).Header())
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		cancel()
		return nil, err
	}
	resp.Body = cancelOnClose{ReadCloser: resp.Body, cancel: cancel}

	return resp, nil
}

// httpClient never follows redirects so Set-Cookie headers of the callback response stay visible.
func (c *Client) httpClient() *http.Client {
	base := c.HTTPClient
	if base == nil {
		base = http.DefaultClient
	}

	clone := *base
	clone.Jar = nil
	clone.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &clone
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

func (c *Client) endpoint(path string) (string, error) {
	if c.BaseURL == "" {
		return "", errors.New("identity base url is required")
	}

	parsed, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse identity base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("identity base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("identity base url host is required")
	}

	parsed.Path = strings.TrimRight(parsed.Path, "/") + path
	return parsed.String(), nil
}

func (c *Client) logger() *zap.Logger {
	return logging.OrNop(c.Logger)
}

func decodeBody(resp *http.Response, out any) error {
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxIdentityResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func mergeCookies(dst map[string]string, cookies []*http.Cookie) {
	for _, cookie := range cookies {
		if cookie.Value == "" || cookie.MaxAge < 0 {
			delete(dst, cookie.Name)
			continue
		}
		dst[cookie.Name] = cookie.Value
	}
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}
