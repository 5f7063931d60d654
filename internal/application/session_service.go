package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/halo-bridge/internal/domain"
	"github.com/bnema/halo-bridge/internal/logging"
	"github.com/bnema/halo-bridge/internal/ports"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	refreshKey = "refresh"

	statusSessionCreated = "session_created"
	statusRefreshed      = "refreshed"

	refreshOutcomeOK      = "ok"
	refreshOutcomeExpired = "expired"
	refreshOutcomeError   = "error"
)

// EstablishedSession is the outcome of signing in with a token pair.
type EstablishedSession struct {
	Cookies domain.SessionCookies
	Session domain.SessionData
}

// SessionService owns the credential lifecycle. It is the only writer of the credential store.
type SessionService struct {
	identity ports.IdentityProvider
	store    ports.CredentialStore
	provider *CredentialProvider
	gateway  ports.Gateway
	metrics  ports.Metrics
	logger   *zap.Logger

	refreshGroup singleflight.Group
}

func NewSessionService(
	identity ports.IdentityProvider,
	store ports.CredentialStore,
	provider *CredentialProvider,
	gateway ports.Gateway,
	metrics ports.Metrics,
	logger *zap.Logger,
) *SessionService {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	logger = logging.OrNop(logger)

	return &SessionService{
		identity: identity,
		store:    store,
		provider: provider,
		gateway:  gateway,
		metrics:  metrics,
		logger:   logger,
	}
}

func (s *SessionService) EstablishSession(ctx context.Context, tokens domain.TokenPair) (EstablishedSession, error) {
	cookies, err := s.identity.SignIn(ctx, tokens)
	if err != nil {
		return EstablishedSession{}, fmt.Errorf("sign in with tokens: %w", err)
	}
	if !cookies.HasSessionToken() {
		return EstablishedSession{}, domain.NewAuthFailure(domain.ErrTokensInvalid, domain.RemediationTokensInvalid)
	}

	session, err := s.identity.Session(ctx, cookies)
	if err != nil {
		return EstablishedSession{}, fmt.Errorf("fetch session: %w", err)
	}
	if strings.TrimSpace(session.UserID) == "" {
		return EstablishedSession{}, domain.NewAuthFailure(domain.ErrNoUserData, domain.RemediationNoUserData)
	}

	if session.Tokens.AuthToken == "" {
		session.Tokens.AuthToken = tokens.AuthToken
	}
	if session.Tokens.ContextToken == "" {
		session.Tokens.ContextToken = tokens.ContextToken
	}

	s.logger.Info("session established",
		zap.String("username", session.Username),
		zap.String("expires", session.Expires),
		zap.Int("cookies", len(cookies)),
	)

	return EstablishedSession{Cookies: cookies, Session: session}, nil
}

// SetupSession establishes a session from the current tokens and persists its cookies and canonical tokens.
func (s *SessionService) SetupSession(ctx context.Context) (SessionResult, error) {
	creds, err := s.provider.Reload(ctx)
	if err != nil {
		return SessionResult{}, err
	}
	if strings.TrimSpace(creds.Tokens.AuthToken) == "" {
		return SessionResult{}, fmt.Errorf("setup session: %w", domain.ErrNoTokensConfigured)
	}

	established, err := s.EstablishSession(ctx, creds.Tokens)
	if err != nil {
		return SessionResult{}, err
	}

	if err := s.store.SaveSessionCookies(ctx, established.Cookies); err != nil {
		return SessionResult{}, fmt.Errorf("save session cookies: %w", err)
	}
	if err := s.store.SaveTokens(ctx, established.Session.Tokens); err != nil {
		return SessionResult{}, fmt.Errorf("save tokens: %w", err)
	}
	if _, err := s.provider.Reload(ctx); err != nil {
		return SessionResult{}, err
	}

	return SessionResult{
		Status:   statusSessionCreated,
		UserID:   established.Session.UserID,
		Username: established.Session.Username,
		Expires:  established.Session.Expires,
		Cookies:  len(established.Cookies),
		Message:  fmt.Sprintf("Session created, expires %s. Token refresh will now work automatically.", established.Session.Expires),
	}, nil
}

// RefreshTokens exchanges the stored session cookies for a fresh token pair. Concurrent calls share one exchange.
func (s *SessionService) RefreshTokens(ctx context.Context) (RefreshResult, error) {
	value, err, shared := s.refreshGroup.Do(refreshKey, func() (any, error) {
		return s.refresh(ctx)
	})
	if shared {
		s.logger.Debug("token refresh shared with concurrent caller")
	}
	if err != nil {
		return RefreshResult{}, err
	}

	return value.(RefreshResult), nil
}

func (s *SessionService) refresh(ctx context.Context) (RefreshResult, error) {
	stored, err := s.store.Load(ctx)
	if err != nil {
		s.metrics.ObserveRefresh(refreshOutcomeError)
		return RefreshResult{}, fmt.Errorf("load credentials: %w", err)
	}
	if !stored.HasSession() {
		s.metrics.ObserveRefresh(refreshOutcomeExpired)
		return RefreshResult{}, domain.NewAuthFailure(domain.ErrNoSessionStored, domain.RemediationNoSession)
	}

	session, err := s.identity.Session(ctx, stored.SessionCookies)
	if err != nil {
		s.metrics.ObserveRefresh(refreshOutcomeError)
		return RefreshResult{}, fmt.Errorf("fetch session: %w", err)
	}
	if strings.TrimSpace(session.UserID) == "" {
		s.metrics.ObserveRefresh(refreshOutcomeExpired)
		return RefreshResult{}, domain.NewAuthFailure(domain.ErrSessionExpired, domain.RemediationExpired)
	}
	if !session.Tokens.Complete() {
		s.metrics.ObserveRefresh(refreshOutcomeError)
		return RefreshResult{}, domain.NewAuthFailure(domain.ErrTokensMissing, domain.RemediationTokensMissing)
	}

	if err := s.store.SaveTokens(ctx, session.Tokens); err != nil {
		s.metrics.ObserveRefresh(refreshOutcomeError)
		return RefreshResult{}, fmt.Errorf("save tokens: %w", err)
	}
	if _, err := s.provider.Reload(ctx); err != nil {
		s.metrics.ObserveRefresh(refreshOutcomeError)
		return RefreshResult{}, err
	}

	s.metrics.ObserveRefresh(refreshOutcomeOK)
	s.logger.Info("tokens refreshed", zap.String("username", session.Username), zap.String("expires", session.Expires))

	return RefreshResult{Status: statusRefreshed, Username: session.Username, Expires: session.Expires, Tokens: session.Tokens}, nil
}

// ValidateTokens makes one minimal authenticated call and reports valid, expired or error.
func (s *SessionService) ValidateTokens(ctx context.Context) TokenValidation {
	var data courseClassesData
	err := s.gateway.GraphQL(ctx, ports.GraphQLRequest{
		Operation: opCourseClassesForUser,
		Query:     courseClassesForUserQuery,
		Variables: map[string]any{"pgNum": 1, "pgSize": 1},
	}, &data)

	switch {
	case err == nil:
		return TokenValidation{
			Status:  ValidationValid,
			Message: fmt.Sprintf("Tokens are working. Found %d class(es).", len(data.Result.CourseClasses)),
		}
	case errors.Is(err, domain.ErrUnauthorized):
		return TokenValidation{Status: ValidationExpired, Message: remediationFor(err)}
	case errors.Is(err, domain.ErrNoTokensConfigured):
		return TokenValidation{Status: ValidationError, Message: fmt.Sprintf("Config error: %v. Provide tokens with `halo tokens set`.", err)}
	default:
		return TokenValidation{Status: ValidationError, Message: fmt.Sprintf("Unexpected error: %v", err)}
	}
}

// ReloadTokens re-reads the credential store and validates the result.
func (s *SessionService) ReloadTokens(ctx context.Context) TokenValidation {
	if _, err := s.provider.Reload(ctx); err != nil {
		return TokenValidation{Status: ValidationError, Message: fmt.Sprintf("Config error: %v", err)}
	}
	return s.ValidateTokens(ctx)
}

// SetTokens stores a token pair copied from a browser session. An empty context token reuses the auth token.
func (s *SessionService) SetTokens(ctx context.Context, cmd SetTokensCommand) error {
	tokens := domain.TokenPair{
		AuthToken:    strings.TrimSpace(cmd.Tokens.AuthToken),
		ContextToken: strings.TrimSpace(cmd.Tokens.ContextToken),
	}
	if tokens.AuthToken == "" {
		return fmt.Errorf("%w: auth token is required", domain.ErrInvalidInput)
	}
	if tokens.ContextToken == "" {
		tokens.ContextToken = tokens.AuthToken
	}

	if err := s.store.SaveTokens(ctx, tokens); err != nil {
		return fmt.Errorf("save tokens: %w", err)
	}
	if transactionID := strings.TrimSpace(cmd.TransactionID); transactionID != "" {
		if err := s.store.SaveTransactionID(ctx, transactionID); err != nil {
			return fmt.Errorf("save transaction id: %w", err)
		}
	}
	if _, err := s.provider.Reload(ctx); err != nil {
		return err
	}

	s.logger.Info("tokens stored")
	return nil
}

func remediationFor(err error) string {
	var authFailure *domain.AuthFailure
	if errors.As(err, &authFailure) && authFailure.Remediation != "" {
		return authFailure.Remediation
	}
	return domain.RemediationUnauthorized
}
