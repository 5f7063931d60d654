package ports

import (
	"context"

	"github.com/bnema/halo-bridge/internal/domain"
)

type IdentityProvider interface {
	// SignIn exchanges a token pair for the identity endpoint's session cookies.
	SignIn(ctx context.Context, tokens domain.TokenPair) (domain.SessionCookies, error)
	Session(ctx context.Context, cookies domain.SessionCookies) (domain.SessionData, error)
}
