package ports

import (
	"context"

	"github.com/bnema/halo-bridge/internal/domain"
)

// CredentialStore persists the credential set. Every write is a whole-file read-modify-write.
type CredentialStore interface {
	Load(ctx context.Context) (domain.CredentialSet, error)
	SaveTokens(ctx context.Context, tokens domain.TokenPair) error
	SaveSessionCookies(ctx context.Context, cookies domain.SessionCookies) error
	SaveTransactionID(ctx context.Context, transactionID string) error
}
