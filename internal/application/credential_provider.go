package application

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bnema/halo-bridge/internal/domain"
	"github.com/bnema/halo-bridge/internal/ports"
)

// CredentialProvider caches the credential set read from the store. Reload drops the cache.
type CredentialProvider struct {
	store    ports.CredentialStore
	fallback domain.CredentialSet

	mu      sync.RWMutex
	loaded  bool
	current domain.CredentialSet
}

var _ ports.CredentialSource = (*CredentialProvider)(nil)

// NewCredentialProvider uses fallback for any token or transaction id the store does not hold.
func NewCredentialProvider(store ports.CredentialStore, fallback domain.CredentialSet) *CredentialProvider {
	return &CredentialProvider{store: store, fallback: fallback}
}

func (p *CredentialProvider) Credentials(ctx context.Context) (domain.CredentialSet, error) {
	p.mu.RLock()
	if p.loaded {
		current := p.current
		p.mu.RUnlock()
		return current, nil
	}
	p.mu.RUnlock()

	return p.Reload(ctx)
}

func (p *CredentialProvider) Reload(ctx context.Context) (domain.CredentialSet, error) {
	stored, err := p.store.Load(ctx)
	if err != nil {
		return domain.CredentialSet{}, fmt.Errorf("load credentials: %w", err)
	}

	merged := p.merge(stored)

	p.mu.Lock()
	p.current = merged
	p.loaded = true
	p.mu.Unlock()

	return merged, nil
}

func (p *CredentialProvider) merge(stored domain.CredentialSet) domain.CredentialSet {
	merged := stored
	if strings.TrimSpace(merged.Tokens.AuthToken) == "" {
		merged.Tokens.AuthToken = p.fallback.Tokens.AuthToken
	}
	if strings.TrimSpace(merged.Tokens.ContextToken) == "" {
		merged.Tokens.ContextToken = p.fallback.Tokens.ContextToken
	}
	if strings.TrimSpace(merged.Tokens.ContextToken) == "" {
		merged.Tokens.ContextToken = merged.Tokens.AuthToken
	}
	if merged.TransactionID == "" {
		merged.TransactionID = p.fallback.TransactionID
	}
	return merged
}
