package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/halo-bridge/internal/domain"
	"github.com/bnema/halo-bridge/internal/ports"
)

const (
	credentialsFileMode = 0o600
	credentialsDirMode  = 0o700
	tempFilePattern     = ".credentials-*.json.tmp"

	keyAuthToken      = "authToken"
	keyContextToken   = "contextToken"
	keyTransactionID  = "transactionId"
	keySessionCookies = "sessionCookies"
	keyLegacyCookie   = "sessionCookie"
)

// Store keeps the credential set in a single JSON object. Keys it does not own are preserved.
type Store struct {
	path string
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.CredentialStore = (*Store)(nil)

func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("credentials path is empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve credentials path: %w", err)
	}
	absPath = filepath.Clean(absPath)

	return &Store{path: absPath, mu: lockForPath(absPath)}, nil
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Load(ctx context.Context) (domain.CredentialSet, error) {
	if err := ctx.Err(); err != nil {
		return domain.CredentialSet{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.readDocument()
	if err != nil {
		return domain.CredentialSet{}, err
	}

	var set domain.CredentialSet
	if err := decodeString(doc, keyAuthToken, &set.Tokens.AuthToken); err != nil {
		return domain.CredentialSet{}, err
	}
	if err := decodeString(doc, keyContextToken, &set.Tokens.ContextToken); err != nil {
		return domain.CredentialSet{}, err
	}
	if err := decodeString(doc, keyTransactionID, &set.TransactionID); err != nil {
		return domain.CredentialSet{}, err
	}

	if raw, ok := doc[keySessionCookies]; ok && !isNull(raw) {
		var cookies map[string]string
		// A malformed cookie object is treated like a missing session, matching how refresh reports it.
		if err := json.Unmarshal(raw, &cookies); err == nil && len(cookies) > 0 {
			set.SessionCookies = domain.SessionCookies(cookies)
		}
	}

	return set, nil
}

func (s *Store) SaveTokens(ctx context.Context, tokens domain.TokenPair) error {
	return s.update(ctx, func(doc map[string]json.RawMessage) error {
		if err := encodeInto(doc, keyAuthToken, tokens.AuthToken); err != nil {
			return err
		}
		return encodeInto(doc, keyContextToken, tokens.ContextToken)
	})
}

func (s *Store) SaveSessionCookies(ctx context.Context, cookies domain.SessionCookies) error {
	return s.update(ctx, func(doc map[string]json.RawMessage) error {
		delete(doc, keyLegacyCookie)
		return encodeInto(doc, keySessionCookies, map[string]string(cookies))
	})
}

func (s *Store) SaveTransactionID(ctx context.Context, transactionID string) error {
	return s.update(ctx, func(doc map[string]json.RawMessage) error {
		if transactionID == "" {
			delete(doc, keyTransactionID)
			return nil
		}
		return encodeInto(doc, keyTransactionID, transactionID)
	})
}

func (s *Store) update(ctx context.Context, mutate func(map[string]json.RawMessage) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readDocument()
	if err != nil {
		return err
	}
	if err := mutate(doc); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return s.writeDocument(doc)
}

func (s *Store) readDocument() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("read credentials file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]json.RawMessage{}, nil
	}

	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode credentials file: %w", err)
	}

	return doc, nil
}

func (s *Store) writeDocument(doc map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(s.path), credentialsDirMode); err != nil {
		return fmt.Errorf("create credentials directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credentials file: %w", err)
	}
	data = append(data, '\n')

	tempFile, err := os.CreateTemp(filepath.Dir(s.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp credentials file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp credentials file: %w", err)
	}

	if err := tempFile.Chmod(credentialsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp credentials file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp credentials file: %w", err)
	}

	if err := os.Rename(tempName, s.path); err != nil {
		return fmt.Errorf("replace credentials file: %w", err)
	}

	cleanup = false

	return nil
}

func decodeString(doc map[string]json.RawMessage, key string, dst *string) error {
	raw, ok := doc[key]
	if !ok || isNull(raw) {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode credentials field %q: %w", key, err)
	}
	return nil
}

func encodeInto(doc map[string]json.RawMessage, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode credentials field %q: %w", key, err)
	}
	doc[key] = raw
	return nil
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
