package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/bnema/halo-bridge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLoadMissingFileReturnsEmptySet(t *testing.T) {
	t.Parallel()

	store, err := NewStore(filepath.Join(t.TempDir(), "credentials.json"))
	require.NoError(t, err)

	set, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.CredentialSet{}, set)
	assert.False(t, set.HasSession())
}

func TestStoreSaveTokensPreservesOtherKeys(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "authToken": "old-auth",
  "contextToken": "old-context",
  "transactionId": "txn-prefix",
  "sessionCookies": {"__Secure-next-auth.session-token": "sess"},
  "custom": {"keep": true}
}`), 0o600))

	store, err := NewStore(path)
	require.NoError(t, err)

	require.NoError(t, store.SaveTokens(context.Background(), domain.TokenPair{AuthToken: "A2", ContextToken: "C2"}))

	set, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.TokenPair{AuthToken: "A2", ContextToken: "C2"}, set.Tokens)
	assert.Equal(t, "txn-prefix", set.TransactionID)
	assert.Equal(t, domain.SessionCookies{domain.SessionTokenCookie: "sess"}, set.SessionCookies)

	raw := readRaw(t, path)
	assert.JSONEq(t, `{"keep": true}`, string(raw["custom"]))
}

func TestStoreSaveSessionCookiesReplacesSetAndDropsLegacyKey(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "authToken": "A1",
  "contextToken": "C1",
  "sessionCookie": "legacy",
  "sessionCookies": {"stale": "value"}
}`), 0o600))

	store, err := NewStore(path)
	require.NoError(t, err)

	cookies := domain.SessionCookies{domain.SessionTokenCookie: "fresh", "TE1TX0FVVEg": "lms"}
	require.NoError(t, store.SaveSessionCookies(context.Background(), cookies))

	set, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cookies, set.SessionCookies)
	assert.Equal(t, domain.TokenPair{AuthToken: "A1", ContextToken: "C1"}, set.Tokens)

	raw := readRaw(t, path)
	assert.NotContains(t, raw, "sessionCookie")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(credentialsFileMode), info.Mode().Perm())
}

func TestStoreSaveTransactionIDSetsAndClearsPrefix(t *testing.T) {
	t.Parallel()

	store, err := NewStore(filepath.Join(t.TempDir(), "credentials.json"))
	require.NoError(t, err)
	require.NoError(t, store.SaveTokens(context.Background(), domain.TokenPair{AuthToken: "A1", ContextToken: "C1"}))

	require.NoError(t, store.SaveTransactionID(context.Background(), "txn"))
	set, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "txn", set.TransactionID)
	assert.Equal(t, "A1", set.Tokens.AuthToken)

	require.NoError(t, store.SaveTransactionID(context.Background(), ""))
	set, err = store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, set.TransactionID)
}

func TestStoreLoadRejectsCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))

	store, err := NewStore(path)
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode credentials file")
}

func TestStoreIgnoresMalformedCookieObject(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"authToken":"A","sessionCookies":"not-an-object"}`), 0o600))

	store, err := NewStore(path)
	require.NoError(t, err)

	set, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, set.HasSession())
	assert.Equal(t, "A", set.Tokens.AuthToken)
}

func TestStoreConcurrentWritersDoNotCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "credentials.json")
	first, err := NewStore(path)
	require.NoError(t, err)
	second, err := NewStore(path)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, first.SaveTokens(context.Background(), domain.TokenPair{AuthToken: "A", ContextToken: "C"}))
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, second.SaveSessionCookies(context.Background(), domain.SessionCookies{domain.SessionTokenCookie: "S"}))
		}()
	}
	wg.Wait()

	set, err := first.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A", set.Tokens.AuthToken)
	assert.True(t, set.SessionCookies.HasSessionToken())
}

func TestStoreHonoursCanceledContext(t *testing.T) {
	t.Parallel()

	store, err := NewStore(filepath.Join(t.TempDir(), "credentials.json"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, store.SaveTokens(ctx, domain.TokenPair{AuthToken: "A", ContextToken: "C"}), context.Canceled)
	_, err = store.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func readRaw(t *testing.T, path string) map[string]json.RawMessage {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	raw := map[string]json.RawMessage{}
	require.NoError(t, json.Unmarshal(data, &raw))
	return raw
}
