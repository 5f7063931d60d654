package domain

import (
	"sort"
	"strings"
)

// SessionTokenCookie is the long-lived next-auth cookie that acts as the refresh credential.
const SessionTokenCookie = "__Secure-next-auth.session-token"

// SessionCookieNames lists every cookie kept from the identity endpoint.
var SessionCookieNames = []string{
	"__Host-next-auth.csrf-token",
	"__Secure-next-auth.callback-url",
	SessionTokenCookie,
	"TE1TX0FVVEg",     // LMS_AUTH
	"TE1TX0NPTlRFWFQ", // LMS_CONTEXT
}

type TokenPair struct {
	AuthToken    string
	ContextToken string
}

func (p TokenPair) Complete() bool {
	return strings.TrimSpace(p.AuthToken) != "" && strings.TrimSpace(p.ContextToken) != ""
}

type SessionCookies map[string]string

// Header renders the cookies as a Cookie header value, names sorted.
func (c SessionCookies) Header() string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, name+"="+c[name])
	}

	return strings.Join(pairs, "; ")
}

func (c SessionCookies) HasSessionToken() bool {
	return strings.TrimSpace(c[SessionTokenCookie]) != ""
}

func IsSessionCookieName(name string) bool {
	for _, known := range SessionCookieNames {
		if known == name {
			return true
		}
	}
	return false
}

type CredentialSet struct {
	Tokens         TokenPair
	TransactionID  string
	SessionCookies SessionCookies
}

func (c CredentialSet) HasSession() bool {
	return len(c.SessionCookies) > 0
}

// SessionData is the canonical session document returned by the identity endpoint.
type SessionData struct {
	UserID   string
	Username string
	Expires  string
	Tokens   TokenPair
}
