// Package state issues and verifies the one-time tokens round-tripped
// through a provider's authorization redirect. A token binds a random
// secret to a (user, organization) pair so the callback can only complete
// the attempt it was issued for.
package state

import (
	"context"
	"crypto/hmac"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Seann-Moser/integrations/store"
)

var (
	// ErrMalformedState means the state parameter could not be decoded.
	ErrMalformedState = errors.New("state: malformed state parameter")
	// ErrStateMismatch means no matching token was issued for the pair
	// within the TTL, or the secrets differ. Treated as CSRF/replay.
	ErrStateMismatch = errors.New("state: state does not match")
)

// Token is the payload serialized into the `state` query parameter. The
// secret is carried under the json key "state" for compatibility with the
// front end. CodeVerifier is held server-side only for PKCE providers and
// must be stripped (see Public) before the token leaves the process.
type Token struct {
	Secret       string `json:"state"`
	UserID       string `json:"user_id"`
	OrgID        string `json:"org_id"`
	CodeVerifier string `json:"code_verifier,omitempty"`
}

// Encode serializes the token for use as a state parameter or cache value.
func (t Token) Encode() string {
	b, _ := json.Marshal(t)
	return string(b)
}

// Public returns a copy safe to embed in a redirect URL.
func (t Token) Public() Token {
	t.CodeVerifier = ""
	return t
}

// Decode parses an encoded state parameter.
func Decode(raw string) (Token, error) {
	var t Token
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return Token{}, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	if t.Secret == "" || t.UserID == "" || t.OrgID == "" {
		return Token{}, ErrMalformedState
	}
	return t, nil
}

// Manager stores pending tokens in the shared cache with a fixed TTL.
type Manager struct {
	store store.Store
	ttl   time.Duration
}

// NewManager constructs a Manager. ttl bounds how long an authorization
// attempt may stay pending before the callback is rejected.
func NewManager(s store.Store, ttl time.Duration) *Manager {
	return &Manager{store: s, ttl: ttl}
}

// Key returns the cache key for a pending token.
func Key(provider, orgID, userID string) string {
	return fmt.Sprintf("%s_state:%s:%s", provider, orgID, userID)
}

// Issue creates a token for one authorization attempt and registers it
// under the (provider, org, user) key, superseding any in-flight attempt
// for the same pair. withVerifier additionally generates PKCE material.
func (m *Manager) Issue(ctx context.Context, provider, userID, orgID string, withVerifier bool) (Token, error) {
	secret, err := NewSecret()
	if err != nil {
		return Token{}, err
	}
	t := Token{Secret: secret, UserID: userID, OrgID: orgID}
	if withVerifier {
		v, err := NewCodeVerifier()
		if err != nil {
			return Token{}, err
		}
		t.CodeVerifier = v
	}
	if err := m.store.Set(ctx, Key(provider, orgID, userID), t.Encode(), m.ttl); err != nil {
		return Token{}, err
	}
	return t, nil
}

// Verify checks a token returned by the provider against the stored one
// and consumes it. Only the secrets are compared, not the whole encoded
// blob, so field reordering during the round-trip is harmless. On success
// the stored token is returned; it carries the PKCE verifier when one was
// issued.
func (m *Manager) Verify(ctx context.Context, provider string, returned Token) (Token, error) {
	key := Key(provider, returned.OrgID, returned.UserID)
	raw, err := m.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Token{}, ErrStateMismatch
		}
		return Token{}, err
	}
	var stored Token
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return Token{}, fmt.Errorf("state: corrupt stored token: %w", err)
	}
	if !hmac.Equal([]byte(stored.Secret), []byte(returned.Secret)) {
		return Token{}, ErrStateMismatch
	}
	// Single-use: a verified token must never validate a second callback.
	if err := m.store.Delete(ctx, key); err != nil {
		return Token{}, err
	}
	return stored, nil
}
