// Package integration orchestrates the OAuth authorization-code flow for
// third-party SaaS providers: building the authorize redirect, validating
// the callback, exchanging the code, parking the resulting credentials in
// the shared cache for a single retrieval, and loading normalized resource
// lists with them.
package integration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"

	"github.com/Seann-Moser/integrations/state"
	"github.com/Seann-Moser/integrations/store"
)

// Fetcher lists a provider's resources given a stored credential blob.
type Fetcher interface {
	ListItems(ctx context.Context, credentials string) ([]Item, error)
}

// Provider bundles everything the flow needs for one SaaS integration.
type Provider struct {
	Name string
	// OAuth carries the client credentials, endpoints, redirect URI and
	// scopes supplied by configuration.
	OAuth *oauth2.Config
	// AuthCodeOptions are provider-specific static authorize parameters
	// (e.g. notion's owner=user).
	AuthCodeOptions []oauth2.AuthCodeOption
	// PKCE providers get a code verifier bound to the state token.
	PKCE    bool
	Fetcher Fetcher
}

// Service drives the flow for all registered providers. All state lives in
// the injected store; the service itself is stateless and safe for
// concurrent use.
type Service struct {
	store         store.Store
	states        *state.Manager
	providers     map[string]*Provider
	credentialTTL time.Duration
}

// NewService constructs a Service. credentialTTL bounds how long an
// exchanged credential blob may wait in the cache before retrieval.
func NewService(s store.Store, states *state.Manager, credentialTTL time.Duration, providers ...*Provider) *Service {
	m := make(map[string]*Provider, len(providers))
	for _, p := range providers {
		m[p.Name] = p
	}
	return &Service{
		store:         s,
		states:        states,
		providers:     m,
		credentialTTL: credentialTTL,
	}
}

// Provider resolves a registered provider by name.
func (s *Service) Provider(name string) (*Provider, error) {
	p, ok := s.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	return p, nil
}

// CredentialsKey returns the cache key a provider's credential blob is
// parked under between callback and retrieval.
func CredentialsKey(provider, orgID, userID string) string {
	return fmt.Sprintf("%s_credentials:%s:%s", provider, orgID, userID)
}

// Authorize issues a state token for the (user, org) pair and returns the
// provider's authorization URL with the encoded token as the state
// parameter. The provider itself is not contacted.
func (s *Service) Authorize(ctx context.Context, provider, userID, orgID string) (string, error) {
	p, err := s.Provider(provider)
	if err != nil {
		return "", err
	}
	tok, err := s.states.Issue(ctx, p.Name, userID, orgID, p.PKCE)
	if err != nil {
		return "", err
	}
	opts := append([]oauth2.AuthCodeOption{}, p.AuthCodeOptions...)
	if p.PKCE {
		opts = append(opts, oauth2.S256ChallengeOption(tok.CodeVerifier))
	}
	return p.OAuth.AuthCodeURL(tok.Public().Encode(), opts...), nil
}

// Callback validates the returned state, exchanges the authorization code
// and parks the serialized token response in the cache. State validation
// happens strictly before the exchange so a forged callback can never
// trigger an outbound token request.
func (s *Service) Callback(ctx context.Context, provider, code, rawState string) error {
	p, err := s.Provider(provider)
	if err != nil {
		return err
	}
	returned, err := state.Decode(rawState)
	if err != nil {
		return err
	}
	stored, err := s.states.Verify(ctx, p.Name, returned)
	if err != nil {
		return err
	}
	var opts []oauth2.AuthCodeOption
	if p.PKCE {
		opts = append(opts, oauth2.VerifierOption(stored.CodeVerifier))
	}
	tok, err := p.OAuth.Exchange(ctx, code, opts...)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) && rerr.Response != nil {
			return &ExchangeError{Provider: p.Name, StatusCode: rerr.Response.StatusCode, Err: err}
		}
		return &ExchangeError{Provider: p.Name, Err: err}
	}
	blob, err := json.Marshal(tok)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, CredentialsKey(p.Name, stored.OrgID, stored.UserID), string(blob), s.credentialTTL)
}

// Credentials hands the parked blob to the caller exactly once: the read
// deletes it, so a second call returns ErrNoCredentials and the credential
// is afterwards held only in the caller's own session.
func (s *Service) Credentials(ctx context.Context, provider, userID, orgID string) (string, error) {
	p, err := s.Provider(provider)
	if err != nil {
		return "", err
	}
	key := CredentialsKey(p.Name, orgID, userID)
	blob, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrNoCredentials
		}
		return "", err
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return "", err
	}
	return blob, nil
}

// LoadItems fetches the provider's resources with the supplied credential
// blob. Results are produced fresh on every call, never cached.
func (s *Service) LoadItems(ctx context.Context, provider, credentials string) ([]Item, error) {
	p, err := s.Provider(provider)
	if err != nil {
		return nil, err
	}
	return p.Fetcher.ListItems(ctx, credentials)
}

// AccessToken extracts the bearer token from a stored credential blob.
func AccessToken(credentials string) (string, error) {
	var blob struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal([]byte(credentials), &blob); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	if blob.AccessToken == "" {
		return "", ErrInvalidCredentials
	}
	return blob.AccessToken, nil
}
