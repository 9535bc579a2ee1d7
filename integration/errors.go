package integration

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownProvider means the request named a provider that was never
	// registered (usually missing client credentials in the environment).
	ErrUnknownProvider = errors.New("integration: unknown provider")
	// ErrNoCredentials means the credential blob expired or was already
	// consumed; the flow must be restarted by the user.
	ErrNoCredentials = errors.New("integration: no credentials found")
	// ErrInvalidCredentials means a supplied blob carries no access token.
	ErrInvalidCredentials = errors.New("integration: credentials missing access token")
)

// ExchangeError reports a rejected authorization-code exchange. Codes are
// single-use, so the exchange is never retried.
type ExchangeError struct {
	Provider   string
	StatusCode int // zero when the request never completed
	Err        error
}

func (e *ExchangeError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("integration: %s token exchange failed with status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("integration: %s token exchange failed: %v", e.Provider, e.Err)
}

func (e *ExchangeError) Unwrap() error { return e.Err }

// FetchError reports a provider API error during a resource load. Any
// failing resource kind aborts the whole fetch; partial lists are never
// returned.
type FetchError struct {
	Provider   string
	Kind       string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("integration: %s %s fetch failed with status %d", e.Provider, e.Kind, e.StatusCode)
}
