package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Seann-Moser/integrations/integration"
	"github.com/Seann-Moser/integrations/state"
)

// closeWindowHTML lets the popup that drove the provider login close
// itself; the opener polls for closure and then fetches the credentials.
const closeWindowHTML = `<html><script>window.close();</script></html>`

// Authorize issues a state token and returns the provider redirect URL for
// the front end to open in a popup.
func (s *Server) Authorize(w http.ResponseWriter, r *http.Request) {
	provider := r.PathValue("provider")
	userID, orgID, ok := formPair(w, r)
	if !ok {
		return
	}
	authURL, err := s.svc.Authorize(r.Context(), provider, userID, orgID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	flowsTotal.WithLabelValues(provider, "authorize", "ok").Inc()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(authURL))
}

// Callback validates the provider redirect, exchanges the code and parks
// the credentials, then serves a page that closes the popup.
func (s *Server) Callback(w http.ResponseWriter, r *http.Request) {
	provider := r.PathValue("provider")
	q := r.URL.Query()
	if errParam := q.Get("error"); errParam != "" {
		flowsTotal.WithLabelValues(provider, "callback", "denied").Inc()
		http.Error(w, "authorization denied", http.StatusBadRequest)
		return
	}
	code := q.Get("code")
	rawState := q.Get("state")
	if code == "" || rawState == "" {
		http.Error(w, "missing code or state", http.StatusBadRequest)
		return
	}
	if err := s.svc.Callback(r.Context(), provider, code, rawState); err != nil {
		flowsTotal.WithLabelValues(provider, "callback", "error").Inc()
		writeError(w, r, err)
		return
	}
	flowsTotal.WithLabelValues(provider, "callback", "ok").Inc()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(closeWindowHTML))
}

// Credentials hands the parked credential blob to the caller exactly once.
func (s *Server) Credentials(w http.ResponseWriter, r *http.Request) {
	provider := r.PathValue("provider")
	userID, orgID, ok := formPair(w, r)
	if !ok {
		return
	}
	blob, err := s.svc.Credentials(r.Context(), provider, userID, orgID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(blob))
}

// Load fetches the provider's resources with the supplied credentials and
// returns the normalized item list.
func (s *Server) Load(w http.ResponseWriter, r *http.Request) {
	provider := r.PathValue("provider")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	credentials := r.Form.Get("credentials")
	if credentials == "" {
		http.Error(w, "missing credentials", http.StatusBadRequest)
		return
	}
	items, err := s.svc.LoadItems(r.Context(), provider, credentials)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if items == nil {
		items = []integration.Item{}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(items); err != nil {
		slog.Error("encoding items", "provider", provider, "err", err)
	}
}

// Healthz reports liveness.
func (s *Server) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func formPair(w http.ResponseWriter, r *http.Request) (userID, orgID string, ok bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return "", "", false
	}
	userID = r.Form.Get("user_id")
	orgID = r.Form.Get("org_id")
	if userID == "" || orgID == "" {
		http.Error(w, "missing user_id or org_id", http.StatusBadRequest)
		return "", "", false
	}
	return userID, orgID, true
}

// writeError maps flow errors onto statuses with generic messages: state
// and credential problems are the client's to fix (4xx), provider-side
// exchange or fetch failures surface as 502. Nothing is retried here;
// OAuth codes are single-use, so the user restarts the flow instead.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		xerr *integration.ExchangeError
		ferr *integration.FetchError
	)
	switch {
	case errors.Is(err, integration.ErrUnknownProvider):
		http.Error(w, "unknown provider", http.StatusNotFound)
	case errors.Is(err, state.ErrMalformedState):
		http.Error(w, "malformed state", http.StatusBadRequest)
	case errors.Is(err, state.ErrStateMismatch):
		http.Error(w, "state does not match", http.StatusBadRequest)
	case errors.Is(err, integration.ErrNoCredentials):
		http.Error(w, "no credentials found", http.StatusBadRequest)
	case errors.Is(err, integration.ErrInvalidCredentials):
		http.Error(w, "invalid credentials", http.StatusBadRequest)
	case errors.As(err, &xerr):
		slog.Error("token exchange failed", "provider", xerr.Provider, "status", xerr.StatusCode)
		http.Error(w, "token exchange failed", http.StatusBadGateway)
	case errors.As(err, &ferr):
		slog.Error("resource fetch failed", "provider", ferr.Provider, "kind", ferr.Kind, "status", ferr.StatusCode)
		http.Error(w, "resource fetch failed", http.StatusBadGateway)
	default:
		slog.Error("request failed", "path", r.URL.Path, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
