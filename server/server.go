// Package server exposes the integration flow over HTTP. Four endpoints
// per provider drive the popup-based connect experience: authorize,
// oauth2callback, credentials and load.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Seann-Moser/integrations/integration"
)

// Server dispatches HTTP requests to the integration service.
type Server struct {
	svc *integration.Service
}

// New constructs a Server.
func New(svc *integration.Service) *Server {
	return &Server{svc: svc}
}

// Handler returns the routed HTTP handler, wrapped with access logging
// and request metrics.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /integrations/{provider}/authorize", s.Authorize)
	mux.HandleFunc("GET /integrations/{provider}/oauth2callback", s.Callback)
	mux.HandleFunc("POST /integrations/{provider}/credentials", s.Credentials)
	mux.HandleFunc("POST /integrations/{provider}/load", s.Load)
	mux.HandleFunc("GET /healthz", s.Healthz)
	mux.Handle("GET /metrics", promhttp.Handler())
	return s.withAccessLog(mux)
}
