package httpserver

import (
	"net/http"
	"time"

	"sitetrack-go/internal/config"
)

// New builds the HTTP server. Only ReadHeaderTimeout is set here: per-request
// deadlines come from the router's timeout middleware, and the live websocket
// hijacks its connection so server-level read/write timeouts would not apply
// to it anyway. IdleTimeout bounds kept-alive connections between requests.
func New(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
