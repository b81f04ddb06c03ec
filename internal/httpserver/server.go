package httpserver

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"
)

// ShutdownTimeout bounds how long graceful shutdown waits for in-flight
// requests before giving up.
const ShutdownTimeout = 10 * time.Second

// Server wraps http.Server with the timeouts this service runs with.
type Server struct {
	inner *http.Server
}

// New constructs a server listening on the provided port.
func New(port int, handler http.Handler) *Server {
	return &Server{
		inner: &http.Server{
			Addr:              net.JoinHostPort("", strconv.Itoa(port)),
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Start begins serving HTTP traffic and blocks until the listener closes.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully terminates the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
