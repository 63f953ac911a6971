package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

const (
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

type Server struct {
	server http.Server

	TLSCert, TLSKey string
}

// NewServer routes every path through mw and then handler.
// If healthPath is set, GET and HEAD requests to it are answered with 200
// without going through mw.
func NewServer(ctx context.Context, handler http.HandlerFunc, healthPath string, mw ...Middleware) *Server {
	s := Server{
		server: http.Server{
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
	s.server.BaseContext = func(l net.Listener) context.Context {
		return ctx
	}

	// apply middleware
	for _, mw := range mw {
		if mw != nil {
			handler = mw(handler)
		}
	}

	r := mux.NewRouter()
	if healthPath != "" {
		r.Path(healthPath).
			Methods(http.MethodGet, http.MethodHead).
			HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
	}
	r.PathPrefix("/").HandlerFunc(handler)
	s.server.Handler = r

	return &s
}

func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Serve accepts connections on l until ctx is canceled, then shuts the server down gracefully.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	errChan := make(chan error, 1)
	go func() {
		if s.TLSCert != "" && s.TLSKey != "" {
			errChan <- s.server.ServeTLS(l, s.TLSCert, s.TLSKey)
		} else {
			errChan <- s.server.Serve(l)
		}
	}()

	select {
	case err := <-errChan:
		return cleanServerShutdownErr(err)
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(sctx); err != nil {
		return cleanServerShutdownErr(err)
	}

	return cleanServerShutdownErr(<-errChan)
}

func cleanServerShutdownErr(err error) error {
	if errors.Is(err, http.ErrServerClosed) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return nil
	}

	return err
}
