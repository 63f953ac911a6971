package http

import (
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/telegram-files/gate/pkg/auth/basic"
)

const HeaderRequestID = "X-Request-ID"

type Middleware func(http.HandlerFunc) http.HandlerFunc

// Chain returns a Middleware that applies mw first and m second,
// m therefore sees the request before mw does.
func (mw Middleware) Chain(m Middleware) Middleware {
	if mw == nil {
		return m
	}
	return func(hf http.HandlerFunc) http.HandlerFunc {
		hf = mw(hf)
		return m(hf)
	}
}

// Handler adapts mw to the func(http.Handler) http.Handler shape
// used by gorilla/mux and chi.
func (mw Middleware) Handler(next http.Handler) http.Handler {
	if mw == nil {
		return next
	}
	return mw(next.ServeHTTP)
}

// requestContext exposes a net/http request to the gate.
type requestContext struct {
	w    http.ResponseWriter
	r    *http.Request
	next http.HandlerFunc
}

func (c *requestContext) Header(name string) string {
	return c.r.Header.Get(name)
}

func (c *requestContext) RemoteAddr() string {
	return c.r.RemoteAddr
}

func (c *requestContext) Next() {
	c.next(c.w, c.r)
}

// Logger is the request logger installed by AccessLogMiddleware, nil without one.
func (c *requestContext) Logger() *zerolog.Logger {
	l := zerolog.Ctx(c.r.Context())
	if l.GetLevel() == zerolog.Disabled {
		return nil
	}
	return l
}

func (c *requestContext) Respond(status int, header http.Header, body string) {
	h := c.w.Header()
	for k, v := range header {
		h[k] = v
	}
	h.Set("Content-Type", "text/plain; charset=utf-8")
	h.Set("X-Content-Type-Options", "nosniff")
	c.w.WriteHeader(status)
	_, _ = io.WriteString(c.w, body)
}

func BasicAuthMiddleware(g *basic.Gate) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			g.Handle(&requestContext{w: w, r: r, next: next})
		}
	}
}

// BasicAuthHandler is BasicAuthMiddleware for routers that take
// func(http.Handler) http.Handler, e.g. mux.Router.Use or chi.Router.Use.
func BasicAuthHandler(g *basic.Gate) func(http.Handler) http.Handler {
	return BasicAuthMiddleware(g).Handler
}

// RequestIDMiddleware tags every request with an id, reusing the one sent
// by the client if present. The id is echoed back and added to the request logger.
func RequestIDMiddleware() Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(HeaderRequestID)
			if id == "" {
				id = uuid.NewString()
				r.Header.Set(HeaderRequestID, id)
			}
			w.Header().Set(HeaderRequestID, id)

			zerolog.Ctx(r.Context()).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("request_id", id)
			})
			next(w, r)
		}
	}
}

// AccessLogMiddleware puts a copy of log in each request's context and
// writes one entry per completed request.
func AccessLogMiddleware(log zerolog.Logger) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		h := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
			hlog.FromRequest(r).Info().
				Str("method", r.Method).
				Stringer("url", r.URL).
				Str("remote_addr", r.RemoteAddr).
				Int("status", status).
				Int("size", size).
				Dur("duration", duration).
				Msg("request")
		})(next)
		return hlog.NewHandler(log)(h).ServeHTTP
	}
}

// LimitReaderMiddleware caps request bodies at limit bytes. A limit of 0
// or less disables the cap.
func LimitReaderMiddleware(limit int64) Middleware {
	if limit <= 0 {
		return func(hf http.HandlerFunc) http.HandlerFunc {
			return hf
		}
	}
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next(w, r)
		}
	}
}

func MiddlewareShim(mw func(http.Handler) http.Handler) Middleware {
	if mw == nil {
		return func(next http.HandlerFunc) http.HandlerFunc {
			return next
		}
	}
	return func(next http.HandlerFunc) http.HandlerFunc {
		return mw(http.HandlerFunc(next)).ServeHTTP
	}
}
