// Package basic gates requests behind HTTP Basic Authentication with a single,
// statically configured username and password.
package basic

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

const (
	// Realm is the protection space announced in the challenge.
	Realm = "Telegram Files"

	HeaderAuthorization   = "Authorization"
	HeaderWWWAuthenticate = "WWW-Authenticate"

	prefix       = "Basic "
	challenge    = `Basic realm="` + Realm + `"`
	unauthorized = "Unauthorized"
)

var (
	ErrInvalidConfiguration = errors.New("invalid configuration")

	errLineBreak = errors.New("illegal line break in base64 data")
)

// RequestContext is what a host framework has to provide for the gate to
// inspect and answer one in-flight request.
type RequestContext interface {
	Header(name string) string
	RemoteAddr() string
	// Next hands the request to the next stage of the pipeline.
	Next()
	// Respond writes a complete response and ends the request.
	Respond(status int, header http.Header, body string)
}

// RequestLogger is implemented by request contexts that carry their own
// logger, e.g. one tagged with a request id. The gate logs failures there
// instead of on its own logger when it is non-nil.
type RequestLogger interface {
	Logger() *zerolog.Logger
}

// Gate checks the Authorization header of each request against one
// credential pair. A Gate is immutable and safe for concurrent use.
type Gate struct {
	username string
	password string

	log zerolog.Logger
}

type Option func(*Gate)

// WithLogger sets the logger used for failed attempts.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Gate) {
		g.log = l
	}
}

func New(username, password string, opts ...Option) (*Gate, error) {
	if isBlank(username) || isBlank(password) {
		return nil, fmt.Errorf("%w: username and password must not be blank", ErrInvalidConfiguration)
	}

	g := Gate{
		username: username,
		password: password,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&g)
	}

	return &g, nil
}

// Handle lets the request through when it carries the expected credentials,
// otherwise it answers 401 with a Basic challenge. Every kind of failure
// produces the same response.
func (g *Gate) Handle(rc RequestContext) {
	log := g.logger(rc)
	if g.authorized(rc.Header(HeaderAuthorization), log) {
		rc.Next()
		return
	}

	log.Debug().
		Str("remote_addr", rc.RemoteAddr()).
		Msg("unauthorized access attempt")

	header := make(http.Header)
	header.Set(HeaderWWWAuthenticate, challenge)
	rc.Respond(http.StatusUnauthorized, header, unauthorized)
}

// Authorized reports whether header is a Basic credential matching the
// gate's username and password.
func (g *Gate) Authorized(header string) bool {
	return g.authorized(header, &g.log)
}

func (g *Gate) authorized(header string, log *zerolog.Logger) bool {
	if isBlank(header) || !strings.HasPrefix(header, prefix) {
		return false
	}

	payload, err := decode(header[len(prefix):])
	if err != nil {
		log.Debug().Err(err).
			Msg("failed to decode authorization header")
		return false
	}
	if !utf8.Valid(payload) {
		return false
	}

	// only the first colon separates the pair, the password may contain more
	username, password, found := strings.Cut(string(payload), ":")
	if !found {
		return false
	}

	return username == g.username && password == g.password
}

func (g *Gate) logger(rc RequestContext) *zerolog.Logger {
	if rl, ok := rc.(RequestLogger); ok {
		if l := rl.Logger(); l != nil {
			return l
		}
	}
	return &g.log
}

func decode(s string) ([]byte, error) {
	// the encoding package skips line breaks, a header value must not carry them
	if strings.ContainsAny(s, "\r\n") {
		return nil, errLineBreak
	}
	if !strings.Contains(s, "=") {
		return base64.RawStdEncoding.DecodeString(s)
	}
	return base64.StdEncoding.DecodeString(s)
}

func isBlank(s string) bool {
	return strings.TrimFunc(s, isBlankRune) == ""
}

// isBlankRune also counts the invisible fillers and marks that render as
// nothing, so a credential made only of them is blank.
func isBlankRune(r rune) bool {
	switch r {
	case '\u0000', '\u001c', '\u001d', '\u001e', '\u001f',
		'\u180e', '\u202a', '\u2800', '\u3164', '\ufeff':
		return true
	}
	return unicode.IsSpace(r)
}
