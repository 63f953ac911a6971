package configuration

import (
	"fmt"
	"net/http"

	"github.com/rs/cors"
	"github.com/spf13/pflag"
)

type CORS struct {
	AllowedOrigins   []string `mapstructure:"allowedOrigins" yaml:"allowedOrigins"`
	AllowedHeaders   []string `mapstructure:"allowedHeaders" yaml:"allowedHeaders"`
	MaxAge           int      `mapstructure:"maxAge" yaml:"maxAge"`
	AllowCredentials bool     `mapstructure:"allowCredentials" yaml:"allowCredentials"`
}

func (c *CORS) setFlags(fs *pflag.FlagSet) {
	fs.StringSlice("cors-allowed-origins", []string{}, `Comma separated list of allowed origins.
An allowed origin may be a domain name, or a wildcard (*).
A domain name may contain a wildcard (*).
CORS handling is disabled when no origins are given.`)
	fs.StringSlice("cors-allowed-headers", []string{}, `Comma separated list of allowed headers.
An allowed header may be a header name, or a wildcard (*).
The Authorization header is always allowed.`)
	fs.Int("cors-max-age", 0, "How long, in seconds, the preflight results can be cached by the client.")
	fs.Bool("cors-allow-credentials", false, `Allow credentials like cookies and basic auth headers for CORS requests.`)
}

func (c *CORS) bindings() []binding {
	return []binding{
		{"cors.allowedOrigins", "cors-allowed-origins"},
		{"cors.allowedHeaders", "cors-allowed-headers"},
		{"cors.maxAge", "cors-max-age"},
		{"cors.allowCredentials", "cors-allow-credentials"},
	}
}

func (c *CORS) validate() error {
	if c.MaxAge < 0 {
		return fmt.Errorf("invalid cors max age: %d", c.MaxAge)
	}
	return nil
}

// Options returns the rs/cors options for c, or nil if CORS is not configured.
func (c *CORS) Options() *cors.Options {
	if len(c.AllowedOrigins) == 0 {
		return nil
	}

	headers := append([]string{"Authorization"}, c.AllowedHeaders...)
	return &cors.Options{
		AllowedOrigins:   c.AllowedOrigins,
		AllowedHeaders:   headers,
		AllowedMethods:   []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodDelete},
		MaxAge:           c.MaxAge,
		AllowCredentials: c.AllowCredentials,
	}
}
