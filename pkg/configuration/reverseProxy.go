package configuration

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/pflag"
	gatehttp "github.com/telegram-files/gate/pkg/net/http"
)

type ReverseProxy struct {
	Upstream           string   `mapstructure:"upstream" yaml:"upstream"`
	MatchHost          bool     `mapstructure:"matchHost" yaml:"matchHost"`
	ForwardCredentials bool     `mapstructure:"forwardCredentials" yaml:"forwardCredentials"`
	RequestHeader      []string `mapstructure:"requestHeader" yaml:"requestHeader"`

	// RequestHeaders is RequestHeader parsed, set by hydrate.
	RequestHeaders http.Header `mapstructure:"-" yaml:"-"`
}

func (c *ReverseProxy) setFlags(fs *pflag.FlagSet) {
	fs.String("upstream", "", `URL of the upstream server. Overridden by the positional argument.`)
	fs.Bool("match-host", false, `The 'Host' header will be set to match the host being reverse-proxied to.`)
	fs.Bool("forward-credentials", false, `Forward the client's Authorization header to the upstream server.
By default it is removed once the request has been authenticated.`)
	fs.StringSlice("request-header", nil, `Header to send with the proxied request. Can be specified multiple times.
Format: <HEADER NAME>=<HEADER VALUE>`)
}

func (c *ReverseProxy) bindings() []binding {
	return []binding{
		{"reverseProxy.upstream", "upstream"},
		{"reverseProxy.matchHost", "match-host"},
		{"reverseProxy.forwardCredentials", "forward-credentials"},
		{"reverseProxy.requestHeader", "request-header"},
	}
}

func (c *ReverseProxy) hydrate() error {
	hdr, err := gatehttp.HeaderFromStringSlice(c.RequestHeader)
	if err != nil {
		return err
	}
	c.RequestHeaders = hdr
	return nil
}

func (c *ReverseProxy) validate() error {
	if c.Upstream == "" {
		return nil
	}
	_, err := c.UpstreamURL()
	return err
}

func (c *ReverseProxy) UpstreamURL() (*url.URL, error) {
	if c.Upstream == "" {
		return nil, errors.New("no upstream given")
	}
	u, err := url.Parse(c.Upstream)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid upstream %q: scheme must be http or https", c.Upstream)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid upstream %q: missing host", c.Upstream)
	}
	return u, nil
}
