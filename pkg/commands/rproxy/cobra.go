package rproxy

import (
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/rs/zerolog/hlog"
	"github.com/spf13/cobra"
	"github.com/telegram-files/gate/pkg/auth/basic"
	"github.com/telegram-files/gate/pkg/commands"
	"github.com/telegram-files/gate/pkg/configuration"
)

func New(config *configuration.Root) *Cmd {
	return &Cmd{
		config: config,
	}
}

type Cmd struct {
	cobraCommand *cobra.Command
	config       *configuration.Root
}

func (c *Cmd) Cobra() *cobra.Command {
	if c.cobraCommand != nil {
		return c.cobraCommand
	}

	c.cobraCommand = &cobra.Command{
		Use:     "reverse-proxy [url]",
		Aliases: []string{"rproxy"},
		Short:   "Reverse proxy authenticated requests to an upstream server",
		Long: `Reverse proxy authenticated requests to an upstream server, such as the Telegram Files web app.
If no url is given, the upstream from the configuration is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: c.setHandlerFunc,
	}

	if err := c.config.InitReverseProxy(c.cobraCommand); err != nil {
		panic(err)
	}

	return c.cobraCommand
}

func (c *Cmd) setHandlerFunc(cmd *cobra.Command, args []string) error {
	config := &c.config.ReverseProxy
	if 0 < len(args) {
		config.Upstream = args[0]
	}

	upstream, err := config.UpstreamURL()
	if err != nil {
		return err
	}

	commands.SetHTTPHandlerFunc(cmd.Context(), Handler(upstream, config))
	return nil
}

// Handler proxies requests to upstream. Request headers from config are
// added first, and the Authorization header is dropped unless the config
// asks for credentials to be forwarded.
func Handler(upstream *url.URL, config *configuration.ReverseProxy) http.HandlerFunc {
	rp := httputil.NewSingleHostReverseProxy(upstream)
	rp.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		hlog.FromRequest(r).Error().Err(err).
			Str("upstream", upstream.Host).
			Msg("proxy error")
		w.WriteHeader(http.StatusBadGateway)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		r = r.Clone(r.Context())
		if !config.ForwardCredentials {
			r.Header.Del(basic.HeaderAuthorization)
		}
		for k, v := range config.RequestHeaders {
			r.Header[k] = v
		}
		if config.MatchHost {
			r.Host = upstream.Host
		}

		rp.ServeHTTP(w, r)
	}
}
