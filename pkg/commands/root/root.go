package root

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/telegram-files/gate/pkg/auth/basic"
	"github.com/telegram-files/gate/pkg/commands"
	configcmd "github.com/telegram-files/gate/pkg/commands/config"
	"github.com/telegram-files/gate/pkg/commands/rproxy"
	"github.com/telegram-files/gate/pkg/commands/serve"
	"github.com/telegram-files/gate/pkg/commands/version"
	"github.com/telegram-files/gate/pkg/configuration"
	"github.com/telegram-files/gate/pkg/log"
	gatehttp "github.com/telegram-files/gate/pkg/net/http"
)

type rootCommand struct {
	cobra.Command

	config  *configuration.Root
	handler http.HandlerFunc

	// listening is told the address once the listener is up.
	listening func(net.Addr)
}

func newRootCommand() (*rootCommand, error) {
	root := rootCommand{
		config: configuration.EmptyRoot(),
	}
	root.Use = "tfgate"
	root.Short = "Basic authentication gate for Telegram Files"
	root.Long = `Serve downloaded Telegram Files, or proxy the Telegram Files web app, behind HTTP Basic Authentication.
Requests without the configured username and password receive an HTTP 401 Unauthorized response.`
	root.SilenceUsage = true
	root.SilenceErrors = true
	root.PersistentPreRunE = root.loadConfig
	root.PersistentPostRunE = root.runServer

	if err := root.config.Init(&root.Command); err != nil {
		return nil, err
	}
	root.AddCommand(subCommands(root.config)...)

	return &root, nil
}

func ExecuteContext(ctx context.Context) error {
	root, err := newRootCommand()
	if err != nil {
		return err
	}

	if err = root.execute(ctx); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).
			Msg("failed to execute root command")
	}

	return err
}

// CobraCommand returns the fully configured command tree, for documentation generators.
func CobraCommand() (*cobra.Command, error) {
	root, err := newRootCommand()
	if err != nil {
		return nil, err
	}
	return &root.Command, nil
}

func (r *rootCommand) execute(ctx context.Context) error {
	ctx = commands.WithHTTPHandlerFuncSetter(ctx, &r.handler)
	return r.ExecuteContext(ctx)
}

func subCommands(config *configuration.Root) []*cobra.Command {
	return []*cobra.Command{
		serve.New(config).Cobra(),
		rproxy.New(config).Cobra(),
		configcmd.New(config).Cobra(),
		version.New().Cobra(),
	}
}

func (r *rootCommand) loadConfig(cmd *cobra.Command, args []string) error {
	return r.config.Load()
}

// runServer serves the handler set by a subcommand behind the gate.
// Subcommands that don't set a handler don't start a server.
func (r *rootCommand) runServer(cmd *cobra.Command, args []string) error {
	if r.handler == nil {
		return nil
	}

	var (
		ctx    = cmd.Context()
		config = r.config
		logger = log.Logger()
	)

	if err := config.Prepare(); err != nil {
		return err
	}

	gate, err := basic.New(config.BasicAuth.Username, config.BasicAuth.Password,
		basic.WithLogger(*logger))
	if err != nil {
		return fmt.Errorf("unable to create authentication gate: %w", err)
	}

	server := gatehttp.NewServer(ctx, r.handler, config.Server.HealthPath, middleware(gate, config, *logger))
	server.TLSCert = config.Server.TLSCert
	server.TLSKey = config.Server.TLSKey

	l, err := net.Listen("tcp", net.JoinHostPort(config.Server.Host, strconv.Itoa(config.Server.Port)))
	if err != nil {
		return err
	}
	defer l.Close()

	if config.Discovery.MDNS {
		shutdown, err := advertise(config.Discovery.InstanceName, l.Addr())
		if err != nil {
			return fmt.Errorf("unable to advertise over mDNS: %w", err)
		}
		defer shutdown()
	}

	scheme := "http"
	if server.TLSCert != "" {
		scheme = "https"
	}
	logger.Info().
		Str("address", l.Addr().String()).
		Msg("listening")
	fmt.Fprintf(cmd.ErrOrStderr(), "listening on %s://%s\n", scheme, l.Addr())
	if r.listening != nil {
		r.listening(l.Addr())
	}

	if err := server.Serve(ctx, l); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

// middleware builds the chain every gated request goes through:
// access log, request id, CORS, the gate, then the body size limit.
func middleware(gate *basic.Gate, config *configuration.Root, logger zerolog.Logger) gatehttp.Middleware {
	var corsMW func(http.Handler) http.Handler
	if copts := config.CORS.Options(); copts != nil {
		corsMW = cors.New(*copts).Handler
	}

	var mw gatehttp.Middleware
	return mw.
		Chain(gatehttp.LimitReaderMiddleware(config.Server.MaxReadBytes)).
		Chain(gatehttp.BasicAuthMiddleware(gate)).
		Chain(gatehttp.MiddlewareShim(corsMW)).
		Chain(gatehttp.RequestIDMiddleware()).
		Chain(gatehttp.AccessLogMiddleware(logger))
}
