package configuration

import (
	"fmt"

	"github.com/spf13/pflag"
)

type Server struct {
	Host        string `mapstructure:"host" yaml:"host"`
	Port        int    `mapstructure:"port" yaml:"port"`
	TLSCert     string `mapstructure:"tlsCert" yaml:"tlsCert"`
	TLSKey      string `mapstructure:"tlsKey" yaml:"tlsKey"`
	HealthPath  string `mapstructure:"healthPath" yaml:"healthPath"`
	MaxReadSize string `mapstructure:"maxReadSize" yaml:"maxReadSize"`

	// MaxReadBytes is MaxReadSize in bytes, set by hydrate.
	MaxReadBytes int64 `mapstructure:"-" yaml:"-"`
}

func (c *Server) setFlags(fs *pflag.FlagSet) {
	fs.String("host", "", `Host specifies the TCP address for the server to listen on.
See also: -p, --port`)
	fs.IntP("port", "p", 8080, `Port to bind to. 0 picks a free port.
See also: --host`)
	fs.String("tls-cert", "", `Certificate file to use for HTTPS.
Key file must also be provided using the --tls-key flag.`)
	fs.String("tls-key", "", `Key file to use for HTTPS.
Cert file must also be provided using the --tls-cert flag.`)
	fs.String("health-path", "", `Path answered with 200 OK without authentication, e.g. /healthz.
Disabled when empty.`)
	fs.String("max-read-size", "", `Maximum read size for incoming request bodies. Empty or 0 means no limit.
Format is a number followed by a unit of measurement.
Valid units are: b, B,
	Kb, KB, KiB,
	Mb, MB, MiB,
	Gb, GB, GiB,
	Tb, TB, TiB
Example: 10MB`)
}

func (c *Server) bindings() []binding {
	return []binding{
		{"server.host", "host"},
		{"server.port", "port"},
		{"server.tlsCert", "tls-cert"},
		{"server.tlsKey", "tls-key"},
		{"server.healthPath", "health-path"},
		{"server.maxReadSize", "max-read-size"},
	}
}

func (c *Server) hydrate() error {
	n, err := ParseSizeString(c.MaxReadSize)
	if err != nil {
		return fmt.Errorf("invalid max-read-size %q: %w", c.MaxReadSize, err)
	}
	c.MaxReadBytes = n
	return nil
}

func (c *Server) validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.MaxReadBytes < 0 {
		return fmt.Errorf("invalid max-read-size: %d bytes", c.MaxReadBytes)
	}

	if c.TLSCert != "" && c.TLSKey == "" {
		return fmt.Errorf("tls-key is required when tls-cert is set")
	}
	if c.TLSKey != "" && c.TLSCert == "" {
		return fmt.Errorf("tls-cert is required when tls-key is set")
	}

	return nil
}
