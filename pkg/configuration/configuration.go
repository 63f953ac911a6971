package configuration

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix  = "TFGATE"
	envConfig  = envPrefix + "_CONFIG"
	configName = "config.yaml"
)

// binding ties a viper key to the flag that sets it.
type binding struct {
	key  string
	flag string
}

// Root is the complete tfgate configuration. Values are resolved from, in
// increasing precedence: flag defaults, the config file, TFGATE_* environment
// variables and flags set on the command line.
type Root struct {
	Server       Server       `mapstructure:"server" yaml:"server"`
	BasicAuth    BasicAuth    `mapstructure:"basicAuth" yaml:"basicAuth"`
	CORS         CORS         `mapstructure:"cors" yaml:"cors"`
	Discovery    Discovery    `mapstructure:"discovery" yaml:"discovery"`
	Files        Files        `mapstructure:"files" yaml:"files"`
	ReverseProxy ReverseProxy `mapstructure:"reverseProxy" yaml:"reverseProxy"`

	v    *viper.Viper
	fs   *pflag.FlagSet
	path string
}

func EmptyRoot() *Root {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Root{v: v}
}

// Init registers the flags shared by every command as persistent flags of cmd.
func (c *Root) Init(cmd *cobra.Command) error {
	c.fs = cmd.PersistentFlags()
	c.fs.StringP("config", "c", "", fmt.Sprintf(`Path to a YAML configuration file.
Defaults to $%s or, if it exists, %s in the user config directory.`, envConfig, configName))
	cmd.MarkPersistentFlagFilename("config", "yaml", "yml")

	c.Server.setFlags(c.fs)
	c.BasicAuth.setFlags(c.fs)
	c.CORS.setFlags(c.fs)
	c.Discovery.setFlags(c.fs)
	cmd.MarkFlagsMutuallyExclusive("password", "password-file", "prompt-password")

	var bs []binding
	bs = append(bs, c.Server.bindings()...)
	bs = append(bs, c.BasicAuth.bindings()...)
	bs = append(bs, c.CORS.bindings()...)
	bs = append(bs, c.Discovery.bindings()...)

	return c.bind(c.fs, bs)
}

// InitServe registers the flags of the serve command.
func (c *Root) InitServe(cmd *cobra.Command) error {
	fs := cmd.Flags()
	c.Files.setFlags(fs)
	return c.bind(fs, c.Files.bindings())
}

// InitReverseProxy registers the flags of the reverse-proxy command.
func (c *Root) InitReverseProxy(cmd *cobra.Command) error {
	fs := cmd.Flags()
	c.ReverseProxy.setFlags(fs)
	return c.bind(fs, c.ReverseProxy.bindings())
}

func (c *Root) bind(fs *pflag.FlagSet, bs []binding) error {
	for _, b := range bs {
		if err := c.v.BindPFlag(b.key, fs.Lookup(b.flag)); err != nil {
			return fmt.Errorf("unable to bind flag %s: %w", b.flag, err)
		}
	}
	return nil
}

// Load reads the config file, if any, and resolves every value into c.
func (c *Root) Load() error {
	path, err := c.configPath()
	if err != nil {
		return err
	}
	c.path = path

	if path != "" {
		c.v.SetConfigFile(path)
		if err := c.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := c.v.Unmarshal(c); err != nil {
		return fmt.Errorf("failed to decode configuration: %w", err)
	}

	return nil
}

// Prepare resolves values that need I/O (password files and prompts, sizes)
// and validates the result.
func (c *Root) Prepare() error {
	if err := c.Server.hydrate(); err != nil {
		return fmt.Errorf("error hydrating server configuration: %w", err)
	}
	if err := c.BasicAuth.hydrate(); err != nil {
		return fmt.Errorf("error hydrating basic auth configuration: %w", err)
	}
	if err := c.ReverseProxy.hydrate(); err != nil {
		return fmt.Errorf("error hydrating reverse proxy configuration: %w", err)
	}

	return c.Validate()
}

func (c *Root) Validate() error {
	if err := c.Server.validate(); err != nil {
		return err
	}
	if err := c.CORS.validate(); err != nil {
		return err
	}
	return c.ReverseProxy.validate()
}

// Path is the config file in use, empty if none.
func (c *Root) Path() string {
	return c.path
}

func (c *Root) configPath() (string, error) {
	if c.fs != nil {
		if p, _ := c.fs.GetString("config"); p != "" {
			return p, nil
		}
	}
	if p := os.Getenv(envConfig); p != "" {
		return p, nil
	}

	ucd, err := os.UserConfigDir()
	if err != nil {
		// no config dir is not an error, there's just no default file
		return "", nil
	}
	p := filepath.Join(ucd, "tfgate", configName)
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to stat config file: %w", err)
	}

	return p, nil
}
