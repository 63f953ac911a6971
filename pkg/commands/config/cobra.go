package config

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/telegram-files/gate/pkg/configuration"
	"gopkg.in/yaml.v3"
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
		Use:     "config",
		Aliases: []string{"conf", "configuration"},
		Short:   "Inspect the tfgate configuration.",
	}

	c.cobraCommand.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration as YAML, with the password redacted.",
			Args:  cobra.NoArgs,
			RunE:  c.show,
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the path of the configuration file in use.",
			Args:  cobra.NoArgs,
			RunE:  c.path,
		},
	)

	return c.cobraCommand
}

func (c *Cmd) show(cmd *cobra.Command, args []string) error {
	out := *c.config
	out.BasicAuth = out.BasicAuth.Redacted()

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(&out); err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	return enc.Close()
}

func (c *Cmd) path(cmd *cobra.Command, args []string) error {
	p := c.config.Path()
	if p == "" {
		return fmt.Errorf("no configuration file in use")
	}
	fmt.Fprintln(cmd.OutOrStdout(), p)
	return nil
}
