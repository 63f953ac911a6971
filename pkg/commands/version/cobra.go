package version

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/telegram-files/gate/pkg/version"
)

func New() *Cmd {
	return &Cmd{}
}

type Cmd struct {
	cobraCommand *cobra.Command
}

func (c *Cmd) Cobra() *cobra.Command {
	if c.cobraCommand != nil {
		return c.cobraCommand
	}
	c.cobraCommand = &cobra.Command{
		Use:   "version",
		Short: "Print the version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version: %s\n", version.Version)
			if commit := version.Commit; commit != "" {
				fmt.Fprintf(out, "commit: %s\n", commit)
			}
			if date := version.Date; date != "" {
				fmt.Fprintf(out, "build date: %s\n", date)
			}
			if license := version.License; license != "" {
				fmt.Fprintf(out, "license: %s\n", license)
			}
		},
	}

	return c.cobraCommand
}
