package serve

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"

	"github.com/spf13/cobra"
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
		Use:   "serve [dir]",
		Short: "Serve a directory of downloaded files behind basic authentication",
		Long: `Serve a directory of downloaded files behind basic authentication.
Every request must carry the configured username and password, all others receive an HTTP 401 Unauthorized response.
If no directory is given, the one from the configuration is used, then the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: c.setHandlerFunc,
	}

	if err := c.config.InitServe(c.cobraCommand); err != nil {
		panic(err)
	}

	return c.cobraCommand
}

func (c *Cmd) setHandlerFunc(cmd *cobra.Command, args []string) error {
	config := &c.config.Files
	if 0 < len(args) {
		config.Dir = args[0]
	}
	if config.Dir == "" {
		config.Dir = "."
	}

	info, err := os.Stat(config.Dir)
	if err != nil {
		return fmt.Errorf("unable to serve %s: %w", config.Dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("unable to serve %s: not a directory", config.Dir)
	}

	commands.SetHTTPHandlerFunc(cmd.Context(), Handler(config.Dir, config.AllowListing))
	return nil
}

// Handler serves the files under dir. Unless allowListing is set, directories
// without an index.html answer 404.
func Handler(dir string, allowListing bool) http.HandlerFunc {
	var fs http.FileSystem = http.Dir(dir)
	if !allowListing {
		fs = noListingFS{fs: fs}
	}
	return http.FileServer(fs).ServeHTTP
}

type noListingFS struct {
	fs http.FileSystem
}

func (n noListingFS) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}

	s, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if !s.IsDir() {
		return f, nil
	}

	index, err := n.fs.Open(path.Join(name, "index.html"))
	if err != nil {
		f.Close()
		if errors.Is(err, os.ErrNotExist) {
			return nil, os.ErrNotExist
		}
		return nil, err
	}
	index.Close()

	return f, nil
}
