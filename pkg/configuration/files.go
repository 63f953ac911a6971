package configuration

import "github.com/spf13/pflag"

type Files struct {
	Dir          string `mapstructure:"dir" yaml:"dir"`
	AllowListing bool   `mapstructure:"allowListing" yaml:"allowListing"`
}

func (c *Files) setFlags(fs *pflag.FlagSet) {
	fs.String("dir", "", `Directory to serve. Overridden by the positional argument.`)
	fs.Bool("allow-listing", false, `Serve directory listings instead of 404 for directories without an index.html.`)
}

func (c *Files) bindings() []binding {
	return []binding{
		{"files.dir", "dir"},
		{"files.allowListing", "allow-listing"},
	}
}
