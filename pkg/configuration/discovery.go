package configuration

import "github.com/spf13/pflag"

type Discovery struct {
	MDNS         bool   `mapstructure:"mdns" yaml:"mdns"`
	InstanceName string `mapstructure:"instanceName" yaml:"instanceName"`
}

func (c *Discovery) setFlags(fs *pflag.FlagSet) {
	fs.Bool("mdns", false, `Advertise the server on the local network using mDNS / DNS-SD.`)
	fs.String("mdns-name", "tfgate", `Instance name to advertise over mDNS.`)
}

func (c *Discovery) bindings() []binding {
	return []binding{
		{"discovery.mdns", "mdns"},
		{"discovery.instanceName", "mdns-name"},
	}
}
