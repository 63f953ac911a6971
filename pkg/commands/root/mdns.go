package root

import (
	"fmt"
	"net"

	"github.com/grandcat/zeroconf"
	"github.com/telegram-files/gate/pkg/version"
)

const (
	mdnsService = "_http._tcp"
	mdnsDomain  = "local."
)

// advertise registers the server on the local network. The returned func unregisters it.
func advertise(instance string, addr net.Addr) (func(), error) {
	tcpAddr, ok := addr.(*net.TCPAddr)
	if !ok {
		return nil, fmt.Errorf("unsupported listener address %s", addr)
	}

	srvr, err := zeroconf.Register(
		instance,
		mdnsService,
		mdnsDomain,
		tcpAddr.Port,
		[]string{"version=" + version.Version, "auth=basic"},
		nil,
	)
	if err != nil {
		return nil, err
	}

	return srvr.Shutdown, nil
}
