package api

import (
	"net"

	"github.com/rs/zerolog/log"
)

var loopbackIpNet = net.IPNet{IP: net.IPv4(127, 0, 0, 1).To4(), Mask: net.CIDRMask(32, 32)}

// getServerIpNet picks the first IPv4 address on an interface that is up
// and not a loopback. Analytics rows are keyed by it. Hosts without such
// an interface (containers, CI) fall back to 127.0.0.1/32.
func getServerIpNet() net.IPNet {
	ifaces, err := net.Interfaces()
	if err != nil {
		log.Warn().Err(err).Msg("could not list interfaces, using loopback")
		return loopbackIpNet
	}

	for _, iface := range ifaces {
		// If the flag is down
		if iface.Flags&net.FlagUp == 0 {
			continue
		}
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			if ip4 := ipnet.IP.To4(); ip4 != nil && !ip4.IsLoopback() {
				return net.IPNet{IP: ip4, Mask: ipnet.Mask}
			}
		}
	}

	log.Warn().Msg("no non-loopback ipv4 address found, using loopback")
	return loopbackIpNet
}
