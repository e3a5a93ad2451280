package util

import (
	"net"

	"github.com/pkg/errors"
)

// NetInterface 本机网络
type NetInterface struct {
	Name    string
	Address []string
}

// GetNetInterface 获得网卡上的公网 IPv4 地址
func GetNetInterface() (ipv4NetInterfaces []NetInterface, err error) {
	allNetInterfaces, err := net.Interfaces()
	if err != nil {
		return nil, errors.Wrap(err, "list network interfaces")
	}

	for _, netInterface := range allNetInterfaces {
		if netInterface.Flags&net.FlagUp == 0 {
			continue
		}
		addrs, _ := netInterface.Addrs()
		var ipv4 []string
		for _, address := range addrs {
			ipNet, ok := address.(*net.IPNet)
			if !ok || !ipNet.IP.IsGlobalUnicast() {
				continue
			}
			if ip := ipNet.IP.To4(); ip != nil {
				ipv4 = append(ipv4, ip.String())
			}
		}
		if len(ipv4) > 0 {
			ipv4NetInterfaces = append(ipv4NetInterfaces, NetInterface{
				Name:    netInterface.Name,
				Address: ipv4,
			})
		}
	}

	return ipv4NetInterfaces, nil
}
