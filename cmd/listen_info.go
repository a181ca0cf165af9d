package cmd

import (
	"net"
	"strings"
)

type listenInfo struct {
	Binding string
	Access  string
}

func isDigitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// normalizeListenAddr turns a bare port into ":port".
func normalizeListenAddr(addr string) string {
	addr = strings.TrimSpace(addr)
	if isDigitsOnly(addr) {
		return ":" + addr
	}
	return addr
}

// buildListenInfo describes where the API binds and, for wildcard binds, an
// address a browser on another host could use. Unparseable input is
// returned as-is in Binding.
func buildListenInfo(addr string) listenInfo {
	host, port, err := net.SplitHostPort(normalizeListenAddr(addr))
	if err != nil || port == "" {
		return listenInfo{Binding: addr}
	}
	switch host {
	case "", "0.0.0.0", "::":
		bind := host
		if bind == "" {
			bind = "0.0.0.0"
		}
		return listenInfo{
			Binding: "http://" + net.JoinHostPort(bind, port),
			Access:  "http://" + net.JoinHostPort(outboundIP(), port),
		}
	}
	url := "http://" + net.JoinHostPort(host, port)
	return listenInfo{Binding: url, Access: url}
}

// outboundIP picks the first non-loopback IPv4 address, falling back to
// the loopback address.
func outboundIP() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "127.0.0.1"
	}
	for _, a := range addrs {
		ipNet, ok := a.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if ip4 := ipNet.IP.To4(); ip4 != nil {
			return ip4.String()
		}
	}
	return "127.0.0.1"
}
