package services

import (
	"BakeryPOS/app/websocket"
	"fmt"
	"net"
	"strings"
)

// DisplayStatusProvider is the part of the display hub the UI can inspect
type DisplayStatusProvider interface {
	GetServerStatus() map[string]interface{}
	GetPort() string
}

// DisplayManagementService reports the customer display hub to the UI
type DisplayManagementService struct {
	server DisplayStatusProvider
}

// NewDisplayManagementService creates the service; server may be nil when displays are disabled
func NewDisplayManagementService(server *websocket.Server) *DisplayManagementService {
	s := &DisplayManagementService{}
	if server != nil {
		s.server = server
	}
	return s
}

// GetStatus returns the hub status plus the addresses displays can reach
func (s *DisplayManagementService) GetStatus() map[string]interface{} {
	if s.server == nil {
		return map[string]interface{}{
			"running": false,
			"error":   "Customer display is disabled",
		}
	}

	status := s.server.GetServerStatus()
	status["local_ips"] = getLocalIPAddresses()
	return status
}

// GetDisplayURLs returns ws:// URLs for every local IPv4 address
func (s *DisplayManagementService) GetDisplayURLs() ([]string, error) {
	if s.server == nil {
		return nil, fmt.Errorf("customer display is disabled")
	}

	port := strings.TrimPrefix(s.server.GetPort(), ":")
	ips := getLocalIPAddresses()
	urls := make([]string, 0, len(ips))
	for _, ip := range ips {
		urls = append(urls, fmt.Sprintf("ws://%s/ws?type=display", net.JoinHostPort(ip, port)))
	}
	return urls, nil
}

// getLocalIPAddresses returns all non-loopback IPv4 addresses of interfaces that are up
func getLocalIPAddresses() []string {
	var ips []string

	interfaces, err := net.Interfaces()
	if err != nil {
		return ips
	}

	for _, iface := range interfaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}

			if ip == nil || ip.IsLoopback() {
				continue
			}

			if ip = ip.To4(); ip != nil {
				ips = append(ips, ip.String())
			}
		}
	}

	return ips
}
