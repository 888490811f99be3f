package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Server is a picker server found on the network
type Server struct {
	// Instance is the advertised instance name (e.g., "picker on desk")
	Instance string

	// Hostname is the mDNS hostname (e.g., "desk.local.")
	Hostname string

	// IP is the first IPv4 address, or IPv6 when there is none
	IP string

	Port int

	// Metadata contains the TXT records, e.g. "version" and "path"
	Metadata map[string]string

	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the server
func (s *Server) String() string {
	return fmt.Sprintf("%s (%s) at %s", s.Instance, s.Hostname, s.Address())
}

// Address returns host:port, bracketing IPv6 addresses.
func (s *Server) Address() string {
	return net.JoinHostPort(s.IP, strconv.Itoa(s.Port))
}

// URL returns the WebSocket URL for the server's session endpoint.
func (s *Server) URL() string {
	scheme := "ws"
	if s.GetMetadata("tls") == "true" {
		scheme = "wss"
	}
	path := s.GetMetadata("path")
	if path == "" {
		path = DefaultPath
	}
	return scheme + "://" + s.Address() + path
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (s *Server) GetMetadata(key string) string {
	if s.Metadata == nil {
		return ""
	}
	return s.Metadata[key]
}
