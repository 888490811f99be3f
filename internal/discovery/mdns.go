package discovery

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/picker/internal/logging"
)

const (
	// ServiceType is the mDNS service type picker servers advertise
	ServiceType = "_picker._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for server discovery
	DefaultScanTimeout = 5 * time.Second

	// DefaultPath is the WebSocket path assumed when a server sends no path TXT record
	DefaultPath = "/ws"
)

// Advertise registers a picker server on the local network. The returned
// func withdraws the advertisement.
func Advertise(instance string, port int, txt map[string]string) (func(), error) {
	records := make([]string, 0, len(txt))
	for k, v := range txt {
		records = append(records, k+"="+v)
	}

	srv, err := zeroconf.Register(instance, ServiceType, ServiceDomain, port, records, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}

	logging.Info("Advertising picker server via mDNS",
		zap.String("instance", instance),
		zap.String("service", ServiceType),
		zap.Int("port", port),
	)

	return func() {
		srv.Shutdown()
		logging.Debug("mDNS advertisement withdrawn", zap.String("instance", instance))
	}, nil
}

// Scanner handles mDNS server discovery
type Scanner struct {
	// Timeout is the maximum time to wait for servers to answer
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// ScanForServers browses for picker servers until the timeout elapses or ctx
// is cancelled, and returns every server that answered with an address.
func (s *Scanner) ScanForServers(ctx context.Context) ([]*Server, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	var (
		mu      sync.Mutex
		servers = make([]*Server, 0)
		seen    = make(map[string]bool)
	)

	entries := make(chan *zeroconf.ServiceEntry)
	go func() {
		for entry := range entries {
			srv := parseServiceEntry(entry)
			if srv == nil {
				continue
			}
			mu.Lock()
			if !seen[srv.Instance] {
				seen[srv.Instance] = true
				servers = append(servers, srv)
				logging.Debug("Discovered picker server", zap.String("server", srv.String()))
			}
			mu.Unlock()
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()

	mu.Lock()
	defer mu.Unlock()
	return append([]*Server(nil), servers...), nil
}

// parseServiceEntry converts a zeroconf entry to a Server. It returns nil for
// entries without an address.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Server {
	if entry == nil {
		return nil
	}

	// Prefer IPv4
	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	} else if len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" || entry.Port <= 0 {
		return nil
	}

	metadata := make(map[string]string, len(entry.Text))
	for _, txt := range entry.Text {
		key, value, _ := strings.Cut(txt, "=")
		if key != "" {
			metadata[key] = value
		}
	}

	instance := entry.Instance
	if instance == "" {
		instance = strings.TrimSuffix(entry.HostName, ".") + ":" + strconv.Itoa(entry.Port)
	}

	return &Server{
		Instance:     instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         entry.Port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// ScanForServers is a convenience function to scan with a custom timeout
func ScanForServers(ctx context.Context, timeout time.Duration) ([]*Server, error) {
	scanner := NewScanner()
	if timeout > 0 {
		scanner.Timeout = timeout
	}
	return scanner.ScanForServers(ctx)
}
