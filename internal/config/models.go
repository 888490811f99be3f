package config

import "time"

// Registry represents the entire user configuration file.
type Registry struct {
	Version     int                     `yaml:"version"`
	Servers     map[string]*KnownServer `yaml:"servers,omitempty"` // Keyed by mDNS instance name
	Preferences *Preferences            `yaml:"preferences,omitempty"`
}

// KnownServer remembers a picker server seen by `picker scan`.
type KnownServer struct {
	Address  string    `yaml:"address"`             // WebSocket URL of the last sighting
	Nickname string    `yaml:"nickname,omitempty"`  // User-friendly name
	LastSeen time.Time `yaml:"last_seen,omitempty"` // Last discovery time
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	CatalogPath   string `yaml:"catalog_path,omitempty"`   // Default --catalog value; empty means the built-in demo
	ServerPort    int    `yaml:"server_port"`              // Default port for `picker serve`
	ScanTimeout   int    `yaml:"scan_timeout"`             // mDNS browse timeout in seconds
	InitialSearch string `yaml:"initial_search,omitempty"` // Search text applied when the TUI opens
}

// DefaultPreferences returns the preferences used when the file has none.
func DefaultPreferences() *Preferences {
	return &Preferences{
		ServerPort:  7878,
		ScanTimeout: 5,
	}
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:     1,
		Servers:     make(map[string]*KnownServer),
		Preferences: DefaultPreferences(),
	}
}

// GetServer returns the remembered server for instance, or nil.
func (r *Registry) GetServer(instance string) *KnownServer {
	return r.Servers[instance]
}

// RecordServer stores the latest address for instance and stamps LastSeen.
func (r *Registry) RecordServer(instance, address string) *KnownServer {
	if r.Servers == nil {
		r.Servers = make(map[string]*KnownServer)
	}

	srv, exists := r.Servers[instance]
	if !exists {
		srv = &KnownServer{}
		r.Servers[instance] = srv
	}
	srv.Address = address
	srv.LastSeen = time.Now()
	return srv
}
