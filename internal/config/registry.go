package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "picker"
	configFile = "config.yaml"
)

var (
	// Global registry instance (loaded lazily, guarded by globalRegistryMu)
	globalRegistryMu     sync.Mutex
	globalRegistry       *Registry
	globalRegistryErr    error
	globalRegistryLoaded bool

	// Mutex for thread-safe file operations
	fileMutex sync.Mutex
)

// GetConfigDir returns the OS-appropriate configuration directory:
//   - Linux: $XDG_CONFIG_HOME/picker or $HOME/.config/picker
//   - macOS: $HOME/.config/picker
//   - Windows: %LOCALAPPDATA%\picker
func GetConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, appName), nil
		}
		userProfile := os.Getenv("USERPROFILE")
		if userProfile == "" {
			return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
		}
		return filepath.Join(userProfile, "AppData", "Local", appName), nil

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(homeDir, ".config", appName), nil

	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(homeDir, ".config", appName), nil
	}
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// LoadRegistry loads the registry from the default path once per process.
// If the file doesn't exist, returns a new default registry.
func LoadRegistry() (*Registry, error) {
	globalRegistryMu.Lock()
	defer globalRegistryMu.Unlock()

	if !globalRegistryLoaded {
		loadGlobalRegistryLocked()
	}
	return globalRegistry, globalRegistryErr
}

func loadGlobalRegistryLocked() {
	globalRegistryLoaded = true
	path, err := GetConfigPath()
	if err != nil {
		globalRegistry, globalRegistryErr = nil, fmt.Errorf("failed to get config path: %w", err)
		return
	}
	globalRegistry, globalRegistryErr = LoadRegistryFrom(path)
}

// LoadRegistryFrom loads a registry from an explicit path. A missing file
// yields a default registry.
func LoadRegistryFrom(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewRegistry(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var registry Registry
	if err := yaml.Unmarshal(data, &registry); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if registry.Version != 1 {
		return nil, fmt.Errorf("unsupported config version: %d (expected 1)", registry.Version)
	}

	if registry.Servers == nil {
		registry.Servers = make(map[string]*KnownServer)
	}
	if registry.Preferences == nil {
		registry.Preferences = DefaultPreferences()
	}

	return &registry, nil
}

// ReloadRegistry discards the cached global registry and reads it again.
func ReloadRegistry() (*Registry, error) {
	globalRegistryMu.Lock()
	defer globalRegistryMu.Unlock()

	loadGlobalRegistryLocked()
	return globalRegistry, globalRegistryErr
}

// Save writes the registry to the default path.
func (r *Registry) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return r.SaveTo(path)
}

// SaveTo writes the registry to path via a temporary file and rename, so a
// crash never leaves a half-written config.
func (r *Registry) SaveTo(path string) error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# Picker Configuration File
# Preferences and servers remembered by "picker scan".
#
# Location: ` + path + `

`)
	data = append(header, data...)

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}

	return nil
}

// CreateDefaultConfig writes a default registry to path unless a file already
// exists there.
func CreateDefaultConfig(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := NewRegistry().SaveTo(path); err != nil {
		return false, err
	}
	return true, nil
}
