// Package config manages the picker's user configuration file.
//
// The file is YAML and lives in the platform configuration directory:
//   - Linux: $XDG_CONFIG_HOME/picker/config.yaml or $HOME/.config/picker/config.yaml
//   - macOS: $HOME/.config/picker/config.yaml
//   - Windows: %LOCALAPPDATA%\picker\config.yaml
//
// It holds default flag values (catalog path, server port, scan timeout,
// initial search) and the servers found by mDNS discovery.
//
// # Usage Example
//
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	registry.Preferences.ServerPort = 9000
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global registry is loaded once per process. Writes are serialised by a
// package mutex and replace the file atomically.
package config
