package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestGetConfigDir(t *testing.T) {
	if runtime.GOOS != "windows" && runtime.GOOS != "darwin" {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	}

	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if filepath.Base(configDir) != "picker" {
		t.Errorf("GetConfigDir() = %v, should end in 'picker'", configDir)
	}

	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin":
		if !strings.Contains(configDir, ".config") {
			t.Errorf("macOS config dir should contain '.config', got: %v", configDir)
		}
	default:
		if configDir != filepath.Join("/tmp/xdg", "picker") {
			t.Errorf("GetConfigDir() = %v, want /tmp/xdg/picker", configDir)
		}
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	if reg.Version != 1 {
		t.Errorf("NewRegistry().Version = %v, want 1", reg.Version)
	}
	if reg.Servers == nil {
		t.Error("NewRegistry().Servers should not be nil")
	}
	if reg.Preferences == nil {
		t.Fatal("NewRegistry().Preferences should not be nil")
	}
	if reg.Preferences.ServerPort != 7878 {
		t.Errorf("ServerPort = %v, want 7878", reg.Preferences.ServerPort)
	}
	if reg.Preferences.ScanTimeout != 5 {
		t.Errorf("ScanTimeout = %v, want 5", reg.Preferences.ScanTimeout)
	}
}

func TestRecordServer(t *testing.T) {
	reg := NewRegistry()

	before := time.Now()
	first := reg.RecordServer("desk", "192.168.1.10:7878")
	second := reg.RecordServer("desk", "192.168.1.11:7878")
	after := time.Now()

	if first != second {
		t.Error("RecordServer() should update the existing entry")
	}
	if got := reg.GetServer("desk").Address; got != "192.168.1.11:7878" {
		t.Errorf("Address = %v, want 192.168.1.11:7878", got)
	}
	if second.LastSeen.Before(before) || second.LastSeen.After(after) {
		t.Errorf("LastSeen = %v, should be between %v and %v", second.LastSeen, before, after)
	}
	if reg.GetServer("other") != nil {
		t.Error("GetServer() for unknown instance should be nil")
	}
}

func TestSaveToAndLoadFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	reg := NewRegistry()
	reg.Preferences.CatalogPath = "/srv/items.yaml"
	reg.Preferences.InitialSearch = "sh"
	reg.RecordServer("desk", "10.0.0.2:7878").Nickname = "Desk"

	if err := reg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temporary file left behind: %v", err)
	}

	loaded, err := LoadRegistryFrom(path)
	if err != nil {
		t.Fatalf("LoadRegistryFrom() error = %v", err)
	}

	opt := cmpopts.EquateApproxTime(time.Second)
	if diff := cmp.Diff(reg, loaded, opt); diff != "" {
		t.Errorf("round trip mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestLoadAndReloadRegistry_Concurrent(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("config dir follows XDG_CONFIG_HOME only on Linux")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	saved := NewRegistry()
	saved.RecordServer("desk", "10.0.0.2:7878")
	if err := saved.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}
	t.Cleanup(func() {
		globalRegistryMu.Lock()
		globalRegistryLoaded = false
		globalRegistryMu.Unlock()
	})

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			load := LoadRegistry
			if i%2 == 0 {
				load = ReloadRegistry
			}
			reg, err := load()
			if err != nil {
				errs <- err
				return
			}
			if reg.GetServer("desk") == nil {
				errs <- os.ErrNotExist
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("load error = %v", err)
	}
}

func TestLoadRegistryFrom(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantErr  bool
		wantPort int
	}{
		{"missing file", "", false, 7878},
		{"no preferences", "version: 1\n", false, 7878},
		{"custom port", "version: 1\npreferences:\n  server_port: 9000\n", false, 9000},
		{"bad version", "version: 2\n", true, 0},
		{"bad yaml", "version: [", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if tt.content != "" {
				if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
					t.Fatalf("WriteFile() error = %v", err)
				}
			}

			reg, err := LoadRegistryFrom(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadRegistryFrom() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if reg.Preferences.ServerPort != tt.wantPort {
				t.Errorf("ServerPort = %v, want %v", reg.Preferences.ServerPort, tt.wantPort)
			}
			if reg.Servers == nil {
				t.Error("Servers should be initialized")
			}
		})
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	created, err := CreateDefaultConfig(path)
	if err != nil || !created {
		t.Fatalf("CreateDefaultConfig() = %v, %v, want true, nil", created, err)
	}

	created, err = CreateDefaultConfig(path)
	if err != nil || created {
		t.Errorf("second CreateDefaultConfig() = %v, %v, want false, nil", created, err)
	}
}

func BenchmarkRecordServer(b *testing.B) {
	reg := NewRegistry()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reg.RecordServer("desk", "10.0.0.2:7878")
	}
}
