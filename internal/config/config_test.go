// ABOUTME: Tests for lift configuration management.
// ABOUTME: Covers the config file, data dir resolution, and the backend factory.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harperreed/lift/internal/logging"
	"github.com/harperreed/lift/internal/models"
	"github.com/harperreed/lift/internal/storage"
)

func TestResolvedSettings(t *testing.T) {
	home, _ := os.UserHomeDir()
	xdg := t.TempDir()
	t.Setenv("XDG_DATA_HOME", xdg)

	tests := []struct {
		name        string
		cfg         Config
		wantBackend string
		wantDataDir string
	}{
		{name: "zero config", wantBackend: BackendSQLite, wantDataDir: filepath.Join(xdg, "lift")},
		{name: "badger in home", cfg: Config{Backend: BackendBadger, DataDir: "~/gym"}, wantBackend: BackendBadger, wantDataDir: filepath.Join(home, "gym")},
		{name: "bare tilde", cfg: Config{Backend: BackendCharm, DataDir: "~"}, wantBackend: BackendCharm, wantDataDir: home},
		{name: "absolute dir", cfg: Config{DataDir: "/srv/lift"}, wantBackend: BackendSQLite, wantDataDir: "/srv/lift"},
		{name: "relative dir kept", cfg: Config{DataDir: "lift-data"}, wantBackend: BackendSQLite, wantDataDir: "lift-data"},
		{name: "tilde inside path kept", cfg: Config{DataDir: "/data/~lift"}, wantBackend: BackendSQLite, wantDataDir: "/data/~lift"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.GetBackend(); got != tt.wantBackend {
				t.Errorf("GetBackend() = %q, want %q", got, tt.wantBackend)
			}
			if got := tt.cfg.GetDataDir(); got != tt.wantDataDir {
				t.Errorf("GetDataDir() = %q, want %q", got, tt.wantDataDir)
			}
		})
	}
}

func TestConfigFile(t *testing.T) {
	xdg := filepath.Join(t.TempDir(), "not-yet")
	t.Setenv("XDG_CONFIG_HOME", xdg)

	if got, want := GetConfigPath(), filepath.Join(xdg, "lift", "config.json"); got != want {
		t.Fatalf("GetConfigPath() = %q, want %q", got, want)
	}

	empty, err := Load()
	if err != nil {
		t.Fatalf("Load() without a file failed: %v", err)
	}
	if *empty != (Config{}) {
		t.Errorf("Load() without a file = %+v, want zero config", *empty)
	}

	cfg := &Config{Backend: BackendBadger, DataDir: "~/gym", LogLevel: "debug"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	raw, err := os.ReadFile(GetConfigPath())
	if err != nil {
		t.Fatalf("config file missing: %v", err)
	}
	for _, key := range []string{`"backend": "badger"`, `"data_dir": "~/gym"`, `"log_level": "debug"`} {
		if !strings.Contains(string(raw), key) {
			t.Errorf("config file lacks %s:\n%s", key, raw)
		}
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("Load() = %+v, want %+v", *loaded, *cfg)
	}

	if err := (&Config{}).Save(); err != nil {
		t.Fatalf("Save() of zero config failed: %v", err)
	}
	raw, _ = os.ReadFile(GetConfigPath())
	if strings.TrimSpace(string(raw)) != "{}" {
		t.Errorf("zero config should omit every field, got %s", raw)
	}
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if err := os.MkdirAll(filepath.Dir(GetConfigPath()), 0750); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(GetConfigPath(), []byte(`{"backend": `), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "config.json") {
		t.Errorf("Load() error = %v, want a parse error naming the file", err)
	}
}

func TestOpenBackendLayout(t *testing.T) {
	tests := []struct {
		backend string
		creates string
		absent  string
	}{
		{backend: BackendSQLite, creates: "lift.db", absent: "badger"},
		{backend: BackendBadger, creates: "badger", absent: "lift.db"},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			dir := t.TempDir()
			store, err := OpenBackend(tt.backend, dir, logging.Discard())
			if err != nil {
				t.Fatalf("OpenBackend(%s) failed: %v", tt.backend, err)
			}
			defer store.Close()

			if _, err := os.Stat(filepath.Join(dir, tt.creates)); err != nil {
				t.Errorf("expected %s in data dir: %v", tt.creates, err)
			}
			if _, err := os.Stat(filepath.Join(dir, tt.absent)); !os.IsNotExist(err) {
				t.Errorf("%s should not be created by the %s backend", tt.absent, tt.backend)
			}
		})
	}
}

func TestOpenStoragePersistsCollections(t *testing.T) {
	for _, backend := range []string{BackendSQLite, BackendBadger} {
		t.Run(backend, func(t *testing.T) {
			cfg := &Config{Backend: backend, DataDir: t.TempDir()}

			store, err := cfg.OpenStorage(logging.Discard())
			if err != nil {
				t.Fatalf("OpenStorage failed: %v", err)
			}
			settings := models.UserSettings{Name: "Sam", FavoriteExerciseIDs: []string{"ex7"}}
			if err := storage.Save(store, storage.KeySettings, settings); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			if err := store.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}

			reopened, err := OpenBackend(backend, cfg.GetDataDir(), logging.Discard())
			if err != nil {
				t.Fatalf("OpenBackend failed: %v", err)
			}
			defer reopened.Close()

			got := storage.Load(reopened, storage.KeySettings, models.DefaultSettings(), logging.Discard())
			if got.Name != "Sam" || len(got.FavoriteExerciseIDs) != 1 || got.FavoriteExerciseIDs[0] != "ex7" {
				t.Errorf("settings after reopen = %+v", got)
			}
			if _, err := reopened.GetBlob(storage.KeyHistory); !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("GetBlob(history) error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestOpenBackendUnknown(t *testing.T) {
	_, err := (&Config{Backend: "postgres", DataDir: t.TempDir()}).OpenStorage(logging.Discard())
	if err == nil {
		t.Fatal("Expected error for unknown backend")
	}
	for _, name := range Backends {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q should list backend %q", err, name)
		}
	}
}
