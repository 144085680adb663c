package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Shell != "" || cfg.Datastore != "" {
		t.Errorf("cfg = %+v, want zero config for missing file", cfg)
	}
}

func TestLoad_Valid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "shell: /bin/zsh\ndatastore: /var/lib/mak/data.json\n"
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Shell != "/bin/zsh" {
		t.Errorf("Shell = %q, want /bin/zsh", cfg.Shell)
	}
	if cfg.Datastore != "/var/lib/mak/data.json" {
		t.Errorf("Datastore = %q", cfg.Datastore)
	}
}

func TestLoad_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("shell: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unparseable config")
	}
}

func TestDatastorePath(t *testing.T) {
	cfg := Config{Datastore: "/custom/data.json"}
	if got := cfg.DatastorePath(); got != "/custom/data.json" {
		t.Errorf("DatastorePath = %q, config value should win", got)
	}

	cfg = Config{}
	if got := cfg.DatastorePath(); filepath.Base(got) != DefaultDatastoreName {
		t.Errorf("DatastorePath = %q, want default %s under config dir", got, DefaultDatastoreName)
	}
}

func TestDatastorePath_EnvOverride(t *testing.T) {
	t.Setenv("MAK_DATASTORE_NAME", "store.json")
	cfg := Config{}
	if got := cfg.DatastorePath(); filepath.Base(got) != "store.json" {
		t.Errorf("DatastorePath = %q, want env-named file", got)
	}
}

func TestDir_EnvOverride(t *testing.T) {
	t.Setenv("MAK_APP_NAME", "mak-test")
	if got := Dir(); !strings.HasSuffix(got, "mak-test") {
		t.Errorf("Dir = %q, want suffix mak-test", got)
	}
}

func TestPath_EnvOverride(t *testing.T) {
	t.Setenv("MAK_CONFIG_NAME", "alt.yaml")
	if got := Path(); filepath.Base(got) != "alt.yaml" {
		t.Errorf("Path = %q, want alt.yaml", got)
	}
}

func TestDebugFromEnv(t *testing.T) {
	t.Setenv("MAK_DEBUG_MODE", "TRUE")
	if !DebugFromEnv() {
		t.Error("DebugFromEnv = false, want true for TRUE")
	}
	t.Setenv("MAK_DEBUG_MODE", "0")
	if DebugFromEnv() {
		t.Error("DebugFromEnv = true, want false for 0")
	}
}
