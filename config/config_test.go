package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestConfigSaveRoundTrip(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{Port: "9090", Mode: "release"},
		Database: DatabaseConfig{Type: "mysql", DSN: "user:pass@tcp(db:3306)/qmsdocs"},
		Storage:  StorageConfig{Dir: "/var/lib/qmsdocs/files", MaxUploadBytes: 10 << 20},
		Search:   SearchConfig{GlobalLimit: 20, PageSize: 30},
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved config: %v", err)
	}
	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("unmarshal saved config: %v", err)
	}

	if loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, *cfg)
	}
}
