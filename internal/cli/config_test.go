package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if cfg.Store.Backend != BackendDisk {
		t.Errorf("backend = %q, want %q", cfg.Store.Backend, BackendDisk)
	}
}

func TestLoadConfigParsesBackends(t *testing.T) {
	path := writeConfig(t, `
[store]
backend = "redis"

[store.redis]
addr = "redis.internal:6380"
db = 3

[store.mongo]
uri = "mongodb://db.internal:27017"
database = "halls"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Store.Backend != BackendRedis {
		t.Errorf("backend = %q, want redis", cfg.Store.Backend)
	}
	if cfg.Store.Redis.Addr != "redis.internal:6380" || cfg.Store.Redis.DB != 3 {
		t.Errorf("redis = %+v", cfg.Store.Redis)
	}
	if cfg.Store.Mongo.Database != "halls" {
		t.Errorf("mongo = %+v", cfg.Store.Mongo)
	}
}

func TestLoadConfigMalformedFallsBack(t *testing.T) {
	path := writeConfig(t, `store = not toml [`)

	cfg, err := LoadConfig(path)
	if err == nil {
		t.Error("malformed config should surface the parse error")
	}
	if cfg.Store.Backend != BackendDisk {
		t.Errorf("backend = %q, want default on parse failure", cfg.Store.Backend)
	}
}

func TestLoadConfigDiskPath(t *testing.T) {
	path := writeConfig(t, `
[store]
backend = "disk"
path = "/tmp/seatplan-data"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Store.Path != "/tmp/seatplan-data" {
		t.Errorf("path = %q", cfg.Store.Path)
	}
}
