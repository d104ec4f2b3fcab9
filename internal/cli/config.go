package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/hallforge/seatplan/pkg/store"
)

// Store backends selectable via configuration.
const (
	BackendMemory = "memory"
	BackendDisk   = "disk"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Config is the application configuration, read from
// $XDG_CONFIG_HOME/seatplan/config.toml. A missing file means defaults.
type Config struct {
	Store StoreSettings `toml:"store"`
}

// StoreSettings selects and parameterizes the persistence backend.
type StoreSettings struct {
	// Backend is one of memory, disk, redis or mongo.
	Backend string `toml:"backend"`

	// Path overrides the disk backend's data directory.
	Path string `toml:"path"`

	Redis store.RedisConfig `toml:"redis"`
	Mongo store.MongoConfig `toml:"mongo"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Store: StoreSettings{Backend: BackendDisk},
	}
}

// LoadConfig reads the configuration from path, or from the default XDG
// location when path is empty. A missing file yields defaults without error;
// an unreadable or malformed file yields defaults and the error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		var err error
		path, err = configPath()
		if err != nil {
			return cfg, nil
		}
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), err
	}
	return cfg, nil
}

// configPath returns the config file location using XDG standard
// (~/.config/seatplan/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
