// Package cli implements the seatplan command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/hallforge/seatplan/pkg/bridge"
	"github.com/hallforge/seatplan/pkg/buildinfo"
	"github.com/hallforge/seatplan/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "seatplan"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "seatplan",
		Short:        "Seatplan edits venue seating layouts in the terminal",
		Long:         `Seatplan is a terminal editor for venue seating charts: drag sections into place, rotate and zoom them, and persist or export the arranged layout.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/seatplan/config.toml)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig(c.configPath)
		if err != nil {
			c.Logger.Warn("config not usable, using defaults", "err", err)
		}
		c.Config = cfg
		return nil
	}

	// Register all subcommands
	root.AddCommand(c.editCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.newCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Store & Repository Factory
// =============================================================================

// newStore opens the persistence backend selected by the configuration.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	switch c.Config.Store.Backend {
	case BackendMemory:
		return store.NewMemoryStore(), nil
	case BackendRedis:
		return store.NewRedisStore(ctx, c.Config.Store.Redis)
	case BackendMongo:
		return store.NewMongoStore(ctx, c.Config.Store.Mongo)
	case BackendDisk, "":
		dir := c.Config.Store.Path
		if dir == "" {
			var err error
			dir, err = dataDir()
			if err != nil {
				return nil, err
			}
		}
		return store.NewDiskStore(dir), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", c.Config.Store.Backend)
	}
}

// openRepository opens the store and loads the layout collection. The caller
// owns the returned store and must close it.
func (c *CLI) openRepository(ctx context.Context) (*bridge.Repository, store.Store, error) {
	st, err := c.newStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	repo := bridge.NewRepository(st, c.Logger)
	if err := repo.Load(ctx); err != nil {
		_ = st.Close()
		return nil, nil, err
	}
	return repo, st, nil
}

// =============================================================================
// Paths
// =============================================================================

// dataDir returns the data directory using XDG standard (~/.local/share/seatplan/).
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}
