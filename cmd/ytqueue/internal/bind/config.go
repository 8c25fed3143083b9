// Package bind turns parsed command flags into configured application
// components.
package bind

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/yt-queue/internal/config"
	"github.com/ytget/yt-queue/internal/logging"
)

type configKey struct{}

// LoadConfig merges defaults, the --config file, YTQUEUE_* variables and the
// command's flags, then configures global logging from the result.
//
// Flags read:
//   - --config: YAML configuration file
//   - --debug: force debug logging
//   - every flag listed in config.FlagKeys
func LoadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")

	mgr := config.NewManager(config.DefaultSources(path, cmd.Flags(), debug)...)
	if err := mgr.Load(); err != nil {
		return config.Config{}, fmt.Errorf("load configuration: %w", err)
	}

	cfg := mgr.Get()
	logging.ConfigureGlobal(cfg.Log.Level)
	return cfg, nil
}

// WithConfig stores cfg in ctx
func WithConfig(ctx context.Context, cfg config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// ConfigFrom returns the configuration stored by WithConfig, or the defaults
func ConfigFrom(ctx context.Context) config.Config {
	if ctx != nil {
		if cfg, ok := ctx.Value(configKey{}).(config.Config); ok {
			return cfg
		}
	}
	return config.DefaultConfig()
}
