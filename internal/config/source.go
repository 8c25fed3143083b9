package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix of environment overrides
const EnvPrefix = "YTQUEUE_"

// Source loads configuration values into koanf. Sources are applied in
// ascending Priority order, later ones overriding earlier ones.
//
// Built-in priorities:
//   - DefaultSource (10)
//   - FileSource (20)
//   - EnvSource (30)
//   - FlagSource (40)
type Source interface {
	Name() string
	Priority() int
	Load(k *koanf.Koanf) error
}

// DefaultSource provides hardcoded defaults
type DefaultSource struct{}

func (s *DefaultSource) Name() string  { return "defaults" }
func (s *DefaultSource) Priority() int { return 10 }

func (s *DefaultSource) Load(k *koanf.Koanf) error {
	if err := k.Load(confmap.Provider(DefaultConfigAsMap(), "."), nil); err != nil {
		return fmt.Errorf("error loading defaults: %w", err)
	}
	return nil
}

// FileSource loads a YAML file. A missing or empty path is skipped.
type FileSource struct {
	Path string
}

func (s *FileSource) Name() string  { return "file:" + s.Path }
func (s *FileSource) Priority() int { return 20 }

func (s *FileSource) Load(k *koanf.Koanf) error {
	if s.Path == "" {
		return nil
	}

	if _, err := os.Stat(s.Path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("error checking config file %s: %w", s.Path, err)
	}

	if err := k.Load(file.Provider(s.Path), yaml.Parser()); err != nil {
		return fmt.Errorf("error loading config file %s: %w", s.Path, err)
	}
	return nil
}

// EnvSource loads YTQUEUE_* variables. The first underscore after the prefix
// separates section from key:
//
//	YTQUEUE_LOG_LEVEL                  -> log.level
//	YTQUEUE_DOWNLOAD_PROGRESS_INTERVAL -> download.progress_interval
type EnvSource struct {
	Prefix string
}

func (s *EnvSource) Name() string  { return "env" }
func (s *EnvSource) Priority() int { return 30 }

func (s *EnvSource) Load(k *koanf.Koanf) error {
	prefix := s.Prefix
	if prefix == "" {
		prefix = EnvPrefix
	}

	if err := k.Load(env.Provider(prefix, ".", func(key string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(key, prefix)), "_", ".", 1)
	}), nil); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}
	return nil
}

// FlagSource loads command-line flags. Flags listed in FlagKeys are mapped to
// their config key; other flags are ignored. Unchanged flags never override
// values from lower priority sources.
type FlagSource struct {
	Flags *pflag.FlagSet
	Debug bool // forces log.level=debug
}

func (s *FlagSource) Name() string  { return "flags" }
func (s *FlagSource) Priority() int { return 40 }

func (s *FlagSource) Load(k *koanf.Koanf) error {
	if s.Flags != nil {
		provider := posflag.ProviderWithFlag(s.Flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := FlagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(s.Flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return fmt.Errorf("error loading command-line flags: %w", err)
		}
	}

	if s.Debug {
		_ = k.Set("log.level", "debug")
	}
	return nil
}

// FlagKeys maps CLI flag names to config keys
var FlagKeys = map[string]string{
	"log-level":        "log.level",
	"dir":              "download.dir",
	"quality":          "download.quality",
	"format":           "download.format",
	"auto-install":     "download.auto_install",
	"poll-interval":    "queue.poll_interval",
	"inbox":            "queue.inbox",
	"show-speed":       "ui.show_speed",
	"refresh-interval": "ui.refresh_interval",
}

// DefaultSources returns the standard sources: defaults, file, env, flags
func DefaultSources(configPath string, flags *pflag.FlagSet, debug bool) []Source {
	return []Source{
		&DefaultSource{},
		&FileSource{Path: configPath},
		&EnvSource{Prefix: EnvPrefix},
		&FlagSource{Flags: flags, Debug: debug},
	}
}

// sortSources orders sources by ascending priority, keeping ties stable
func sortSources(sources []Source) []Source {
	sorted := append([]Source(nil), sources...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() < sorted[j].Priority()
	})
	return sorted
}
