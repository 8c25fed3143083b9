package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/v2"

	"github.com/ytget/yt-queue/internal/model"
	"github.com/ytget/yt-queue/internal/platform"
)

// Defaults
const (
	DefaultLogLevel         = "info"
	DefaultProgressInterval = 500 * time.Millisecond
	DefaultPollInterval     = time.Second
	DefaultRefreshInterval  = 600 * time.Millisecond
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("quality", func(fl validator.FieldLevel) bool {
		return model.IsKnownQuality(fl.Field().String())
	})
	_ = v.RegisterValidation("media_format", func(fl validator.FieldLevel) bool {
		return model.IsKnownFormat(fl.Field().String())
	})
	return v
}

// Manager loads configuration from layered sources and keeps the result
type Manager struct {
	k       *koanf.Koanf
	sources []Source
	current Config
	mu      sync.RWMutex
}

// NewManager creates a manager that loads from sources
func NewManager(sources ...Source) *Manager {
	return &Manager{
		k:       koanf.New("."),
		sources: sortSources(sources),
		current: DefaultConfig(),
	}
}

// DefaultConfig returns the hardcoded baseline configuration
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Download: DownloadConfig{
			Dir:              platform.DefaultDownloadDir(),
			Quality:          model.DefaultQuality,
			Format:           model.DefaultFormat,
			ProgressInterval: DefaultProgressInterval,
		},
		Queue: QueueConfig{
			PollInterval: DefaultPollInterval,
		},
		UI: UIConfig{
			RefreshInterval: DefaultRefreshInterval,
			ShowSpeed:       true,
		},
	}
}

// DefaultConfigAsMap flattens DefaultConfig for the confmap provider
func DefaultConfigAsMap() map[string]interface{} {
	def := DefaultConfig()
	return map[string]interface{}{
		"log.level": def.Log.Level,

		"download.dir":               def.Download.Dir,
		"download.quality":           def.Download.Quality,
		"download.format":            def.Download.Format,
		"download.progress_interval": def.Download.ProgressInterval,
		"download.auto_install":      def.Download.AutoInstall,

		"queue.poll_interval": def.Queue.PollInterval,
		"queue.inbox":         def.Queue.Inbox,

		"ui.refresh_interval": def.UI.RefreshInterval,
		"ui.show_speed":       def.UI.ShowSpeed,
	}
}

// Load applies every source, unmarshals and validates the result. On error
// the previously loaded configuration is kept.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := koanf.New(".")
	for _, src := range m.sources {
		if err := src.Load(k); err != nil {
			return fmt.Errorf("source %s: %w", src.Name(), err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return err
	}

	m.k = k
	m.current = cfg
	return nil
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// String returns the raw value for key after the last Load, or ""
func (m *Manager) String(key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.k.String(key)
}

// Validate checks cfg and reports every invalid field in one error
func Validate(cfg Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
