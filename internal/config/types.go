package config

import "time"

// Config is the root configuration structure
type Config struct {
	Log      LogConfig      `koanf:"log"`
	Download DownloadConfig `koanf:"download"`
	Queue    QueueConfig    `koanf:"queue"`
	UI       UIConfig       `koanf:"ui"`
}

// LogConfig holds logging related configuration
type LogConfig struct {
	Level string `koanf:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
}

// DownloadConfig holds yt-dlp adapter settings and the default job options
type DownloadConfig struct {
	Dir              string        `koanf:"dir"`
	Quality          string        `koanf:"quality" validate:"required,quality"`
	Format           string        `koanf:"format" validate:"required,media_format"`
	ProgressInterval time.Duration `koanf:"progress_interval" validate:"gt=0,lte=1s"`
	AutoInstall      bool          `koanf:"auto_install"`
}

// QueueConfig holds worker settings
type QueueConfig struct {
	PollInterval time.Duration `koanf:"poll_interval" validate:"gt=0"`
	Inbox        string        `koanf:"inbox"` // optional file tailed for new URLs
}

// UIConfig holds observer settings shared by the GUI and terminal view
type UIConfig struct {
	RefreshInterval time.Duration `koanf:"refresh_interval" validate:"gt=0"`
	ShowSpeed       bool          `koanf:"show_speed"`
}
