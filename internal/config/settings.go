package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/yt-queue/internal/model"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir = "download_directory"
	KeyQuality     = "quality"
	KeyFormat      = "format"
	KeyShowSpeed   = "show_speed"
	KeyLanguage    = "app_language"
)

// DefaultLanguage follows the system locale
const DefaultLanguage = "system"

// Settings keeps the desktop user's last choices in Fyne preferences. Values
// from Config act as fallbacks until the user picks something.
type Settings struct {
	app      fyne.App
	defaults Config
}

// NewSettings creates a settings manager falling back to defaults
func NewSettings(app fyne.App, defaults Config) *Settings {
	return &Settings{app: app, defaults: defaults}
}

// DownloadDirectory returns the configured download directory
func (s *Settings) DownloadDirectory() string {
	return s.app.Preferences().StringWithFallback(KeyDownloadDir, s.defaults.Download.Dir)
}

// SetDownloadDirectory sets the download directory; empty restores the default
func (s *Settings) SetDownloadDirectory(dir string) {
	if dir == "" {
		s.app.Preferences().RemoveValue(KeyDownloadDir)
		return
	}
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// Quality returns the last selected quality label
func (s *Settings) Quality() string {
	q := s.app.Preferences().StringWithFallback(KeyQuality, s.defaults.Download.Quality)
	if !model.IsKnownQuality(q) {
		return model.DefaultQuality
	}
	return q
}

// SetQuality stores quality if it is a known label
func (s *Settings) SetQuality(quality string) {
	if model.IsKnownQuality(quality) {
		s.app.Preferences().SetString(KeyQuality, quality)
	}
}

// Format returns the last selected format label
func (s *Settings) Format() string {
	f := s.app.Preferences().StringWithFallback(KeyFormat, s.defaults.Download.Format)
	if !model.IsKnownFormat(f) {
		return model.DefaultFormat
	}
	return f
}

// SetFormat stores format if it is a known label
func (s *Settings) SetFormat(format string) {
	if model.IsKnownFormat(format) {
		s.app.Preferences().SetString(KeyFormat, format)
	}
}

// ShowSpeed returns whether the transfer speed is displayed
func (s *Settings) ShowSpeed() bool {
	return s.app.Preferences().BoolWithFallback(KeyShowSpeed, s.defaults.UI.ShowSpeed)
}

// SetShowSpeed sets whether the transfer speed is displayed
func (s *Settings) SetShowSpeed(show bool) {
	s.app.Preferences().SetBool(KeyShowSpeed, show)
}

// Language returns the configured UI language code
func (s *Settings) Language() string {
	return s.app.Preferences().StringWithFallback(KeyLanguage, DefaultLanguage)
}

// SetLanguage sets the UI language code
func (s *Settings) SetLanguage(lang string) {
	if lang == "" {
		lang = DefaultLanguage
	}
	s.app.Preferences().SetString(KeyLanguage, lang)
}
