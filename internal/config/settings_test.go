package config

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

func newTestSettings() *Settings {
	defaults := DefaultConfig()
	defaults.Download.Dir = "/srv/media"
	defaults.Download.Quality = "720p"
	return NewSettings(test.NewApp(), defaults)
}

func TestSettingsFallBackToConfig(t *testing.T) {
	settings := newTestSettings()

	assert.Equal(t, "/srv/media", settings.DownloadDirectory())
	assert.Equal(t, "720p", settings.Quality())
	assert.Equal(t, "MP4", settings.Format())
	assert.True(t, settings.ShowSpeed())
}

func TestDownloadDirectory(t *testing.T) {
	settings := newTestSettings()

	settings.SetDownloadDirectory("/custom/downloads")
	assert.Equal(t, "/custom/downloads", settings.DownloadDirectory())

	settings.SetDownloadDirectory("")
	assert.Equal(t, "/srv/media", settings.DownloadDirectory())
}

func TestQuality(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"known label is stored", "1080p", "1080p"},
		{"unknown label is ignored", "8k", "720p"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := newTestSettings()
			settings.SetQuality(tt.input)
			assert.Equal(t, tt.expected, settings.Quality())
		})
	}
}

func TestFormat(t *testing.T) {
	settings := newTestSettings()

	settings.SetFormat("FLAC")
	assert.Equal(t, "FLAC", settings.Format())

	settings.SetFormat("DIVX")
	assert.Equal(t, "FLAC", settings.Format())
}

func TestShowSpeed(t *testing.T) {
	settings := newTestSettings()

	settings.SetShowSpeed(false)
	assert.False(t, settings.ShowSpeed())
	settings.SetShowSpeed(true)
	assert.True(t, settings.ShowSpeed())
}

func TestLanguage(t *testing.T) {
	settings := newTestSettings()
	assert.Equal(t, DefaultLanguage, settings.Language())

	settings.SetLanguage("ru")
	assert.Equal(t, "ru", settings.Language())

	settings.SetLanguage("")
	assert.Equal(t, DefaultLanguage, settings.Language())
}
