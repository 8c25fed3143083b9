package platform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ytget/yt-queue/internal/model"
)

func TestFormatSelection(t *testing.T) {
	tests := []struct {
		name      string
		quality   string
		format    string
		selector  string
		audio     string
		container string
	}{
		{"best mp4", "Best", "MP4", "bestvideo+bestaudio/best", "", "mp4"},
		{"720p webm", "720p", "WebM", "bestvideo[height<=720]+bestaudio/best[height<=720]", "", "webm"},
		{"lowercase quality", "1080P", "mkv", "bestvideo[height<=1080]+bestaudio/best[height<=1080]", "", "mkv"},
		{"audio ignores quality", "480p", "MP3", "bestaudio/best", "mp3", ""},
		{"ogg maps to vorbis", "Best", "OGG", "bestaudio/best", "vorbis", ""},
		{"unknown format falls back to mp4", "Best", "DIVX", "bestvideo+bestaudio/best", "", "mp4"},
		{"unparseable quality is best", "hd", "MP4", "bestvideo+bestaudio/best", "", "mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selector, audio, container := formatSelection(tt.quality, tt.format)
			assert.Equal(t, tt.selector, selector)
			assert.Equal(t, tt.audio, audio)
			assert.Equal(t, tt.container, container)
		})
	}
}

func TestQualityHeight(t *testing.T) {
	assert.Equal(t, 0, qualityHeight("Best"))
	assert.Equal(t, 0, qualityHeight(""))
	assert.Equal(t, 1440, qualityHeight("1440p"))
	assert.Equal(t, 240, qualityHeight(" 240p "))
}

func TestPercentLabel(t *testing.T) {
	assert.Equal(t, model.InitialPercentLabel, percentLabel(10, 0))
	assert.Equal(t, "50.0%", percentLabel(50, 100))
	assert.Equal(t, "100.0%", percentLabel(150, 100))
}

func TestSpeedLabel(t *testing.T) {
	assert.Empty(t, speedLabel(100, time.Second, false))
	assert.Empty(t, speedLabel(0, time.Second, true))
	assert.Empty(t, speedLabel(100, 0, true))
	assert.Equal(t, "2.0 MB/s", speedLabel(4_000_000, 2*time.Second, true))
}

func TestProgressSampleEvent(t *testing.T) {
	now := time.Now()
	sample := progressSample{
		status:     "downloading",
		downloaded: 500_000,
		total:      1_000_000,
		started:    now.Add(-time.Second),
		title:      "Clip",
	}

	ev := sample.event(now)
	assert.Equal(t, model.EventDownloading, ev.Kind)
	assert.Equal(t, "50.0%", ev.PercentLabel)
	assert.Equal(t, "500 kB/s", ev.SpeedLabel)
	assert.Equal(t, "Clip", ev.Title)
	assert.Equal(t, int64(1_000_000), ev.TotalBytes)

	sample.status = statusFinished
	ev = sample.event(now)
	assert.Equal(t, model.EventDownloading, ev.Kind)
	assert.Equal(t, "100%", ev.PercentLabel)
}

func TestNewYTDLPDownloaderOptions(t *testing.T) {
	y := NewYTDLPDownloader(func() string { return "/tmp" })
	assert.Equal(t, DefaultProgressInterval, y.interval)
	assert.False(t, y.autoInstall)

	y = NewYTDLPDownloader(func() string { return "/tmp" },
		WithProgressInterval(250*time.Millisecond),
		WithAutoInstall(true),
	)
	assert.Equal(t, 250*time.Millisecond, y.interval)
	assert.True(t, y.autoInstall)

	// Intervals above one second are ignored
	y = NewYTDLPDownloader(func() string { return "/tmp" }, WithProgressInterval(5*time.Second))
	assert.Equal(t, DefaultProgressInterval, y.interval)
}
