package ui

import (
	"context"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-queue/internal/config"
	"github.com/ytget/yt-queue/internal/download"
	"github.com/ytget/yt-queue/internal/model"
	"github.com/ytget/yt-queue/internal/testutil"
)

type stubLister struct {
	playlist *model.Playlist
	err      error
}

func (l stubLister) List(context.Context, string) (*model.Playlist, error) {
	return l.playlist, l.err
}

func newTestRoot(t *testing.T, d download.Downloader) (*RootUI, *download.Service) {
	t.Helper()

	app := test.NewApp()
	t.Cleanup(app.Quit)

	defaults := config.DefaultConfig()
	defaults.Download.Dir = t.TempDir()
	settings := config.NewSettings(app, defaults)

	svc := download.NewService(d, download.WithPollInterval(5*time.Millisecond))
	window := test.NewWindow(nil)
	t.Cleanup(window.Close)

	return NewRootUI(window, svc, settings, stubLister{}, zerolog.Nop()), svc
}

func TestAddEnqueuesAndClearsEntry(t *testing.T) {
	root, svc := newTestRoot(t, testutil.NewScriptedDownloader())

	test.Type(root.urlEntry, "https://youtu.be/abc123")
	test.Tap(root.addBtn)

	require.Equal(t, 1, svc.QueueSize())
	pending := svc.Snapshot().Pending
	assert.Equal(t, "abc123", pending[0].ShortTitle)
	assert.Equal(t, model.DefaultQuality, pending[0].Quality)
	assert.Equal(t, model.DefaultFormat, pending[0].Format)

	assert.Empty(t, root.urlEntry.Text)
	assert.Equal(t, "Pending (1)", root.pendingHeader.Text)
	assert.Contains(t, root.notificationLabel.Text, "abc123")
}

func TestAddUsesSelectedQualityAndFormat(t *testing.T) {
	root, svc := newTestRoot(t, testutil.NewScriptedDownloader())

	root.qualitySelect.SetSelected("720p")
	root.formatSelect.SetSelected("MP3")
	test.Type(root.urlEntry, "https://example.com/a.mp4")
	test.Tap(root.addBtn)

	pending := svc.Snapshot().Pending
	require.Len(t, pending, 1)
	assert.Equal(t, "720p", pending[0].Quality)
	assert.Equal(t, "MP3", pending[0].Format)
	assert.Equal(t, "720p", root.settings.Quality())
	assert.Equal(t, "MP3", root.settings.Format())
}

func TestAddRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{name: "empty", input: "", message: "Please enter a URL"},
		{name: "whitespace", input: "   ", message: "Please enter a URL"},
		{name: "wrong scheme", input: "ftp://example.com/file", message: "Invalid URL"},
		{name: "no scheme", input: "youtube.com/watch?v=abc", message: "Invalid URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, svc := newTestRoot(t, testutil.NewScriptedDownloader())

			root.urlEntry.SetText(tt.input)
			test.Tap(root.addBtn)

			assert.Zero(t, svc.QueueSize())
			assert.True(t, root.notificationLabel.Visible())
			assert.Contains(t, root.notificationLabel.Text, tt.message)
		})
	}
}

func TestAddLinesSkipsBlankAndComments(t *testing.T) {
	root, svc := newTestRoot(t, testutil.NewScriptedDownloader())

	n := root.addLines("https://a.example/1\n\n# skipped\n  https://a.example/2  \n")

	assert.Equal(t, 2, n)
	assert.Equal(t, 2, svc.QueueSize())
	assert.Equal(t, "Added 2 URLs to queue", root.notificationLabel.Text)
	assert.Equal(t, "Queue: 2 · Idle", root.statusLabel.Text)
}

func TestTogglePause(t *testing.T) {
	root, svc := newTestRoot(t, testutil.NewScriptedDownloader())

	assert.Contains(t, root.pauseBtn.Text, "Pause")

	test.Tap(root.pauseBtn)
	assert.True(t, svc.IsPaused())
	assert.Contains(t, root.pauseBtn.Text, "Resume")
	assert.Contains(t, root.statusLabel.Text, "Paused")

	test.Tap(root.pauseBtn)
	assert.False(t, svc.IsPaused())
	assert.Contains(t, root.pauseBtn.Text, "Pause")
}

func TestSpeedToggleIsStored(t *testing.T) {
	root, svc := newTestRoot(t, testutil.NewScriptedDownloader())

	require.True(t, root.speedCheck.Checked)
	test.Tap(root.speedCheck)

	assert.False(t, svc.IsSpeedDisplayEnabled())
	assert.False(t, root.settings.ShowSpeed())
}

func TestRefreshShowsActiveJobAndCancel(t *testing.T) {
	release := make(chan struct{})

	const url = "https://www.youtube.com/watch?v=held"
	d := testutil.NewScriptedDownloader().On(url, testutil.Script{
		Events: []model.ProgressEvent{
			testutil.Downloading("42.0%", "1.2 MB/s"),
			testutil.Downloading("50.0%", "1.2 MB/s"),
		},
		HoldAfter: 1,
		Release:   release,
	})
	root, svc := newTestRoot(t, d)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx, nil) }()
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
	})

	svc.Enqueue(url, "Best", "MP4")
	require.Eventually(t, func() bool {
		snap := svc.Snapshot()
		return snap.InFlight != nil && snap.InFlight.PercentLabel == "42.0%"
	}, time.Second, 5*time.Millisecond)

	root.Refresh()
	assert.Equal(t, "held", root.currentLabel.Text)
	assert.Equal(t, "42.0% · 1.2 MB/s", root.progressLabel.Text)
	assert.False(t, root.cancelBtn.Disabled())

	test.Tap(root.cancelBtn)
	close(release)
	require.Eventually(t, func() bool {
		return len(svc.Snapshot().Completed) == 1
	}, time.Second, 5*time.Millisecond)

	root.Refresh()
	assert.Equal(t, DashPlaceholder, root.currentLabel.Text)
	assert.Empty(t, root.progressLabel.Text)
	assert.True(t, root.cancelBtn.Disabled())
	assert.Equal(t, "Completed (1)", root.completedHeader.Text)
	assert.Equal(t, "Done 0 · Failed 0 · Cancelled 1", root.statsLabel.Text)
}

func TestCompletedRowsNewestFirst(t *testing.T) {
	root, _ := newTestRoot(t, testutil.NewScriptedDownloader())
	root.completed = []model.CompletionRecord{
		{Outcome: model.OutcomeSucceeded, Title: "first", Elapsed: 2 * time.Second},
		{Outcome: model.OutcomeFailed, Title: "second", Elapsed: 3 * time.Second},
	}

	row := newEntryRow()
	root.updateCompletedRow(0, row)

	labels := row.(*fyne.Container).Objects
	assert.Equal(t, root.completed[1].Label(), labels[0].(*widget.Label).Text)
	assert.Equal(t, "3s", labels[1].(*widget.Label).Text)
}

func TestProgressText(t *testing.T) {
	inFlight := &model.InFlightStatus{PercentLabel: "10.0%"}

	assert.Empty(t, progressText(model.Snapshot{}, true))
	assert.Equal(t, "10.0%", progressText(model.Snapshot{InFlight: inFlight, SpeedLabel: "1 MB/s"}, false))
	assert.Equal(t, "10.0% · 1 MB/s", progressText(model.Snapshot{InFlight: inFlight, SpeedLabel: "1 MB/s"}, true))
	assert.Equal(t, "10.0%", progressText(model.Snapshot{InFlight: inFlight}, true))
}

func TestValidateURL(t *testing.T) {
	assert.NoError(t, validateURL(""))
	assert.NoError(t, validateURL("https://youtu.be/x"))
	assert.NoError(t, validateURL("http://example.com"))
	assert.Error(t, validateURL("file:///etc/passwd"))
	assert.Error(t, validateURL("://bad"))
}

func TestImportPlaylistRejectsPlainVideo(t *testing.T) {
	root, _ := newTestRoot(t, testutil.NewScriptedDownloader())

	root.urlEntry.SetText("https://www.youtube.com/watch?v=abc")
	test.Tap(root.playlistBtn)

	assert.Equal(t, "Invalid URL", root.notificationLabel.Text)
	assert.False(t, root.playlistBtn.Disabled())
}

func TestImportPlaylistDisabledWithoutLister(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	settings := config.NewSettings(app, config.DefaultConfig())
	svc := download.NewService(testutil.NewScriptedDownloader())
	root := NewRootUI(test.NewWindow(nil), svc, settings, nil, zerolog.Nop())

	assert.True(t, root.playlistBtn.Disabled())
}

func TestLanguageChangeRetranslates(t *testing.T) {
	root, _ := newTestRoot(t, testutil.NewScriptedDownloader())

	root.onLanguageChange("ru")

	assert.Equal(t, "ru", root.settings.Language())
	assert.Equal(t, "Добавить", root.addBtn.Text)
	assert.Equal(t, "YT Очередь", root.window.Title())
}

func TestSettingsDialogSave(t *testing.T) {
	root, _ := newTestRoot(t, testutil.NewScriptedDownloader())

	saved := false
	sd := NewSettingsDialog(root.settings, root.localization, root.window, func() { saved = true })
	sd.loadCurrentSettings()
	assert.Equal(t, "English", sd.languageSelect.Selected)

	sd.downloadDirEntry.SetText("/media/videos")
	sd.languageSelect.SetSelected("Português")
	sd.save()

	assert.True(t, saved)
	assert.Equal(t, "/media/videos", root.settings.DownloadDirectory())
	assert.Equal(t, "pt", root.settings.Language())
}

func TestOpenFolderFailureIsReported(t *testing.T) {
	root, _ := newTestRoot(t, testutil.NewScriptedDownloader())
	root.settings.SetDownloadDirectory("/definitely/not/here")

	root.onOpenFolder()

	assert.True(t, root.notificationLabel.Visible())
}
