package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-queue/internal/download"
	"github.com/ytget/yt-queue/internal/model"
	"github.com/ytget/yt-queue/internal/platform"
	"github.com/ytget/yt-queue/internal/testutil"
)

func testLister() *platform.PlaylistLister {
	return platform.NewPlaylistListerWithItems(func(context.Context, string) ([]platform.PlaylistEntry, error) {
		return []platform.PlaylistEntry{
			{VideoID: "aaa", Title: "Lesson 1"},
			{VideoID: "bbb", Title: "Lesson 2"},
		}, nil
	}, zerolog.Nop())
}

// execute runs the root command with args and empty stdin
func execute(t *testing.T, deps dependencies, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand(deps)
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func runArgs(t *testing.T, extra ...string) []string {
	return append([]string{
		"run",
		"--no-color",
		"--dir", t.TempDir(),
		"--poll-interval", "5ms",
		"--refresh-interval", "10ms",
	}, extra...)
}

func TestVersionShort(t *testing.T) {
	out, err := execute(t, dependencies{}, "version", "--short")

	require.NoError(t, err)
	assert.Equal(t, "ytqueue version: dev\n", out)
}

func TestRunDownloadsArgumentsInOrder(t *testing.T) {
	d := testutil.NewScriptedDownloader().
		On("https://a.example/1", testutil.Script{Events: []model.ProgressEvent{testutil.Finished("One")}}).
		On("https://a.example/2", testutil.Script{Err: assert.AnError})

	out, err := execute(t, dependencies{downloader: d}, runArgs(t, "https://a.example/1", "https://a.example/2")...)

	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example/1", "https://a.example/2"}, d.Calls())
	assert.Contains(t, out, "✔ One")
	assert.Contains(t, out, "❌ ")
	assert.Contains(t, out, "Done 1 · Failed 1 · Cancelled 0")
}

func TestRunReadsURLFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(file, []byte("# list\nhttps://a.example/1\n\nhttps://a.example/2\n"), 0o644))

	d := testutil.NewScriptedDownloader()
	out, err := execute(t, dependencies{downloader: d}, runArgs(t, "--file", file, "https://a.example/0")...)

	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example/0", "https://a.example/1", "https://a.example/2"}, d.Calls())
	assert.Contains(t, out, "Done 3 · Failed 0 · Cancelled 0")
}

func TestRunEnqueuesPlaylist(t *testing.T) {
	d := testutil.NewScriptedDownloader()
	deps := dependencies{downloader: d, lister: testLister()}

	out, err := execute(t, deps, runArgs(t, "--playlist", "https://www.youtube.com/playlist?list=PL42")...)

	require.NoError(t, err)
	assert.Len(t, d.Calls(), 2)
	assert.Contains(t, d.Calls()[0], "aaa")
	assert.Contains(t, out, "2 videos queued")
}

func TestRunWithoutInput(t *testing.T) {
	_, err := execute(t, dependencies{downloader: testutil.NewScriptedDownloader()}, runArgs(t)...)

	assert.ErrorIs(t, err, ErrNothingQueued)
}

func TestRunRejectsInvalidQuality(t *testing.T) {
	_, err := execute(t, dependencies{downloader: testutil.NewScriptedDownloader()},
		runArgs(t, "--quality", "4320p", "https://a.example/1")...)

	assert.Error(t, err)
}

func TestRunMissingFile(t *testing.T) {
	_, err := execute(t, dependencies{downloader: testutil.NewScriptedDownloader()},
		runArgs(t, "--file", filepath.Join(t.TempDir(), "missing.txt"))...)

	assert.Error(t, err)
}

func TestPlaylistCommand(t *testing.T) {
	out, err := execute(t, dependencies{lister: testLister()},
		"playlist", "--no-color", "https://www.youtube.com/playlist?list=PL42")

	require.NoError(t, err)
	assert.Contains(t, out, "Lesson 1 Playlist (2 videos)")
	assert.Contains(t, out, "Lesson 2")
}

func TestPlaylistCommandURLsOnly(t *testing.T) {
	out, err := execute(t, dependencies{lister: testLister()},
		"playlist", "--urls", "https://www.youtube.com/playlist?list=PL42")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "bbb")
}

func TestPlaylistCommandRejectsVideoURL(t *testing.T) {
	_, err := execute(t, dependencies{lister: testLister()}, "playlist", "https://www.youtube.com/watch?v=x")

	assert.ErrorIs(t, err, platform.ErrNotPlaylist)
}

func TestApplyControl(t *testing.T) {
	svc := download.NewService(testutil.NewScriptedDownloader())

	res := applyControl(svc, "p", "Best", "MP4")
	assert.True(t, svc.IsPaused())
	assert.Equal(t, "paused", res.Message)

	applyControl(svc, "resume", "Best", "MP4")
	assert.False(t, svc.IsPaused())

	svc.SetSpeedDisplayEnabled(true)
	applyControl(svc, "s", "Best", "MP4")
	assert.False(t, svc.IsSpeedDisplayEnabled())
	applyControl(svc, "s on", "Best", "MP4")
	assert.True(t, svc.IsSpeedDisplayEnabled())
	applyControl(svc, "speed 0", "Best", "MP4")
	assert.False(t, svc.IsSpeedDisplayEnabled())

	res = applyControl(svc, "s maybe", "Best", "MP4")
	assert.Contains(t, res.Message, "invalid")

	res = applyControl(svc, "https://a.example/1 https://a.example/2", "720p", "MKV")
	assert.Equal(t, 2, res.Enqueued)
	assert.Equal(t, "720p", svc.Snapshot().Pending[0].Quality)

	res = applyControl(svc, "bogus", "Best", "MP4")
	assert.Zero(t, res.Enqueued)
	assert.Contains(t, res.Message, "unknown command")

	assert.Equal(t, controlResult{}, applyControl(svc, "   ", "Best", "MP4"))
	assert.True(t, applyControl(svc, "q", "Best", "MP4").Quit)
}
