package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"github.com/ytget/yt-queue/internal/model"
)

func newTestPlaylist() *model.Playlist {
	pl := model.NewPlaylist("https://www.youtube.com/playlist?list=PL1")
	pl.Title = "Mix"
	pl.AddVideo(&model.PlaylistVideo{ID: "a", Title: "Intro", URL: "https://www.youtube.com/watch?v=a"})
	pl.AddVideo(&model.PlaylistVideo{ID: "b", Title: "Intro", URL: "https://www.youtube.com/watch?v=b"})
	pl.AddVideo(&model.PlaylistVideo{ID: "c", URL: "https://www.youtube.com/watch?v=c"})
	return pl
}

func TestPlaylistLabels(t *testing.T) {
	assert.Equal(t, []string{"1. Intro", "2. Intro", "3. c"}, playlistLabels(newTestPlaylist()))
}

func TestSelectedPositions(t *testing.T) {
	got := selectedPositions([]string{"3. c", "1. Intro", "junk", "0. zero", "x. bad"})
	assert.Equal(t, []int{2, 0}, got)
}

func TestPlaylistDialogSelection(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var confirmed []string
	pd := NewPlaylistDialog(test.NewWindow(nil), NewLocalization(), newTestPlaylist(), func(urls []string) {
		confirmed = urls
	})

	assert.Len(t, pd.SelectedURLs(), 3)

	pd.SelectNone()
	assert.Empty(t, pd.SelectedURLs())
	pd.onClose(true)
	assert.Nil(t, confirmed)

	pd.group.SetSelected([]string{"3. c", "2. Intro"})
	pd.onClose(false)
	assert.Nil(t, confirmed)

	pd.onClose(true)
	assert.Equal(t, []string{
		"https://www.youtube.com/watch?v=b",
		"https://www.youtube.com/watch?v=c",
	}, confirmed)

	pd.SelectAll()
	assert.Len(t, pd.SelectedURLs(), 3)
}
