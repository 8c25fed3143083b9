package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-queue/internal/model"
)

// PlaylistDialog lets the user pick which playlist videos to enqueue
type PlaylistDialog struct {
	playlist     *model.Playlist
	localization *Localization
	window       fyne.Window
	onConfirm    func(urls []string)

	labels []string
	group  *widget.CheckGroup
	dialog *dialog.ConfirmDialog
}

// NewPlaylistDialog creates the selection dialog with every video checked
func NewPlaylistDialog(window fyne.Window, localization *Localization, playlist *model.Playlist, onConfirm func(urls []string)) *PlaylistDialog {
	pd := &PlaylistDialog{
		playlist:     playlist,
		localization: localization,
		window:       window,
		onConfirm:    onConfirm,
		labels:       playlistLabels(playlist),
	}
	pd.createUI()
	return pd
}

func (pd *PlaylistDialog) createUI() {
	pd.group = widget.NewCheckGroup(pd.labels, nil)
	pd.group.SetSelected(pd.labels)

	selectAll := widget.NewButton(pd.localization.GetText(KeySelectAll), pd.SelectAll)
	selectNone := widget.NewButton(pd.localization.GetText(KeySelectNone), pd.SelectNone)

	title := widget.NewLabel(fmt.Sprintf("%s (%d)", pd.playlist.Title, pd.playlist.Len()))
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Truncation = fyne.TextTruncateEllipsis

	content := container.NewBorder(
		title,
		container.NewHBox(selectAll, selectNone),
		nil, nil,
		container.NewVScroll(pd.group),
	)

	pd.dialog = dialog.NewCustomConfirm(
		pd.localization.GetText(KeyImportPlaylist),
		pd.localization.GetText(KeyAdd),
		pd.localization.GetText(KeyCancel),
		content,
		pd.onClose,
		pd.window,
	)
	pd.dialog.Resize(fyne.NewSize(PlaylistDialogW, PlaylistDialogH))
}

// Show displays the dialog
func (pd *PlaylistDialog) Show() {
	pd.dialog.Show()
}

// SelectAll checks every video
func (pd *PlaylistDialog) SelectAll() {
	pd.group.SetSelected(pd.labels)
}

// SelectNone clears the selection
func (pd *PlaylistDialog) SelectNone() {
	pd.group.SetSelected(nil)
}

// SelectedURLs applies the checked labels to the playlist and returns the
// URLs to enqueue in playlist order
func (pd *PlaylistDialog) SelectedURLs() []string {
	pd.playlist.SelectOnly(selectedPositions(pd.group.Selected))
	return pd.playlist.SelectedURLs()
}

func (pd *PlaylistDialog) onClose(confirmed bool) {
	if !confirmed {
		return
	}
	urls := pd.SelectedURLs()
	if len(urls) > 0 && pd.onConfirm != nil {
		pd.onConfirm(urls)
	}
}

// playlistLabels numbers every video so duplicate titles stay distinct
func playlistLabels(playlist *model.Playlist) []string {
	labels := make([]string, 0, playlist.Len())
	for i, video := range playlist.Videos {
		title := video.Title
		if title == "" {
			title = video.ID
		}
		labels = append(labels, fmt.Sprintf("%d. %s", i+1, title))
	}
	return labels
}

// selectedPositions maps numbered labels back to zero-based playlist positions
func selectedPositions(selected []string) []int {
	positions := make([]int, 0, len(selected))
	for _, label := range selected {
		num, _, ok := strings.Cut(label, ".")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(num)
		if err != nil || n < 1 {
			continue
		}
		positions = append(positions, n-1)
	}
	return positions
}
