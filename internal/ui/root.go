package ui

import (
	"context"
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/ytget/yt-queue/internal/config"
	"github.com/ytget/yt-queue/internal/download"
	"github.com/ytget/yt-queue/internal/model"
	"github.com/ytget/yt-queue/internal/platform"
)

// PlaylistListTimeout bounds a playlist import started from the window
const PlaylistListTimeout = 90 * time.Second

// PlaylistLister resolves a playlist URL into its videos
type PlaylistLister interface {
	List(ctx context.Context, url string) (*model.Playlist, error)
}

// RootUI represents the main window
type RootUI struct {
	window       fyne.Window
	ctrl         download.Controller
	settings     *config.Settings
	localization *Localization
	lister       PlaylistLister
	logger       zerolog.Logger

	urlEntry      *widget.Entry
	qualitySelect *widget.Select
	formatSelect  *widget.Select
	addBtn        *widget.Button
	addManyBtn    *widget.Button
	playlistBtn   *widget.Button
	pauseBtn      *widget.Button
	cancelBtn     *widget.Button
	speedCheck    *widget.Check

	statusLabel       *widget.Label
	currentLabel      *widget.Label
	progressLabel     *widget.Label
	statsLabel        *widget.Label
	notificationLabel *widget.Label
	pendingHeader     *widget.Label
	completedHeader   *widget.Label

	pendingList   *widget.List
	completedList *widget.List

	// last snapshot, only touched on the UI goroutine
	pending   []model.DisplayEntry
	completed []model.CompletionRecord
}

// NewRootUI creates and initializes the main window content. lister may be
// nil, which disables playlist import.
func NewRootUI(window fyne.Window, ctrl download.Controller, settings *config.Settings, lister PlaylistLister, logger zerolog.Logger) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.Language())

	ui := &RootUI{
		window:       window,
		ctrl:         ctrl,
		settings:     settings,
		localization: localization,
		lister:       lister,
		logger:       logger,
	}

	ctrl.SetSpeedDisplayEnabled(settings.ShowSpeed())
	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.setupUI()
	ui.Refresh()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.urlEntry.Validator = validateURL
	ui.urlEntry.OnSubmitted = func(string) { ui.onAdd() }

	ui.qualitySelect = widget.NewSelect(model.Qualities, func(q string) {
		ui.settings.SetQuality(q)
	})
	ui.qualitySelect.SetSelected(ui.settings.Quality())

	ui.formatSelect = widget.NewSelect(model.Formats(), func(f string) {
		ui.settings.SetFormat(f)
	})
	ui.formatSelect.SetSelected(ui.settings.Format())

	ui.addBtn = widget.NewButton(ui.localization.GetText(KeyAdd), ui.onAdd)
	ui.addBtn.Importance = widget.HighImportance
	ui.addManyBtn = widget.NewButton(IconList+" "+ui.localization.GetText(KeyAddMany), ui.onAddMany)
	ui.playlistBtn = widget.NewButton(ui.localization.GetText(KeyImportPlaylist), ui.onImportPlaylist)
	if ui.lister == nil {
		ui.playlistBtn.Disable()
	}

	ui.pauseBtn = widget.NewButton("", ui.onTogglePause)
	ui.cancelBtn = widget.NewButton(IconStop+" "+ui.localization.GetText(KeyCancelCurrent), ui.onCancel)
	ui.speedCheck = widget.NewCheck(ui.localization.GetText(KeyShowSpeed), ui.onSpeedToggled)
	ui.speedCheck.SetChecked(ui.ctrl.IsSpeedDisplayEnabled())

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance
	folderBtn := widget.NewButton(IconFolder, ui.onOpenFolder)
	folderBtn.Importance = widget.LowImportance

	urlRow := container.NewBorder(nil, nil, container.NewHBox(settingsBtn, folderBtn),
		container.NewHBox(ui.qualitySelect, ui.formatSelect, ui.addBtn),
		ui.urlEntry)
	actionRow := container.NewHBox(ui.addManyBtn, ui.playlistBtn, widget.NewSeparator(),
		ui.pauseBtn, ui.cancelBtn, ui.speedCheck)

	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Hide()

	ui.statusLabel = widget.NewLabel("")
	ui.statusLabel.TextStyle = fyne.TextStyle{Bold: true}
	ui.currentLabel = widget.NewLabel("")
	ui.currentLabel.Truncation = fyne.TextTruncateEllipsis
	ui.progressLabel = widget.NewLabel("")
	ui.statsLabel = widget.NewLabel("")

	statusPanel := container.NewVBox(
		container.NewBorder(nil, nil, ui.statusLabel, ui.statsLabel),
		ui.currentLabel,
		ui.progressLabel,
	)

	ui.pendingList = widget.NewList(
		func() int { return len(ui.pending) },
		func() fyne.CanvasObject { return newEntryRow() },
		func(id widget.ListItemID, obj fyne.CanvasObject) { ui.updatePendingRow(id, obj) },
	)
	ui.completedList = widget.NewList(
		func() int { return len(ui.completed) },
		func() fyne.CanvasObject { return newEntryRow() },
		func(id widget.ListItemID, obj fyne.CanvasObject) { ui.updateCompletedRow(id, obj) },
	)

	ui.pendingHeader = widget.NewLabel("")
	ui.completedHeader = widget.NewLabel("")
	lists := container.NewVSplit(
		container.NewBorder(ui.pendingHeader, nil, nil, nil, ui.pendingList),
		container.NewBorder(ui.completedHeader, nil, nil, nil, ui.completedList),
	)

	top := container.NewVBox(urlRow, actionRow, ui.notificationLabel, widget.NewSeparator(), statusPanel)
	ui.window.SetContent(container.NewBorder(top, nil, nil, nil, lists))
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)
	openItem := fyne.NewMenuItem(ui.localization.GetText(KeyOpenFolder), ui.onOpenFolder)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	languages := ui.localization.GetAvailableLanguages()
	for _, code := range slices.Sorted(maps.Keys(languages)) {
		langCode := code
		item := fyne.NewMenuItem(languages[code], func() { ui.onLanguageChange(langCode) })
		item.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, item)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), openItem, settingsItem),
		languageMenu,
	))
}

// StartRefresh redraws from a fresh snapshot every interval until ctx is done
func (ui *RootUI) StartRefresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fyne.Do(ui.Refresh)
			}
		}
	}()
}

// Refresh redraws every status element from one snapshot. It must run on the
// UI goroutine.
func (ui *RootUI) Refresh() {
	snap := ui.ctrl.Snapshot()
	paused := ui.ctrl.IsPaused()

	ui.pending = snap.Pending
	ui.completed = snap.Completed

	ui.statusLabel.SetText(ui.statusText(ui.ctrl.QueueSize(), paused, snap.InFlight != nil))
	ui.currentLabel.SetText(currentText(snap.InFlight))
	ui.progressLabel.SetText(progressText(snap, ui.ctrl.IsSpeedDisplayEnabled()))
	ui.statsLabel.SetText(fmt.Sprintf(ui.localization.GetText(KeyStats),
		snap.Stats.Succeeded, snap.Stats.Failed, snap.Stats.Cancelled))

	if paused {
		ui.pauseBtn.SetText(IconPlay + " " + ui.localization.GetText(KeyResume))
	} else {
		ui.pauseBtn.SetText(IconPause + " " + ui.localization.GetText(KeyPause))
	}
	if snap.InFlight == nil {
		ui.cancelBtn.Disable()
	} else {
		ui.cancelBtn.Enable()
	}

	ui.pendingHeader.SetText(fmt.Sprintf("%s (%d)", ui.localization.GetText(KeyPending), len(ui.pending)))
	ui.completedHeader.SetText(fmt.Sprintf("%s (%d)", ui.localization.GetText(KeyCompleted), len(ui.completed)))
	ui.pendingList.Refresh()
	ui.completedList.Refresh()
}

func (ui *RootUI) statusText(queued int, paused, running bool) string {
	state := ui.localization.GetText(KeyIdle)
	switch {
	case paused:
		state = ui.localization.GetText(KeyPaused)
	case running:
		state = IconPlay
	}
	return fmt.Sprintf(ui.localization.GetText(KeyQueueSize), queued) + MiddleDotSeparator + state
}

func currentText(inFlight *model.InFlightStatus) string {
	if inFlight == nil {
		return DashPlaceholder
	}
	return inFlight.Title
}

func progressText(snap model.Snapshot, showSpeed bool) string {
	if snap.InFlight == nil {
		return ""
	}
	text := snap.InFlight.PercentLabel
	if showSpeed && snap.SpeedLabel != "" {
		text += MiddleDotSeparator + snap.SpeedLabel
	}
	return text
}

// newEntryRow is the list row template: title on the left, detail on the right
func newEntryRow() fyne.CanvasObject {
	title := widget.NewLabel("")
	title.Truncation = fyne.TextTruncateEllipsis
	detail := widget.NewLabel("")
	return container.NewBorder(nil, nil, nil, detail, title)
}

func setEntryRow(obj fyne.CanvasObject, title, detail string) {
	row, ok := obj.(*fyne.Container)
	if !ok || len(row.Objects) < 2 {
		return
	}
	// Border layout stores the center object first, then the edges
	if l, ok := row.Objects[0].(*widget.Label); ok {
		l.SetText(title)
	}
	if l, ok := row.Objects[1].(*widget.Label); ok {
		l.SetText(detail)
	}
}

func (ui *RootUI) updatePendingRow(id widget.ListItemID, obj fyne.CanvasObject) {
	if id < 0 || id >= len(ui.pending) {
		return
	}
	entry := ui.pending[id]
	setEntryRow(obj, entry.ShortTitle, entry.Quality+MiddleDotSeparator+entry.Format)
}

// updateCompletedRow renders the log newest first
func (ui *RootUI) updateCompletedRow(id widget.ListItemID, obj fyne.CanvasObject) {
	if id < 0 || id >= len(ui.completed) {
		return
	}
	rec := ui.completed[len(ui.completed)-1-id]
	setEntryRow(obj, rec.Label(), rec.Elapsed.Round(time.Second).String())
}

// validateURL accepts empty input and http(s) URLs
func validateURL(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}

	parsed, err := url.Parse(input)
	if err != nil {
		return err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}
	return nil
}

func (ui *RootUI) selection() (quality, format string) {
	quality, format = ui.qualitySelect.Selected, ui.formatSelect.Selected
	if quality == "" {
		quality = model.DefaultQuality
	}
	if format == "" {
		format = model.DefaultFormat
	}
	return quality, format
}

// onAdd enqueues the URL in the entry
func (ui *RootUI) onAdd() {
	text := strings.TrimSpace(ui.urlEntry.Text)
	if text == "" {
		ui.showNotification(ui.localization.GetText(KeyPleaseEnterURL))
		return
	}
	if err := validateURL(text); err != nil {
		ui.showNotification(ui.localization.GetText(KeyInvalidURL) + ": " + err.Error())
		return
	}

	quality, format := ui.selection()
	job := ui.ctrl.Enqueue(text, quality, format)
	ui.logger.Debug().Str("job", job.ID).Str("url", job.URL).Msg("Enqueued from window")

	ui.urlEntry.SetText("")
	ui.showNotification(ui.localization.GetText(KeyTaskAdded) + ": " + job.Title)
	ui.Refresh()
}

// onAddMany opens the batch paste dialog
func (ui *RootUI) onAddMany() {
	ShowAddManyDialog(ui.window, ui.localization, func(text string) {
		ui.addLines(text)
	})
}

// addLines enqueues one job per non-blank, non-comment line
func (ui *RootUI) addLines(text string) int {
	quality, format := ui.selection()
	n := ui.ctrl.EnqueueMany(strings.Split(text, "\n"), quality, format)
	ui.showNotification(fmt.Sprintf(ui.localization.GetText(KeyTasksAdded), n))
	ui.Refresh()
	return n
}

// onImportPlaylist lists the playlist in the entry in the background and
// opens the selection dialog
func (ui *RootUI) onImportPlaylist() {
	text := strings.TrimSpace(ui.urlEntry.Text)
	if ui.lister == nil || !platform.IsPlaylistURL(text) {
		ui.showNotification(ui.localization.GetText(KeyInvalidURL))
		return
	}

	ui.showNotification(ui.localization.GetText(KeyLoadingPlaylist))
	ui.playlistBtn.Disable()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), PlaylistListTimeout)
		defer cancel()

		playlist, err := ui.lister.List(ctx, text)
		fyne.Do(func() {
			ui.playlistBtn.Enable()
			if err != nil {
				ui.logger.Error().Err(err).Str("url", text).Msg("Playlist import failed")
				ui.showNotification(ui.localization.GetText(KeyPlaylistFailed) + ": " + err.Error())
				return
			}
			ui.hideNotification()
			ui.urlEntry.SetText("")
			NewPlaylistDialog(ui.window, ui.localization, playlist, ui.enqueuePlaylist).Show()
		})
	}()
}

func (ui *RootUI) enqueuePlaylist(urls []string) {
	quality, format := ui.selection()
	n := ui.ctrl.EnqueueMany(urls, quality, format)
	ui.showNotification(fmt.Sprintf(ui.localization.GetText(KeyTasksAdded), n))
	ui.Refresh()
}

func (ui *RootUI) onTogglePause() {
	if ui.ctrl.IsPaused() {
		ui.ctrl.Resume()
	} else {
		ui.ctrl.Pause()
	}
	ui.Refresh()
}

func (ui *RootUI) onCancel() {
	ui.ctrl.Cancel()
	ui.Refresh()
}

func (ui *RootUI) onSpeedToggled(show bool) {
	ui.ctrl.SetSpeedDisplayEnabled(show)
	ui.settings.SetShowSpeed(show)
	if ui.progressLabel != nil {
		ui.Refresh()
	}
}

func (ui *RootUI) onOpenFolder() {
	if err := platform.OpenDirectory(ui.settings.DownloadDirectory()); err != nil {
		ui.logger.Warn().Err(err).Msg("Failed to open download directory")
		ui.showNotification(err.Error())
	}
}

func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, func() {
		ui.localization.SetLanguage(ui.settings.Language())
		ui.refreshUITexts()
		ui.showNotification(ui.localization.GetText(KeySettingsSaved))
	}).Show()
}

func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
}

// refreshUITexts reapplies every translated string
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.addBtn.SetText(ui.localization.GetText(KeyAdd))
	ui.addManyBtn.SetText(IconList + " " + ui.localization.GetText(KeyAddMany))
	ui.playlistBtn.SetText(ui.localization.GetText(KeyImportPlaylist))
	ui.cancelBtn.SetText(IconStop + " " + ui.localization.GetText(KeyCancelCurrent))
	ui.speedCheck.Text = ui.localization.GetText(KeyShowSpeed)
	ui.speedCheck.Refresh()
	ui.createMenu()
	ui.Refresh()
}

func (ui *RootUI) showNotification(message string) {
	ui.notificationLabel.SetText(message)
	ui.notificationLabel.Show()
}

func (ui *RootUI) hideNotification() {
	ui.notificationLabel.Hide()
}
