package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// ShowAddManyDialog asks for a block of URLs, one per line, and passes the
// raw text to onSubmit when confirmed
func ShowAddManyDialog(window fyne.Window, localization *Localization, onSubmit func(text string)) {
	entry := widget.NewMultiLineEntry()
	entry.SetPlaceHolder(localization.GetText(KeyAddManyHint))
	entry.Wrapping = fyne.TextWrapOff

	d := dialog.NewCustomConfirm(
		localization.GetText(KeyAddMany),
		localization.GetText(KeyAdd),
		localization.GetText(KeyCancel),
		container.NewStack(entry),
		func(confirmed bool) {
			if !confirmed || strings.TrimSpace(entry.Text) == "" {
				return
			}
			onSubmit(entry.Text)
		},
		window,
	)
	d.Resize(fyne.NewSize(AddManyDialogW, AddManyDialogH))
	d.Show()
	window.Canvas().Focus(entry)
}
