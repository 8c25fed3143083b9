package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// compactSizes override default theme sizes
var compactSizes = map[fyne.ThemeSizeName]float32{
	theme.SizeNamePadding:         3,
	theme.SizeNameInnerPadding:    6,
	theme.SizeNameLineSpacing:     2,
	theme.SizeNameScrollBar:       12,
	theme.SizeNameText:            13,
	theme.SizeNameHeadingText:     16,
	theme.SizeNameSubHeadingText:  13,
	theme.SizeNameCaptionText:     10,
	theme.SizeNameInputRadius:     3,
	theme.SizeNameSelectionRadius: 2,
}

// outcomeColors override the status colors
var outcomeColors = map[fyne.ThemeColorName]color.Color{
	theme.ColorNameSuccess: color.RGBA{R: 46, G: 160, B: 67, A: 255},
	theme.ColorNameError:   color.RGBA{R: 183, G: 28, B: 28, A: 255},
	theme.ColorNameWarning: color.RGBA{R: 255, G: 193, B: 7, A: 255},
	theme.ColorNamePrimary: color.RGBA{R: 25, G: 118, B: 210, A: 255},
}

// QueueTheme is a compact variant of the default theme
type QueueTheme struct {
	base fyne.Theme
}

// NewQueueTheme creates the compact queue theme
func NewQueueTheme() fyne.Theme {
	return &QueueTheme{base: theme.DefaultTheme()}
}

// Color returns theme colors
func (t *QueueTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if c, ok := outcomeColors[name]; ok {
		return c
	}
	return t.base.Color(name, variant)
}

// Font returns theme fonts
func (t *QueueTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon returns theme icons
func (t *QueueTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *QueueTheme) Size(name fyne.ThemeSizeName) float32 {
	if s, ok := compactSizes[name]; ok {
		return s
	}
	return t.base.Size(name)
}
