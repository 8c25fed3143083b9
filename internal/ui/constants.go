package ui

import "time"

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconPlay     = "▶"
	IconPause    = "⏸"
	IconStop     = "⏹"
	IconFolder   = "📁"
	IconList     = "☰"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
)

// Layout sizing
const (
	WindowWidth     float32 = 820
	WindowHeight    float32 = 640
	PlaylistDialogW float32 = 560
	PlaylistDialogH float32 = 480
	AddManyDialogW  float32 = 520
	AddManyDialogH  float32 = 360
	SettingsDialogW float32 = 500
	SettingsDialogH float32 = 260
)

// Timing
const (
	DefaultRefreshInterval = 600 * time.Millisecond
)
