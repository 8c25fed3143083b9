// Package ui contains the Fyne desktop window for the download queue. It is a
// producer (URL entry, batch paste, playlist import) and an observer that
// redraws from queue snapshots on a fixed cadence.
package ui
