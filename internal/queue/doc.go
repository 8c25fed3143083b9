// Package queue holds the shared state of the download queue: the pending FIFO,
// the status registry observed by the UI, and the pause/cancel control signals.
//
// Store guards the FIFO and the registry with a single mutex that is only held
// for short copy or write sections. Controls lives outside that lock because
// the worker polls it on every progress event.
package queue
