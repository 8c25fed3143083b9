// Package testutil provides scripted collaborators for worker tests.
package testutil

import (
	"context"
	"sync"

	"github.com/ytget/yt-queue/internal/model"
)

// Script describes how ScriptedDownloader behaves for one URL
type Script struct {
	// Events are delivered to the progress callback in order
	Events []model.ProgressEvent
	// Release, when set, blocks the download after HoldAfter events until it
	// is closed or the context ends
	Release   <-chan struct{}
	HoldAfter int
	// Err is returned after all events were delivered
	Err error
	// Panic, when set, is raised before any event
	Panic any
}

// ScriptedDownloader replays canned progress sequences keyed by URL.
// Unknown URLs succeed with no events.
type ScriptedDownloader struct {
	mu       sync.Mutex
	scripts  map[string]Script
	calls    []string
	hookErrs []error
	started  chan string
}

// NewScriptedDownloader creates a downloader with no scripts
func NewScriptedDownloader() *ScriptedDownloader {
	return &ScriptedDownloader{
		scripts: make(map[string]Script),
		started: make(chan string, 256),
	}
}

// On registers the script used for url
func (d *ScriptedDownloader) On(url string, script Script) *ScriptedDownloader {
	d.mu.Lock()
	d.scripts[url] = script
	d.mu.Unlock()
	return d
}

// Download implements the worker's downloader contract
func (d *ScriptedDownloader) Download(ctx context.Context, job model.Job, progress model.ProgressFunc) error {
	d.mu.Lock()
	script := d.scripts[job.URL]
	d.calls = append(d.calls, job.URL)
	d.mu.Unlock()

	select {
	case d.started <- job.URL:
	default:
	}

	if script.Panic != nil {
		panic(script.Panic)
	}

	for i, ev := range script.Events {
		if i == script.HoldAfter {
			if err := d.hold(ctx, script.Release); err != nil {
				return err
			}
		}
		if err := progress(ev); err != nil {
			d.recordHookErr(err)
			return err
		}
	}
	if script.HoldAfter >= len(script.Events) {
		if err := d.hold(ctx, script.Release); err != nil {
			return err
		}
	}
	return script.Err
}

func (d *ScriptedDownloader) hold(ctx context.Context, release <-chan struct{}) error {
	if release == nil {
		return nil
	}
	select {
	case <-release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *ScriptedDownloader) recordHookErr(err error) {
	d.mu.Lock()
	d.hookErrs = append(d.hookErrs, err)
	d.mu.Unlock()
}

// Calls returns the URLs passed to Download, in call order
func (d *ScriptedDownloader) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.calls...)
}

// HookErrors returns the errors the progress callback returned
func (d *ScriptedDownloader) HookErrors() []error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]error(nil), d.hookErrs...)
}

// Started delivers each URL as its download begins
func (d *ScriptedDownloader) Started() <-chan string {
	return d.started
}

// Downloading builds a progress event with the given labels
func Downloading(percent, speed string) model.ProgressEvent {
	return model.ProgressEvent{Kind: model.EventDownloading, PercentLabel: percent, SpeedLabel: speed}
}

// Finished builds a completion event carrying title
func Finished(title string) model.ProgressEvent {
	return model.ProgressEvent{Kind: model.EventFinished, Title: title}
}
