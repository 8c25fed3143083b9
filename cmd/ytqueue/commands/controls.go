package commands

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cast"

	"github.com/ytget/yt-queue/internal/download"
)

const controlHelp = "p pause · r resume · c cancel current · s [on|off] speed · q quit · <url> enqueue"

// controlResult is the outcome of one line typed on stdin
type controlResult struct {
	Message  string
	Enqueued int
	Quit     bool
}

// applyControl interprets one stdin line: a single-letter command, or a URL to
// enqueue with the given quality and format.
func applyControl(ctrl download.Controller, line, quality, format string) controlResult {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return controlResult{}
	}

	verb := strings.ToLower(fields[0])
	switch verb {
	case "p", "pause":
		ctrl.Pause()
		return controlResult{Message: "paused"}
	case "r", "resume":
		ctrl.Resume()
		return controlResult{Message: "resumed"}
	case "c", "cancel":
		ctrl.Cancel()
		return controlResult{Message: "cancel requested"}
	case "s", "speed":
		enabled := !ctrl.IsSpeedDisplayEnabled()
		if len(fields) > 1 {
			v, err := cast.ToBoolE(strings.NewReplacer("on", "true", "off", "false").Replace(strings.ToLower(fields[1])))
			if err != nil {
				return controlResult{Message: fmt.Sprintf("invalid speed setting %q", fields[1])}
			}
			enabled = v
		}
		ctrl.SetSpeedDisplayEnabled(enabled)
		if enabled {
			return controlResult{Message: "speed display on"}
		}
		return controlResult{Message: "speed display off"}
	case "q", "quit", "exit":
		return controlResult{Message: "stopping", Quit: true}
	case "h", "help", "?":
		return controlResult{Message: controlHelp}
	}

	if !isDownloadURL(fields[0]) {
		return controlResult{Message: fmt.Sprintf("unknown command %q (%s)", fields[0], controlHelp)}
	}
	n := ctrl.EnqueueMany(fields, quality, format)
	return controlResult{Message: fmt.Sprintf("added %d", n), Enqueued: n}
}

func isDownloadURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
