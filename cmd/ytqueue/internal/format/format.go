// Package format renders queue state for the terminal.
package format

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ytget/yt-queue/internal/model"
)

// Separator joins status fields
const Separator = " · "

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

// Console writes status lines. It is safe for concurrent use, so the worker's
// observer and the refresh loop can share it.
type Console struct {
	mu     sync.Mutex
	stdout io.Writer
	stderr io.Writer
	color  bool
}

// New creates a Console. With color disabled every line is plain text.
func New(stdout, stderr io.Writer, color bool) *Console {
	return &Console{stdout: stdout, stderr: stderr, color: color}
}

// FromCommand builds a Console on the command's writers, honouring --no-color
func FromCommand(cmd *cobra.Command) *Console {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	useColor := true
	if flag := cmd.Flags().Lookup("no-color"); flag != nil {
		if val, err := strconv.ParseBool(flag.Value.String()); err == nil && val {
			useColor = false
		}
	}

	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return New(stdout, stderr, useColor)
}

// Println writes a plain line to stdout
func (c *Console) Println(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintln(c.stdout, line)
}

// Errorln writes a highlighted line to stderr
func (c *Console) Errorln(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintln(c.stderr, c.paint(color.FgRed, line))
}

// Status renders the queue header followed by the active job, if any
func (c *Console) Status(snap model.Snapshot, queued int, paused, showSpeed bool) string {
	fields := []string{c.style(headerStyle, fmt.Sprintf("Queue: %d", queued))}

	switch {
	case paused:
		fields = append(fields, c.style(pausedStyle, "paused"))
	case snap.InFlight == nil:
		fields = append(fields, c.style(subtleStyle, "idle"))
	}

	if snap.InFlight != nil {
		fields = append(fields, c.style(activeStyle, snap.InFlight.Title), snap.InFlight.PercentLabel)
		if showSpeed && snap.SpeedLabel != "" {
			fields = append(fields, c.style(subtleStyle, snap.SpeedLabel))
		}
	}
	return strings.Join(fields, Separator)
}

// Record renders one completion with its elapsed time
func (c *Console) Record(rec model.CompletionRecord) string {
	line := fmt.Sprintf("%s (%s)", rec.Label(), rec.Elapsed.Round(time.Second))
	return c.paint(outcomeColor(rec.Outcome), line)
}

// Summary renders lifetime counters
func (c *Console) Summary(stats model.Stats) string {
	fields := []string{
		c.paint(color.FgGreen, fmt.Sprintf("Done %d", stats.Succeeded)),
		c.paint(color.FgRed, fmt.Sprintf("Failed %d", stats.Failed)),
		c.paint(color.FgYellow, fmt.Sprintf("Cancelled %d", stats.Cancelled)),
	}
	if avg := stats.AverageElapsed(); avg > 0 {
		fields = append(fields, "avg "+avg.Round(time.Second).String())
	}
	return strings.Join(fields, Separator)
}

func outcomeColor(outcome model.Outcome) color.Attribute {
	switch outcome {
	case model.OutcomeSucceeded:
		return color.FgGreen
	case model.OutcomeFailed:
		return color.FgRed
	default:
		return color.FgYellow
	}
}

func (c *Console) paint(attr color.Attribute, text string) string {
	if !c.color {
		return text
	}
	painter := color.New(attr)
	painter.EnableColor()
	return painter.Sprint(text)
}

func (c *Console) style(s lipgloss.Style, text string) string {
	if !c.color {
		return text
	}
	return s.Render(text)
}
