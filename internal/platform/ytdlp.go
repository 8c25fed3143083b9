package platform

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/lrstanley/go-ytdlp"
	"github.com/rs/zerolog"
	"github.com/spf13/cast"

	"github.com/ytget/yt-queue/internal/model"
)

// Downloader defaults
const (
	DefaultProgressInterval = 500 * time.Millisecond
	OutputTemplate          = "%(title)s.%(ext)s"
	statusFinished          = "finished"
)

// YTDLPDownloader runs jobs through the yt-dlp binary
type YTDLPDownloader struct {
	dir         func() string
	interval    time.Duration
	autoInstall bool
	logger      zerolog.Logger

	installOnce sync.Once
	installErr  error
}

// YTDLPOption configures a YTDLPDownloader
type YTDLPOption func(*YTDLPDownloader)

// WithProgressInterval sets how often yt-dlp progress is sampled
func WithProgressInterval(d time.Duration) YTDLPOption {
	return func(y *YTDLPDownloader) {
		if d > 0 && d <= time.Second {
			y.interval = d
		}
	}
}

// WithAutoInstall downloads a yt-dlp binary on first use when none is found
func WithAutoInstall(enabled bool) YTDLPOption {
	return func(y *YTDLPDownloader) {
		y.autoInstall = enabled
	}
}

// WithDownloaderLogger sets the adapter logger
func WithDownloaderLogger(logger zerolog.Logger) YTDLPOption {
	return func(y *YTDLPDownloader) {
		y.logger = logger
	}
}

// NewYTDLPDownloader creates an adapter that saves into the directory returned
// by dir at the start of each job
func NewYTDLPDownloader(dir func() string, opts ...YTDLPOption) *YTDLPDownloader {
	y := &YTDLPDownloader{
		dir:      dir,
		interval: DefaultProgressInterval,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(y)
	}
	return y
}

// Download implements the worker's downloader contract. A progress callback
// error aborts the yt-dlp process and is returned unchanged.
func (y *YTDLPDownloader) Download(ctx context.Context, job model.Job, progress model.ProgressFunc) error {
	if err := y.ensureInstalled(ctx); err != nil {
		return err
	}

	dir := y.dir()
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu       sync.Mutex
		abortErr error
		title    string
	)

	dl := ytdlp.New().
		RestrictFilenames().
		NoPlaylist().
		Output(filepath.Join(dir, OutputTemplate))
	applySelection(dl, job.Quality, job.Format)

	dl.ProgressFunc(y.interval, func(update ytdlp.ProgressUpdate) {
		mu.Lock()
		defer mu.Unlock()
		if abortErr != nil {
			return
		}

		sample := progressSample{
			status:     string(update.Status),
			downloaded: int64(update.DownloadedBytes),
			total:      int64(update.TotalBytes),
			started:    update.Started,
		}
		if update.Info != nil && update.Info.Title != nil {
			sample.title = *update.Info.Title
			title = sample.title
		}

		if err := progress(sample.event(time.Now())); err != nil {
			abortErr = err
			cancel()
		}
	})

	y.logger.Debug().Str("job", job.ID).Str("dir", dir).Msg("Starting yt-dlp")
	result, err := dl.Run(runCtx, job.URL)

	mu.Lock()
	aborted := abortErr
	if title == "" {
		title = extractedTitle(result)
	}
	mu.Unlock()

	if aborted != nil {
		return aborted
	}
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("yt-dlp: %w", err)
	}

	return progress(model.ProgressEvent{Kind: model.EventFinished, Title: title, PercentLabel: "100%"})
}

func (y *YTDLPDownloader) ensureInstalled(ctx context.Context) error {
	if !y.autoInstall {
		return nil
	}
	y.installOnce.Do(func() {
		y.logger.Info().Msg("Ensuring yt-dlp is installed")
		if _, err := ytdlp.Install(ctx, nil); err != nil {
			y.installErr = fmt.Errorf("install yt-dlp: %w", err)
		}
	})
	return y.installErr
}

// applySelection maps the UI quality and format labels onto yt-dlp options
func applySelection(dl *ytdlp.Command, quality, format string) {
	selector, audioCodec, container := formatSelection(quality, format)
	dl.Format(selector)
	if audioCodec != "" {
		dl.ExtractAudio().AudioFormat(audioCodec)
		return
	}
	if container != "" {
		dl.MergeOutputFormat(container)
	}
}

// formatSelection returns the yt-dlp format selector plus either the audio
// codec to extract or the video container to merge into
func formatSelection(quality, format string) (selector, audioCodec, container string) {
	ext, audio, ok := model.LookupFormat(format)
	if ok && audio {
		return "bestaudio/best", ext, ""
	}
	if !ok {
		ext, _, _ = model.LookupFormat(model.DefaultFormat)
	}

	height := qualityHeight(quality)
	if height <= 0 {
		return "bestvideo+bestaudio/best", "", ext
	}
	return fmt.Sprintf("bestvideo[height<=%d]+bestaudio/best[height<=%d]", height, height), "", ext
}

// qualityHeight converts labels such as "720p" to a pixel height; 0 means best
func qualityHeight(quality string) int {
	q := strings.TrimSpace(strings.ToLower(quality))
	if q == "" || strings.EqualFold(q, model.BestQuality) {
		return 0
	}
	return cast.ToInt(strings.TrimSuffix(q, "p"))
}

func extractedTitle(result *ytdlp.Result) string {
	if result == nil {
		return ""
	}
	info, err := result.GetExtractedInfo()
	if err != nil || len(info) == 0 || info[0].Title == nil {
		return ""
	}
	return *info[0].Title
}

// progressSample is the subset of a yt-dlp progress update the queue needs
type progressSample struct {
	status     string
	downloaded int64
	total      int64
	started    time.Time
	title      string
}

// event converts the sample to a downloading event. A per-stream "finished"
// status is reported as 100% because merged downloads finish several streams.
func (p progressSample) event(now time.Time) model.ProgressEvent {
	ev := model.ProgressEvent{
		Kind:            model.EventDownloading,
		Title:           p.title,
		DownloadedBytes: p.downloaded,
		TotalBytes:      p.total,
		PercentLabel:    percentLabel(p.downloaded, p.total),
		SpeedLabel:      speedLabel(p.downloaded, now.Sub(p.started), !p.started.IsZero()),
	}
	if p.status == statusFinished {
		ev.PercentLabel = "100%"
	}
	return ev
}

func percentLabel(downloaded, total int64) string {
	if total <= 0 {
		return model.InitialPercentLabel
	}
	pct := float64(downloaded) / float64(total) * 100
	if pct > 100 {
		pct = 100
	}
	return fmt.Sprintf("%.1f%%", pct)
}

func speedLabel(downloaded int64, elapsed time.Duration, known bool) string {
	if !known || elapsed <= 0 || downloaded <= 0 {
		return ""
	}
	bps := float64(downloaded) / elapsed.Seconds()
	return humanize.Bytes(uint64(bps)) + "/s"
}
