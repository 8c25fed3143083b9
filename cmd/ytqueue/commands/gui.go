package commands

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ytget/yt-queue/cmd/ytqueue/internal/bind"
	"github.com/ytget/yt-queue/internal/config"
	"github.com/ytget/yt-queue/internal/download"
	"github.com/ytget/yt-queue/internal/logging"
	"github.com/ytget/yt-queue/internal/platform"
	"github.com/ytget/yt-queue/internal/ui"
)

// AppID identifies the desktop application to fyne (preferences, storage)
const AppID = "com.ytget.yt-queue"

// NewGUICommand opens the desktop window
func NewGUICommand() *cobra.Command {
	var skipExisting bool

	cmd := &cobra.Command{
		Use:   "gui",
		Short: "Open the desktop queue window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd.Context(), bind.ConfigFrom(cmd.Context()), skipExisting)
		},
	}

	addJobFlags(cmd)
	cmd.Flags().BoolVar(&skipExisting, "skip-existing", false, "Ignore lines already in the inbox file")
	cmd.Flags().Duration("refresh-interval", 0, "How often the window is redrawn")

	return cmd
}

func runGUI(ctx context.Context, cfg config.Config, skipExisting bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a := app.NewWithID(AppID)
	a.Settings().SetTheme(ui.NewQueueTheme())
	settings := config.NewSettings(a, cfg)

	// the directory is re-read at every job start so Settings changes apply
	// to the next download
	downloader := bind.NewDownloader(cfg, func() string {
		dir, err := platform.ResolveDownloadDir(settings.DownloadDirectory())
		if err != nil {
			log.Warn().Err(err).Msg("Failed to prepare download directory")
			return settings.DownloadDirectory()
		}
		return dir
	})
	svc := download.NewService(downloader,
		download.WithPollInterval(cfg.Queue.PollInterval),
		download.WithLogger(logging.Component("worker")),
	)

	window := a.NewWindow(fmt.Sprintf("YT Queue %s", Version))
	window.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	root := ui.NewRootUI(window, svc, settings,
		platform.NewPlaylistLister(logging.Component("playlist")),
		logging.Component("ui"))
	root.StartRefresh(ctx, cfg.UI.RefreshInterval)

	watcher, err := bind.BindInbox(cfg, svc, skipExisting)
	if err != nil {
		return err
	}
	if watcher != nil {
		go func() {
			if err := watcher.Start(ctx); err != nil {
				log.Error().Err(err).Msg("Inbox watcher stopped")
			}
		}()
	}

	go func() {
		if err := svc.Run(ctx, nil); err != nil {
			log.Error().Err(err).Msg("Queue worker stopped")
		}
	}()

	window.SetOnClosed(cancel)
	window.ShowAndRun()
	return nil
}
