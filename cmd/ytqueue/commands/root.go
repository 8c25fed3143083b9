package commands

import (
	"github.com/spf13/cobra"

	"github.com/ytget/yt-queue/cmd/ytqueue/internal/bind"
	"github.com/ytget/yt-queue/internal/download"
)

const cliExecutable = "ytqueue"

// dependencies replaces the real downloader and playlist lister in tests
type dependencies struct {
	downloader download.Downloader
	lister     PlaylistLister
}

// NewCommand constructs the top-level ytqueue command. Configuration is
// loaded once per invocation, before the selected subcommand runs.
func NewCommand() *cobra.Command {
	return newRootCommand(dependencies{})
}

func newRootCommand(deps dependencies) *cobra.Command {
	var (
		configFile string
		logLevel   string
		debug      bool
	)

	cmd := &cobra.Command{
		Use:   cliExecutable,
		Short: "Sequential video download queue",
		Long: `ytqueue downloads video URLs one at a time, in the order they were added.
Jobs can be paused, resumed and cancelled while the queue keeps running.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bind.LoadConfig(cmd)
			if err != nil {
				return err
			}
			cmd.SetContext(bind.WithConfig(cmd.Context(), cfg))
			return nil
		},
	}

	cmd.SilenceUsage = true

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file path")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	cmd.AddCommand(newRunCommand(deps.downloader, deps.lister))
	cmd.AddCommand(NewGUICommand())
	cmd.AddCommand(newPlaylistCommand(deps.lister))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// addJobFlags registers the flags shared by every command that downloads
func addJobFlags(cmd *cobra.Command) {
	cmd.Flags().String("dir", "", "Download directory")
	cmd.Flags().StringP("quality", "q", "", "Quality label (Best, 1080p, 720p, ...)")
	cmd.Flags().StringP("format", "f", "", "Container or audio format (MP4, MKV, MP3, ...)")
	cmd.Flags().Bool("auto-install", false, "Install yt-dlp if it is missing")
	cmd.Flags().Bool("show-speed", true, "Show transfer speed")
	cmd.Flags().String("inbox", "", "Text file whose appended lines are enqueued")
}
