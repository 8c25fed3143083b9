package commands

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ytget/yt-queue/internal/logging"
	"github.com/ytget/yt-queue/internal/model"
	"github.com/ytget/yt-queue/internal/platform"
)

// PlaylistLister resolves a playlist URL into its videos
type PlaylistLister interface {
	List(ctx context.Context, url string) (*model.Playlist, error)
}

// NewPlaylistCommand lists the videos of a playlist
func NewPlaylistCommand() *cobra.Command {
	return newPlaylistCommand(nil)
}

func newPlaylistCommand(lister PlaylistLister) *cobra.Command {
	var urlsOnly bool

	cmd := &cobra.Command{
		Use:   "playlist URL",
		Short: "List the videos of a playlist",
		Long: `List the videos of a playlist. With --urls only the video URLs are printed,
one per line, ready to be appended to an inbox file or piped into "ytqueue run".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !platform.IsPlaylistURL(args[0]) {
				return fmt.Errorf("%w: %s", platform.ErrNotPlaylist, args[0])
			}
			if lister == nil {
				lister = platform.NewPlaylistLister(logging.Component("playlist"))
			}

			playlist, err := lister.List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if urlsOnly {
				for _, u := range playlist.URLs() {
					fmt.Fprintln(cmd.OutOrStdout(), u)
				}
				return nil
			}
			return printPlaylist(cmd, playlist)
		},
	}

	cmd.Flags().BoolVar(&urlsOnly, "urls", false, "Print only video URLs")

	return cmd
}

func printPlaylist(cmd *cobra.Command, playlist *model.Playlist) error {
	noColor, _ := cmd.Flags().GetBool("no-color")
	out := cmd.OutOrStdout()

	title := fmt.Sprintf("%s (%d videos)", playlist.Title, playlist.Len())
	if noColor {
		fmt.Fprintln(out, title)
	} else {
		painter := color.New(color.Bold)
		painter.EnableColor()
		fmt.Fprintln(out, painter.Sprint(title))
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join([]string{"#", "ID", "TITLE"}, "\t"))
	for i, video := range playlist.Videos {
		fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, video.ID, video.Title)
	}
	return w.Flush()
}
