package platform

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/ytget/ytdlp/v2"

	"github.com/ytget/yt-queue/internal/model"
)

// Timeout constants
const (
	DefaultListTimeout = 60 * time.Second
)

// URL parameters and templates
const (
	PlaylistParam           = "list="
	ParamSeparator          = "&"
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// Playlist title constants
const (
	DefaultPlaylistName = "Unknown Playlist"
	PlaylistSuffix      = " Playlist"
	MinPrefixLength     = 10
)

// ErrNotPlaylist is returned for URLs without a playlist parameter
var ErrNotPlaylist = errors.New("not a playlist URL")

// PlaylistEntry is one raw item returned by an ItemsFunc
type PlaylistEntry struct {
	VideoID string
	Title   string
}

// ItemsFunc fetches every entry of a playlist by ID
type ItemsFunc func(ctx context.Context, playlistID string) ([]PlaylistEntry, error)

// PlaylistLister resolves playlist URLs into their video entries
type PlaylistLister struct {
	timeout time.Duration
	items   ItemsFunc
	logger  zerolog.Logger
}

// NewPlaylistLister creates a lister backed by the ytdlp library
func NewPlaylistLister(logger zerolog.Logger) *PlaylistLister {
	return NewPlaylistListerWithItems(ytdlpItems, logger)
}

// NewPlaylistListerWithItems creates a lister using a custom item source
func NewPlaylistListerWithItems(items ItemsFunc, logger zerolog.Logger) *PlaylistLister {
	return &PlaylistLister{
		timeout: DefaultListTimeout,
		items:   items,
		logger:  logger,
	}
}

// SetTimeout sets the timeout for listing operations
func (p *PlaylistLister) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// IsPlaylistURL reports whether url carries a playlist parameter
func IsPlaylistURL(url string) bool {
	return ExtractPlaylistID(url) != ""
}

// ExtractPlaylistID returns the list= parameter of url, or "" when absent.
// Supported forms include watch?v=ID&list=PL and playlist?list=PL.
func ExtractPlaylistID(url string) string {
	_, rest, ok := strings.Cut(url, PlaylistParam)
	if !ok {
		return ""
	}
	id, _, _ := strings.Cut(rest, ParamSeparator)
	return id
}

// List fetches the playlist at url. Every video starts selected.
func (p *PlaylistLister) List(ctx context.Context, url string) (*model.Playlist, error) {
	playlistID := ExtractPlaylistID(url)
	if playlistID == "" {
		return nil, fmt.Errorf("%w: %s", ErrNotPlaylist, url)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	started := time.Now()
	entries, err := p.items(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	playlist := model.NewPlaylist(url)
	playlist.ID = playlistID
	for _, entry := range entries {
		if entry.VideoID == "" {
			continue
		}
		playlist.AddVideo(&model.PlaylistVideo{
			ID:    entry.VideoID,
			Title: entry.Title,
			URL:   fmt.Sprintf(YouTubeVideoURLTemplate, entry.VideoID),
		})
	}
	playlist.Title = playlistTitle(playlist.Videos)

	p.logger.Info().
		Str("playlist", playlistID).
		Int("videos", playlist.Len()).
		Dur("took", time.Since(started)).
		Msg("Playlist listed")

	return playlist, nil
}

func ytdlpItems(ctx context.Context, playlistID string) ([]PlaylistEntry, error) {
	items, err := ytdlp.New().GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, err
	}
	entries := make([]PlaylistEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, PlaylistEntry{VideoID: it.VideoID, Title: it.Title})
	}
	return entries, nil
}

// playlistTitle derives a title from the common prefix of the first two
// video titles, falling back to the first title
func playlistTitle(videos []*model.PlaylistVideo) string {
	if len(videos) == 0 {
		return DefaultPlaylistName
	}
	if len(videos) > 1 {
		prefix := commonPrefix(videos[0].Title, videos[1].Title)
		if len(prefix) > MinPrefixLength {
			return strings.TrimSpace(prefix) + PlaylistSuffix
		}
	}
	return videos[0].Title + PlaylistSuffix
}

func commonPrefix(s1, s2 string) string {
	r1, r2 := []rune(s1), []rune(s2)
	n := min(len(r1), len(r2))
	for i := 0; i < n; i++ {
		if r1[i] != r2[i] {
			return string(r1[:i])
		}
	}
	return string(r1[:n])
}
