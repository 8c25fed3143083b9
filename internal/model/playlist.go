package model

import (
	"time"
)

// PlaylistVideo represents a single entry of a playlist offered for import
type PlaylistVideo struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Selected bool   `json:"selected"`
}

// Playlist represents a playlist listing whose entries can be enqueued
type Playlist struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	URL       string           `json:"url"`
	Videos    []*PlaylistVideo `json:"videos"`
	CreatedAt time.Time        `json:"created_at"`
}

// NewPlaylist creates a new playlist instance
func NewPlaylist(url string) *Playlist {
	return &Playlist{
		URL:       url,
		Videos:    make([]*PlaylistVideo, 0),
		CreatedAt: time.Now(),
	}
}

// AddVideo adds a video to the playlist, selected by default
func (p *Playlist) AddVideo(video *PlaylistVideo) {
	video.Selected = true
	p.Videos = append(p.Videos, video)
}

// SetSelected marks a video by ID as selected or not
func (p *Playlist) SetSelected(videoID string, selected bool) {
	for _, video := range p.Videos {
		if video.ID == videoID {
			video.Selected = selected
			break
		}
	}
}

// SelectOnly keeps selection only for the given zero-based positions
func (p *Playlist) SelectOnly(positions []int) {
	keep := make(map[int]bool, len(positions))
	for _, i := range positions {
		keep[i] = true
	}
	for i, video := range p.Videos {
		video.Selected = keep[i]
	}
}

// URLs returns the URL of every video in playlist order
func (p *Playlist) URLs() []string {
	urls := make([]string, 0, len(p.Videos))
	for _, video := range p.Videos {
		if video.URL != "" {
			urls = append(urls, video.URL)
		}
	}
	return urls
}

// SelectedURLs returns the URLs of selected videos in playlist order
func (p *Playlist) SelectedURLs() []string {
	var urls []string
	for _, video := range p.Videos {
		if video.Selected && video.URL != "" {
			urls = append(urls, video.URL)
		}
	}
	return urls
}

// Len returns the number of videos
func (p *Playlist) Len() int {
	return len(p.Videos)
}
