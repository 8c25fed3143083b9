package model

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Title heuristics
const (
	ShortTitleMaxLength   = 50
	UnknownIDTitleLength  = 40
	TitleTruncateSuffix   = "..."
	YouTubeHost           = "youtube.com"
	YouTubeShortHost      = "youtu.be"
	CompletedTitleLength  = 60
	ErrorMessageMaxLength = 35
)

var (
	youTubeWatchID = regexp.MustCompile(`v=([a-zA-Z0-9_-]+)`)
	youTubeShortID = regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]+)`)
)

// Job is one queued download request. It is never mutated after enqueue.
type Job struct {
	ID         string
	URL        string
	Quality    string
	Format     string
	Title      string // short display title derived from the URL
	EnqueuedAt time.Time
}

// DisplayEntry is the read-only projection of a pending Job used for listings
type DisplayEntry struct {
	JobID      string
	URL        string
	Quality    string
	Format     string
	ShortTitle string
}

// NewJob creates a job for url with a fresh identifier and derived title
func NewJob(url, quality, format string) Job {
	url = strings.TrimSpace(url)
	return Job{
		ID:         newJobID(),
		URL:        url,
		Quality:    quality,
		Format:     format,
		Title:      ShortTitle(url),
		EnqueuedAt: time.Now(),
	}
}

// DisplayEntry returns the listing projection of the job
func (j Job) DisplayEntry() DisplayEntry {
	return DisplayEntry{
		JobID:      j.ID,
		URL:        j.URL,
		Quality:    j.Quality,
		Format:     j.Format,
		ShortTitle: j.Title,
	}
}

// ShortTitle derives a display title from a URL before the downloader reports
// a real one. YouTube links resolve to their video ID; anything else is the
// URL itself, truncated.
func ShortTitle(url string) string {
	if strings.Contains(url, YouTubeHost) || strings.Contains(url, YouTubeShortHost) {
		if m := youTubeWatchID.FindStringSubmatch(url); m != nil {
			return m[1]
		}
		if m := youTubeShortID.FindStringSubmatch(url); m != nil {
			return m[1]
		}
		return Truncate(url, UnknownIDTitleLength, "")
	}
	return Truncate(url, ShortTitleMaxLength, TitleTruncateSuffix)
}

// Truncate shortens s to at most max runes, appending suffix when cut
func Truncate(s string, max int, suffix string) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + suffix
}

func newJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
