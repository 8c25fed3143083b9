package model

import "strings"

// Defaults used when the producer does not choose
const (
	DefaultQuality = "Best"
	DefaultFormat  = "MP4"
	BestQuality    = "Best"
)

// Qualities lists the selectable quality labels, best first
var Qualities = []string{"Best", "1440p", "1080p", "720p", "480p", "360p", "240p"}

// VideoFormats maps selectable video containers to the merge extension
var VideoFormats = map[string]string{
	"MP4":  "mp4",
	"WebM": "webm",
	"MKV":  "mkv",
	"MOV":  "mov",
	"AVI":  "avi",
	"FLV":  "flv",
}

// AudioFormats maps selectable audio formats to the extraction codec
var AudioFormats = map[string]string{
	"MP3":  "mp3",
	"M4A":  "m4a",
	"AAC":  "aac",
	"OPUS": "opus",
	"OGG":  "vorbis",
	"FLAC": "flac",
	"WAV":  "wav",
	"ALAC": "alac",
}

// formatOrder keeps a stable presentation order for selectors
var formatOrder = []string{
	"MP4", "WebM", "MKV", "MOV", "AVI", "FLV",
	"MP3", "M4A", "AAC", "OPUS", "OGG", "FLAC", "WAV", "ALAC",
}

// Formats returns all selectable formats, video containers first
func Formats() []string {
	out := make([]string, len(formatOrder))
	copy(out, formatOrder)
	return out
}

// IsAudioFormat reports whether format selects audio-only extraction
func IsAudioFormat(format string) bool {
	_, ok := AudioFormats[format]
	return ok
}

// IsKnownFormat reports whether format is one of the selectable formats
func IsKnownFormat(format string) bool {
	_, _, ok := LookupFormat(format)
	return ok
}

// LookupFormat resolves a format label case-insensitively to its yt-dlp
// extension or codec and whether it selects audio extraction
func LookupFormat(format string) (ext string, audio bool, ok bool) {
	format = strings.TrimSpace(format)
	for name, codec := range AudioFormats {
		if strings.EqualFold(name, format) {
			return codec, true, true
		}
	}
	for name, container := range VideoFormats {
		if strings.EqualFold(name, format) {
			return container, false, true
		}
	}
	return "", false, false
}

// IsKnownQuality reports whether quality is one of the selectable labels
func IsKnownQuality(quality string) bool {
	for _, q := range Qualities {
		if strings.EqualFold(q, quality) {
			return true
		}
	}
	return false
}
