package model

import "testing"

func TestFormats(t *testing.T) {
	formats := Formats()
	if len(formats) != len(VideoFormats)+len(AudioFormats) {
		t.Fatalf("expected %d formats, got %d", len(VideoFormats)+len(AudioFormats), len(formats))
	}
	if formats[0] != DefaultFormat {
		t.Errorf("expected %s first, got %s", DefaultFormat, formats[0])
	}

	formats[0] = "mutated"
	if Formats()[0] != DefaultFormat {
		t.Error("Formats must return a copy")
	}

	for _, f := range formats[1:] {
		if !IsKnownFormat(f) {
			t.Errorf("format %s is listed but not known", f)
		}
	}
}

func TestIsAudioFormat(t *testing.T) {
	tests := []struct {
		format   string
		expected bool
	}{
		{"MP3", true},
		{"FLAC", true},
		{"MP4", false},
		{"WebM", false},
		{"", false},
	}

	for _, test := range tests {
		if got := IsAudioFormat(test.format); got != test.expected {
			t.Errorf("IsAudioFormat(%q) = %v, expected %v", test.format, got, test.expected)
		}
	}
}

func TestIsKnownQuality(t *testing.T) {
	for _, q := range Qualities {
		if !IsKnownQuality(q) {
			t.Errorf("quality %s should be known", q)
		}
	}
	if !IsKnownQuality("best") {
		t.Error("quality match should be case-insensitive")
	}
	if IsKnownQuality("8k") {
		t.Error("8k should not be known")
	}
}

func TestLookupFormat(t *testing.T) {
	tests := []struct {
		format string
		ext    string
		audio  bool
		ok     bool
	}{
		{"MP4", "mp4", false, true},
		{"webm", "webm", false, true},
		{" ogg ", "vorbis", true, true},
		{"mp3", "mp3", true, true},
		{"DIVX", "", false, false},
	}

	for _, test := range tests {
		ext, audio, ok := LookupFormat(test.format)
		if ext != test.ext || audio != test.audio || ok != test.ok {
			t.Errorf("LookupFormat(%q) = (%q, %v, %v), expected (%q, %v, %v)",
				test.format, ext, audio, ok, test.ext, test.audio, test.ok)
		}
	}
}
