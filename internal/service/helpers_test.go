package service

import (
	"testing"

	"github.com/khizana-app/khizana/internal/model"
)

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		name      string
		requested string
		fallback  string
		want      string
	}{
		{name: "request wins", requested: "fr", fallback: "ar", want: "fr"},
		{name: "fallback when empty", requested: "", fallback: "ar", want: "ar"},
		{name: "lowercased", requested: "AMZ", fallback: "", want: "amz"},
		{name: "whitespace trimmed", requested: "  en ", fallback: "ar", want: "en"},
		{name: "both empty", requested: "", fallback: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeLanguage(tt.requested, tt.fallback); got != tt.want {
				t.Errorf("normalizeLanguage(%q, %q) = %q, want %q", tt.requested, tt.fallback, got, tt.want)
			}
		})
	}
}

func TestMimeTypeFor(t *testing.T) {
	tests := []struct {
		name string
		doc  *model.Document
		want string
	}{
		{name: "mp3", doc: &model.Document{Kind: model.DocumentKindAudio, SourceKey: "lecture.mp3"}, want: "audio/mpeg"},
		{name: "wav", doc: &model.Document{Kind: model.DocumentKindAudio, SourceKey: "voice.WAV"}, want: "audio/wav"},
		{name: "mp4 video", doc: &model.Document{Kind: model.DocumentKindVideo, SourceKey: "talk.mp4"}, want: "video/mp4"},
		{name: "webm", doc: &model.Document{Kind: model.DocumentKindVideo, SourceKey: "talk.webm"}, want: "video/webm"},
		{name: "unknown video falls back", doc: &model.Document{Kind: model.DocumentKindVideo, SourceKey: "talk.bin"}, want: "video/mp4"},
		{name: "unknown audio falls back", doc: &model.Document{Kind: model.DocumentKindAudio, SourceKey: "voice"}, want: "audio/mpeg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mimeTypeFor(tt.doc); got != tt.want {
				t.Errorf("mimeTypeFor(%s) = %q, want %q", tt.doc.SourceKey, got, tt.want)
			}
		})
	}
}
