package media_test

import (
	"testing"

	"github.com/yeisme/artvault/pkg/internal/media"
)

func TestResolveURL(t *testing.T) {
	const base = "https://cdn.x"

	tests := []struct {
		name string
		path string
		want string
	}{
		{"media marker", "/var/data/media/2024/01/x.png", "https://cdn.x/media/2024/01/x.png"},
		{"uploads marker", "/srv/uploads/abc/y.mp4", "https://cdn.x/uploads/abc/y.mp4"},
		{"no marker fallback", "weird/path/z.png", "https://cdn.x/media/path/z.png"},
		{"empty path", "", ""},
		{"media marker at start", "/media/a/b.png", "https://cdn.x/media/a/b.png"},
		{"media wins over uploads", "/srv/uploads/x/media/y/z.png", "https://cdn.x/media/y/z.png"},
		{"relative uploads", "data/uploads/2024/f.webm", "https://cdn.x/uploads/2024/f.webm"},
		{"object key uploads prefix", "uploads/2025/01/x.png", "https://cdn.x/uploads/2025/01/x.png"},
		{"object key media prefix", "media/2025/01/x.png", "https://cdn.x/media/2025/01/x.png"},
		{"single segment fallback", "lone.png", "https://cdn.x/media/lone.png"},
		{"deep fallback keeps last two", "a/b/c/d/e.jpg", "https://cdn.x/media/d/e.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := media.ResolveURL(tt.path, base); got != tt.want {
				t.Errorf("ResolveURL(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestResolveURLTrailingSlashBase(t *testing.T) {
	got := media.ResolveURL("/var/data/media/x.png", "https://cdn.x/")
	if got != "https://cdn.x/media/x.png" {
		t.Errorf("got %q", got)
	}
}
