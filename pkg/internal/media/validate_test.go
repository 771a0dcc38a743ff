package media_test

import (
	"errors"
	"testing"

	"github.com/yeisme/artvault/pkg/internal/media"
)

func TestValidate(t *testing.T) {
	const mib = 1024 * 1024

	tests := []struct {
		name        string
		contentType string
		size        int64
		present     bool
		wantType    string
		wantErr     error
	}{
		{"missing file", "", 0, false, "", media.ErrMissingFile},
		{"png ok", "image/png", 5 * mib, true, "image", nil},
		{"jpeg at limit", "image/jpeg", 10 * mib, true, "image", nil},
		{"png too large", "image/png", 10*mib + 1, true, "", media.ErrImageTooLarge},
		{"gif too large", "image/gif", 25 * mib, true, "", media.ErrImageTooLarge},
		{"mp4 ok", "video/mp4", 30 * mib, true, "video", nil},
		{"webm at limit", "video/webm", 50 * mib, true, "video", nil},
		{"mp4 too large", "video/mp4", 50*mib + 1, true, "", media.ErrVideoTooLarge},
		{"avi unsupported", "video/avi", 1 * mib, true, "", media.ErrUnsupportedType},
		{"quicktime unsupported", "video/quicktime", 1 * mib, true, "", media.ErrUnsupportedType},
		{"pdf unsupported", "application/pdf", 1 * mib, true, "", media.ErrUnsupportedType},
		{"text unsupported", "text/plain", 10, true, "", media.ErrUnsupportedType},
		{"empty type unsupported", "", 10, true, "", media.ErrUnsupportedType},
		// 超大且类型不允许：类型检查在前
		{"type check wins over size", "application/zip", 100 * mib, true, "", media.ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotType, err := media.Validate(tt.contentType, tt.size, tt.present)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate(%q, %d) err = %v, want %v", tt.contentType, tt.size, err, tt.wantErr)
			}

			if gotType != tt.wantType {
				t.Errorf("Validate(%q, %d) type = %q, want %q", tt.contentType, tt.size, gotType, tt.wantType)
			}
		})
	}
}
