package model_test

import (
	"reflect"
	"testing"

	"github.com/yeisme/artvault/pkg/internal/model"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"single", "oil", []string{"oil"}},
		{"multiple", "oil,canvas,2024", []string{"oil", "canvas", "2024"}},
		{"whitespace", " oil , canvas ", []string{"oil", "canvas"}},
		{"duplicates", "oil,oil,canvas", []string{"oil", "canvas"}},
		{"empty segments", "oil,,canvas,", []string{"oil", "canvas"}},
		{"only commas", ",,,", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.ParseTags(tt.raw)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTags(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSubmissionTagsRoundTrip(t *testing.T) {
	var s model.Submission

	s.SetTags([]string{" oil ", "canvas", "oil"})

	if s.TagsJSON != "oil,canvas" {
		t.Errorf("TagsJSON = %q, want %q", s.TagsJSON, "oil,canvas")
	}

	if got := s.Tags(); !reflect.DeepEqual(got, []string{"oil", "canvas"}) {
		t.Errorf("Tags() = %v", got)
	}
}

func TestIsTerminal(t *testing.T) {
	if model.IsTerminal(model.StatusPending) {
		t.Error("pending should not be terminal")
	}

	if !model.IsTerminal(model.StatusApproved) || !model.IsTerminal(model.StatusRejected) {
		t.Error("approved/rejected should be terminal")
	}
}
