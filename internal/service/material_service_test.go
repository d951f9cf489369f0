package service

import (
	"testing"

	"github.com/dnflvus-wq/engTest-sub000/internal/model"
)

func TestStoredMaterialName(t *testing.T) {
	cases := []struct {
		name     string
		material model.RoundMaterial
		want     string
		ok       bool
	}{
		{
			name:     "uploaded file",
			material: model.RoundMaterial{MaterialType: model.MaterialTypeFile, URL: "/uploads/materials/abc123.pdf"},
			want:     "abc123.pdf",
			ok:       true,
		},
		{
			name:     "youtube link has no file",
			material: model.RoundMaterial{MaterialType: model.MaterialTypeYouTube, URL: "https://youtu.be/xyz"},
		},
		{
			name:     "foreign prefix rejected",
			material: model.RoundMaterial{MaterialType: model.MaterialTypeFile, URL: "/etc/passwd"},
		},
		{
			name:     "path traversal rejected",
			material: model.RoundMaterial{MaterialType: model.MaterialTypeFile, URL: "/uploads/materials/../secrets.pdf"},
		},
		{
			name:     "nested path rejected",
			material: model.RoundMaterial{MaterialType: model.MaterialTypeFile, URL: "/uploads/materials/sub/dir.pdf"},
		},
		{
			name:     "bare prefix rejected",
			material: model.RoundMaterial{MaterialType: model.MaterialTypeFile, URL: "/uploads/materials/"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := storedMaterialName(tc.material)
			if ok != tc.ok || got != tc.want {
				t.Errorf("storedMaterialName(%q) = (%q, %v), want (%q, %v)",
					tc.material.URL, got, ok, tc.want, tc.ok)
			}
		})
	}
}
