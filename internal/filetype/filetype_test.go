package filetype

import (
	"testing"

	"storeapi/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantType model.FileType
		wantExt  string
	}{
		{"image uppercase", "holiday.JPG", model.FileTypeImage, "jpg"},
		{"image", "logo.png", model.FileTypeImage, "png"},
		{"document", "report.pdf", model.FileTypeDocument, "pdf"},
		{"spreadsheet", "data.xlsx", model.FileTypeDocument, "xlsx"},
		{"video", "clip.mp4", model.FileTypeVideo, "mp4"},
		{"audio", "song.flac", model.FileTypeAudio, "flac"},
		{"unknown extension", "archive.zip", model.FileTypeOther, "zip"},
		{"no extension", "README", model.FileTypeOther, ""},
		{"trailing dot", "weird.", model.FileTypeOther, ""},
		{"multiple dots", "backup.tar.gz", model.FileTypeOther, "gz"},
		{"dotfile", ".gitignore", model.FileTypeOther, "gitignore"},
		{"empty name", "", model.FileTypeOther, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Detect(tt.filename)
			assert.Equal(t, tt.wantType, info.Type)
			assert.Equal(t, tt.wantExt, info.Extension)
		})
	}
}

func TestDetectIsTotal(t *testing.T) {
	// Classification must never return a category outside the known set.
	for _, name := range []string{"a.b.c.d", "...", "x", "file.∂", "file.PnG"} {
		info := Detect(name)
		assert.True(t, info.Type.Valid(), "filename %q produced invalid type %q", name, info.Type)
	}
}
