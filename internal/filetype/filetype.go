// Package filetype classifies filenames into coarse storage categories.
package filetype

import (
	"strings"

	"storeapi/internal/model"
)

// categories maps a lowercase extension to its file category. Anything
// absent from the table classifies as other.
var categories = map[string]model.FileType{
	// images
	"jpg": model.FileTypeImage, "jpeg": model.FileTypeImage, "png": model.FileTypeImage,
	"gif": model.FileTypeImage, "bmp": model.FileTypeImage, "svg": model.FileTypeImage,
	"webp": model.FileTypeImage, "heic": model.FileTypeImage, "ico": model.FileTypeImage,
	"tiff": model.FileTypeImage,

	// documents
	"pdf": model.FileTypeDocument, "doc": model.FileTypeDocument, "docx": model.FileTypeDocument,
	"txt": model.FileTypeDocument, "xls": model.FileTypeDocument, "xlsx": model.FileTypeDocument,
	"csv": model.FileTypeDocument, "rtf": model.FileTypeDocument, "ods": model.FileTypeDocument,
	"ppt": model.FileTypeDocument, "pptx": model.FileTypeDocument, "odp": model.FileTypeDocument,
	"md": model.FileTypeDocument, "html": model.FileTypeDocument, "htm": model.FileTypeDocument,
	"epub": model.FileTypeDocument, "pages": model.FileTypeDocument, "odt": model.FileTypeDocument,
	"fig": model.FileTypeDocument, "psd": model.FileTypeDocument, "ai": model.FileTypeDocument,
	"indd": model.FileTypeDocument, "xd": model.FileTypeDocument, "sketch": model.FileTypeDocument,
	"afdesign": model.FileTypeDocument, "afphoto": model.FileTypeDocument,

	// video
	"mp4": model.FileTypeVideo, "avi": model.FileTypeVideo, "mov": model.FileTypeVideo,
	"mkv": model.FileTypeVideo, "webm": model.FileTypeVideo, "wmv": model.FileTypeVideo,
	"flv": model.FileTypeVideo, "m4v": model.FileTypeVideo, "3gp": model.FileTypeVideo,

	// audio
	"mp3": model.FileTypeAudio, "mpeg": model.FileTypeAudio, "wav": model.FileTypeAudio,
	"aac": model.FileTypeAudio, "flac": model.FileTypeAudio, "ogg": model.FileTypeAudio,
	"wma": model.FileTypeAudio, "m4a": model.FileTypeAudio, "aiff": model.FileTypeAudio,
	"alac": model.FileTypeAudio,
}

// Info is the classification result for one filename.
type Info struct {
	Type      model.FileType
	Extension string
}

// Detect returns the category and lowercase extension for a filename.
// The extension is the substring after the final dot, lowercased; a name
// without a dot has an empty extension. Detect never fails.
func Detect(filename string) Info {
	ext := ""
	if i := strings.LastIndex(filename, "."); i >= 0 {
		ext = strings.ToLower(filename[i+1:])
	}

	t, ok := categories[ext]
	if !ok {
		t = model.FileTypeOther
	}
	return Info{Type: t, Extension: ext}
}
