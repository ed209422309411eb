package model

import "time"

// FileType is the coarse category a file belongs to, derived from its
// extension at upload time.
type FileType string

const (
	FileTypeImage    FileType = "image"
	FileTypeDocument FileType = "document"
	FileTypeVideo    FileType = "video"
	FileTypeAudio    FileType = "audio"
	FileTypeOther    FileType = "other"
)

// FileTypes lists every valid category in a stable order.
var FileTypes = []FileType{
	FileTypeImage,
	FileTypeDocument,
	FileTypeVideo,
	FileTypeAudio,
	FileTypeOther,
}

// Valid reports whether t is one of the known categories.
func (t FileType) Valid() bool {
	switch t {
	case FileTypeImage, FileTypeDocument, FileTypeVideo, FileTypeAudio, FileTypeOther:
		return true
	}
	return false
}

// File represents one uploaded file's metadata record.
// This is a pure domain model with no database-specific dependencies or tags.
// Type, Extension, Size, Owner and BucketFileID are write-once: only Name
// (rename) and Users (share/unshare) have update paths.
type File struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Type         FileType  `json:"type"`
	Extension    string    `json:"extension"`
	URL          string    `json:"url"`
	Size         int64     `json:"size"`
	Owner        string    `json:"owner"`
	AccountID    string    `json:"account_id"`
	Users        []string  `json:"users"`
	BucketFileID string    `json:"bucket_file_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SharedWith reports whether the file has been shared with the given email.
func (f *File) SharedWith(email string) bool {
	for _, u := range f.Users {
		if u == email {
			return true
		}
	}
	return false
}

// VisibleTo reports whether the account may see this file: it either owns
// the file or the file was shared with its email.
func (f *File) VisibleTo(accountID, email string) bool {
	return f.Owner == accountID || f.SharedWith(email)
}
