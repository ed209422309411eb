package model

import "time"

// CategoryUsage is the per-category slice of a storage usage summary.
// LatestDate is the most recent update timestamp among the category's
// files; zero when the category is empty.
type CategoryUsage struct {
	Size       int64     `json:"size"`
	LatestDate time.Time `json:"latest_date"`
}

// SpaceUsage summarizes an account's storage consumption across all
// categories. Used is the grand total in bytes; All is the quota.
type SpaceUsage struct {
	Image    CategoryUsage `json:"image"`
	Document CategoryUsage `json:"document"`
	Video    CategoryUsage `json:"video"`
	Audio    CategoryUsage `json:"audio"`
	Other    CategoryUsage `json:"other"`
	Used     int64         `json:"used"`
	All      int64         `json:"all"`
}

// Category returns a pointer to the usage bucket for the given type.
// Unknown types map to Other.
func (s *SpaceUsage) Category(t FileType) *CategoryUsage {
	switch t {
	case FileTypeImage:
		return &s.Image
	case FileTypeDocument:
		return &s.Document
	case FileTypeVideo:
		return &s.Video
	case FileTypeAudio:
		return &s.Audio
	default:
		return &s.Other
	}
}

// Add folds one file into the summary, keeping the category's LatestDate
// at the maximum update timestamp seen so far.
func (s *SpaceUsage) Add(f *File) {
	c := s.Category(f.Type)
	c.Size += f.Size
	if f.UpdatedAt.After(c.LatestDate) {
		c.LatestDate = f.UpdatedAt
	}
	s.Used += f.Size
}
