package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"storeapi/internal/auth"
	"storeapi/internal/filetype"
	"storeapi/internal/model"
	"storeapi/internal/query"
	"storeapi/internal/repository"
	"storeapi/internal/storage"
)

var (
	ErrUnauthenticated = errors.New("no authenticated account")
	ErrNotFound        = errors.New("file not found")
	ErrForbidden       = errors.New("operation not permitted")
	ErrIDRequired      = errors.New("id is required")
	ErrNameRequired    = errors.New("name is required")
	ErrEmailsRequired  = errors.New("at least one email is required")
	ErrReaderNil       = errors.New("reader is nil")
)

// downloadExpiry bounds how long a presigned download link stays valid.
const downloadExpiry = 15 * time.Minute

// FileListResult is the service-level DTO for a file listing page.
type FileListResult struct {
	Documents []model.File `json:"documents"`
	Total     int          `json:"total"`
}

// FileService defines the use cases for handling files. Every operation
// takes the caller's session; a zero session fails with ErrUnauthenticated.
type FileService interface {
	// Upload stores the content as a blob, saves the metadata record, and
	// rolls the blob back if the record save fails.
	Upload(ctx context.Context, sess auth.Session, r io.Reader, originalFilename string, size int64) (*model.File, error)

	// List returns the files visible to the session (owned or shared),
	// filtered and ordered per opts, plus the total match count.
	List(ctx context.Context, sess auth.Session, opts query.Options) (*FileListResult, error)

	// Get returns a single visible file by ID.
	Get(ctx context.Context, sess auth.Session, id string) (*model.File, error)

	// Rename updates only the file's display name. Owner only.
	Rename(ctx context.Context, sess auth.Session, id, newName string) (*model.File, error)

	// Share grants read access to the given emails. Additive: it never
	// removes existing grants, and the resulting set holds no duplicates.
	Share(ctx context.Context, sess auth.Session, id string, emails []string) (*model.File, error)

	// Unshare revokes one email's access. Allowed for the owner, or for a
	// shared user removing themselves.
	Unshare(ctx context.Context, sess auth.Session, id, email string) (*model.File, error)

	// Delete removes the record first and, only on success, the blob.
	Delete(ctx context.Context, sess auth.Session, id string) error

	// Download returns a short-lived presigned URL for the file's blob.
	Download(ctx context.Context, sess auth.Session, id string) (string, error)

	// TotalSpaceUsed aggregates the session's owned files per category
	// against the configured quota. Shared files are not counted.
	TotalSpaceUsed(ctx context.Context, sess auth.Session) (*model.SpaceUsage, error)
}

// fileService is a concrete implementation of FileService.
type fileService struct {
	store storage.Storage
	repo  repository.FileRepository
	quota int64
}

// NewFileService constructs a new FileService with the given storage
// quota in bytes.
func NewFileService(store storage.Storage, repo repository.FileRepository, quota int64) FileService {
	return &fileService{store: store, repo: repo, quota: quota}
}

func (s *fileService) Upload(ctx context.Context, sess auth.Session, r io.Reader, originalFilename string, size int64) (*model.File, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrReaderNil
	}

	info := filetype.Detect(originalFilename)
	key := "files/" + uuid.New().String()

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: "application/octet-stream",
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	f := &model.File{
		ID:           uuid.New().String(),
		Name:         originalFilename,
		Type:         info.Type,
		Extension:    info.Extension,
		URL:          s.store.ObjectURL(key),
		Size:         objInfo.Size,
		Owner:        sess.AccountID,
		AccountID:    sess.AccountID,
		Users:        []string{},
		BucketFileID: key,
	}
	stored, err := s.repo.Create(ctx, f)
	if err != nil {
		// Compensate: delete the blob so no orphan is left behind. A
		// failed cleanup is surfaced too, it means the orphan is real.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("create file record failed: %v; cleanup delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("create file record failed: %w", err)
	}
	return stored, nil
}

func (s *fileService) List(ctx context.Context, sess auth.Session, opts query.Options) (*FileListResult, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}

	preds := query.Build(sess.AccountID, sess.Email, opts)
	res, err := s.repo.List(ctx, preds)
	if err != nil {
		return nil, err
	}
	return &FileListResult{Documents: res.Documents, Total: res.Total}, nil
}

func (s *fileService) Get(ctx context.Context, sess auth.Session, id string) (*model.File, error) {
	return s.visibleFile(ctx, sess, id)
}

func (s *fileService) Rename(ctx context.Context, sess auth.Session, id, newName string) (*model.File, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, ErrIDRequired
	}
	if newName == "" {
		return nil, ErrNameRequired
	}

	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateNoRows(err)
	}
	if f.Owner != sess.AccountID {
		return nil, ErrForbidden
	}

	updated, err := s.repo.UpdateName(ctx, id, newName)
	if err != nil {
		return nil, translateNoRows(err)
	}
	return updated, nil
}

func (s *fileService) Share(ctx context.Context, sess auth.Session, id string, emails []string) (*model.File, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, ErrIDRequired
	}
	if len(emails) == 0 {
		return nil, ErrEmailsRequired
	}

	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateNoRows(err)
	}
	if f.Owner != sess.AccountID {
		return nil, ErrForbidden
	}

	merged := mergeUsers(f.Users, emails)
	updated, err := s.repo.UpdateUsers(ctx, id, merged)
	if err != nil {
		return nil, translateNoRows(err)
	}
	return updated, nil
}

func (s *fileService) Unshare(ctx context.Context, sess auth.Session, id, email string) (*model.File, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, ErrIDRequired
	}
	if email == "" {
		return nil, ErrEmailsRequired
	}

	// Re-read the authoritative set instead of trusting a caller-supplied
	// one: a stale client set could resurrect removed grants.
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateNoRows(err)
	}
	if f.Owner != sess.AccountID && email != sess.Email {
		return nil, ErrForbidden
	}

	reduced := make([]string, 0, len(f.Users))
	for _, u := range f.Users {
		if u != email {
			reduced = append(reduced, u)
		}
	}

	updated, err := s.repo.UpdateUsers(ctx, id, reduced)
	if err != nil {
		return nil, translateNoRows(err)
	}
	return updated, nil
}

// Delete removes the record and then the blob, in that order. The blob is
// only released once the record is gone; if the blob delete then fails,
// the error names the orphaned object instead of being swallowed.
func (s *fileService) Delete(ctx context.Context, sess auth.Session, id string) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	if id == "" {
		return ErrIDRequired
	}

	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return translateNoRows(err)
	}
	if f.Owner != sess.AccountID {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return translateNoRows(err)
	}
	if err := s.store.Delete(ctx, f.BucketFileID); err != nil {
		return fmt.Errorf("record deleted but blob %s not released: %w", f.BucketFileID, err)
	}
	return nil
}

func (s *fileService) Download(ctx context.Context, sess auth.Session, id string) (string, error) {
	f, err := s.visibleFile(ctx, sess, id)
	if err != nil {
		return "", err
	}
	u, err := s.store.PresignGet(ctx, f.BucketFileID, downloadExpiry)
	if err != nil {
		return "", fmt.Errorf("presign download: %w", err)
	}
	return u, nil
}

func (s *fileService) TotalSpaceUsed(ctx context.Context, sess auth.Session) (*model.SpaceUsage, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}

	files, err := s.repo.ListByOwner(ctx, sess.AccountID)
	if err != nil {
		return nil, err
	}

	usage := &model.SpaceUsage{All: s.quota}
	for i := range files {
		usage.Add(&files[i])
	}
	return usage, nil
}

// visibleFile fetches a record and enforces the owner-or-shared boundary.
// A record the session cannot see reads as not found.
func (s *fileService) visibleFile(ctx context.Context, sess auth.Session, id string) (*model.File, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, ErrIDRequired
	}

	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateNoRows(err)
	}
	if !f.VisibleTo(sess.AccountID, sess.Email) {
		return nil, ErrNotFound
	}
	return f, nil
}

func requireSession(sess auth.Session) error {
	if sess.AccountID == "" || sess.Email == "" {
		return ErrUnauthenticated
	}
	return nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func translateNoRows(err error) error {
	if isNoRows(err) {
		return ErrNotFound
	}
	return err
}

// mergeUsers unions the existing grant set with the new emails, keeping
// first-seen order and dropping duplicates.
func mergeUsers(existing, emails []string) []string {
	seen := make(map[string]bool, len(existing)+len(emails))
	out := make([]string, 0, len(existing)+len(emails))
	for _, lst := range [][]string{existing, emails} {
		for _, e := range lst {
			if e == "" || seen[e] {
				continue
			}
			seen[e] = true
			out = append(out, e)
		}
	}
	return out
}
