package services

import (
	"context"
	"database/sql"
	"time"

	"snapvault/internal/domain/media"
	"snapvault/internal/repository"
	apperrors "snapvault/pkg/errors"
)

// allowedMimeTypes is the upload allow-list. Anything else is rejected before
// a presigned URL is issued.
var allowedMimeTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"image/gif":       true,
	"video/mp4":       true,
	"video/mpeg":      true,
	"video/quicktime": true,
}

// UploadService sequences the upload protocol: presign, client-direct PUT,
// existence verify, metadata insert. The backend never sees the file bytes.
type UploadService struct {
	repo    repository.MediaRepository
	storage ObjectStorage
}

func NewUploadService(repo repository.MediaRepository, storage ObjectStorage) *UploadService {
	return &UploadService{repo: repo, storage: storage}
}

// CreateUploadURL issues a presigned write URL scoped to the client-chosen key
// and content type. Nothing is persisted at this stage; a client that never
// PUTs leaves no trace.
func (s *UploadService) CreateUploadURL(ctx context.Context, fileName, mimeType string) (string, error) {
	if fileName == "" || !allowedMimeTypes[mimeType] {
		return "", apperrors.ErrInvalidInput
	}

	if err := s.storage.EnsureBucket(ctx); err != nil {
		return "", err
	}

	return s.storage.PresignPut(ctx, fileName, mimeType)
}

// NotifyUpload verifies the object landed in storage and records its metadata.
// A missing object means the PUT never happened (or hasn't become visible);
// the attempt is aborted without writing anything. A notify failure after a
// successful PUT leaves an orphan blob, which is accepted, not reconciled.
func (s *UploadService) NotifyUpload(ctx context.Context, fileName, mimeType, originalFilename string, owner Viewer) (media.Item, error) {
	if fileName == "" || mimeType == "" {
		return media.Item{}, apperrors.ErrInvalidInput
	}

	exists, err := s.storage.Exists(ctx, fileName)
	if err != nil || !exists {
		// Storage errors are masked: the client-actionable signal is that the
		// upload is not there.
		return media.Item{}, apperrors.ErrNotUploaded
	}

	m := &media.Media{
		FileName:  fileName,
		Likes:     0,
		CreatedAt: time.Now(),
		Mimetype:  mimeType,
		CreatedBy: owner.Username,
	}
	if originalFilename != "" {
		m.OriginalFilename = sql.NullString{String: originalFilename, Valid: true}
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return media.Item{}, err
	}

	item := media.Item{
		ID:          m.ID,
		FileName:    m.FileName,
		URL:         s.storage.FileURL(m.FileName),
		Likes:       0,
		CreatedAt:   m.CreatedAt,
		Mimetype:    m.Mimetype,
		CreatedBy:   m.CreatedBy,
		LikedByUser: false,
		Deletable:   true,
	}
	if m.OriginalFilename.Valid {
		item.OriginalFilename = m.OriginalFilename.String
	}
	return item, nil
}
