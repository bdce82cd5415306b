package services

import (
	"context"
	"fmt"

	"snapvault/internal/domain/media"
	"snapvault/internal/repository"
	apperrors "snapvault/pkg/errors"
)

const maxPageSize = 100

// MediaService owns metadata reads and mutations: gallery pagination, like
// toggling, and owner-gated deletes.
type MediaService struct {
	repo    repository.MediaRepository
	storage ObjectStorage
}

func NewMediaService(repo repository.MediaRepository, storage ObjectStorage) *MediaService {
	return &MediaService{repo: repo, storage: storage}
}

// Pagination describes one page of gallery results.
type Pagination struct {
	CurrentPage     int   `json:"currentPage"`
	TotalPages      int   `json:"totalPages"`
	TotalItems      int64 `json:"totalItems"`
	ItemsPerPage    int   `json:"itemsPerPage"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// LikeResult reports the outcome of a toggle.
type LikeResult struct {
	Message      string `json:"message"`
	Action       string `json:"action"`
	NewLikeCount int64  `json:"newLikeCount"`
}

func (s *MediaService) GetByID(ctx context.Context, id int64, viewer Viewer) (media.Item, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return media.Item{}, err
	}

	liked, err := s.repo.HasLiked(ctx, m.ID, viewer.ID)
	if err != nil {
		return media.Item{}, err
	}

	return s.toItem(m, liked, viewer), nil
}

func (s *MediaService) List(ctx context.Context, page, limit int, viewer Viewer, filterUser, search string) ([]media.Item, Pagination, error) {
	if page < 1 || limit < 1 || limit > maxPageSize {
		return nil, Pagination{}, apperrors.ErrInvalidInput
	}

	records, total, err := s.repo.List(ctx, page, limit, repository.MediaFilter{
		CreatedBy: filterUser,
		Search:    search,
	})
	if err != nil {
		return nil, Pagination{}, err
	}

	ids := make([]int64, len(records))
	for i, m := range records {
		ids[i] = m.ID
	}
	likedIDs, err := s.repo.LikedMediaIDs(ctx, viewer.ID, ids)
	if err != nil {
		return nil, Pagination{}, err
	}
	liked := make(map[int64]bool, len(likedIDs))
	for _, id := range likedIDs {
		liked[id] = true
	}

	items := make([]media.Item, len(records))
	for i, m := range records {
		items[i] = s.toItem(m, liked[m.ID], viewer)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	pagination := Pagination{
		CurrentPage:     page,
		TotalPages:      totalPages,
		TotalItems:      total,
		ItemsPerPage:    limit,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}

	return items, pagination, nil
}

func (s *MediaService) ToggleLike(ctx context.Context, id int64, viewer Viewer, action string) (LikeResult, error) {
	if action != "like" && action != "unlike" {
		return LikeResult{}, apperrors.ErrInvalidInput
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return LikeResult{}, err
	}

	var newCount int64
	var err error
	if action == "like" {
		newCount, err = s.repo.AddLike(ctx, id, viewer.ID)
	} else {
		newCount, err = s.repo.RemoveLike(ctx, id, viewer.ID)
	}
	if err != nil {
		return LikeResult{}, err
	}

	return LikeResult{
		Message:      fmt.Sprintf("media %sd", action),
		Action:       action,
		NewLikeCount: newCount,
	}, nil
}

// Delete removes the storage blob first, then the metadata row. If the row
// delete fails after the blob is gone the orphaned metadata is reported as an
// error; the reverse (orphan blob) cannot happen on this path.
func (s *MediaService) Delete(ctx context.Context, id int64, viewer Viewer) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if m.CreatedBy != viewer.Username {
		return apperrors.ErrForbidden
	}

	if err := s.storage.Delete(ctx, m.FileName); err != nil {
		return err
	}

	return s.repo.Delete(ctx, m.ID)
}

func (s *MediaService) toItem(m media.Media, liked bool, viewer Viewer) media.Item {
	item := media.Item{
		ID:          m.ID,
		FileName:    m.FileName,
		URL:         s.storage.FileURL(m.FileName),
		Likes:       m.Likes,
		CreatedAt:   m.CreatedAt,
		Mimetype:    m.Mimetype,
		CreatedBy:   m.CreatedBy,
		LikedByUser: liked,
		Deletable:   m.CreatedBy == viewer.Username,
	}
	if m.OriginalFilename.Valid {
		item.OriginalFilename = m.OriginalFilename.String
	}
	return item
}
