package repository

import (
	"context"
	"errors"
	"fmt"

	"snapvault/internal/domain/media"
	apperrors "snapvault/pkg/errors"

	"gorm.io/gorm"
)

type SQLiteMediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &SQLiteMediaRepository{db: db}
}

func (r *SQLiteMediaRepository) Create(ctx context.Context, m *media.Media) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *SQLiteMediaRepository) GetByID(ctx context.Context, id int64) (media.Media, error) {
	var m media.Media
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return media.Media{}, apperrors.ErrNotFound
		}
		return media.Media{}, err
	}
	return m, nil
}

func (r *SQLiteMediaRepository) List(ctx context.Context, page, limit int, filter MediaFilter) ([]media.Media, int64, error) {
	var items []media.Media
	var total int64

	q := r.db.WithContext(ctx).Model(&media.Media{})

	if filter.CreatedBy != "" {
		q = q.Where("created_by = ?", filter.CreatedBy)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("original_filename LIKE ? OR file_name LIKE ?", pattern, pattern)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit

	// Ties on created_at are broken by id so pages are stable across requests.
	if err := q.
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *SQLiteMediaRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&media.Media{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// The row vanished between the caller's ownership check and here.
		return fmt.Errorf("media %d: delete affected no rows", id)
	}
	return nil
}

// AddLike inserts the like row and increments the counter in one transaction.
// The composite unique index on likes(user_id, media_id) turns a double-like
// into a constraint violation, which doubles as the "already liked" signal.
func (r *SQLiteMediaRepository) AddLike(ctx context.Context, mediaID, userID int64) (int64, error) {
	var newCount int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&media.Like{UserID: userID, MediaID: mediaID}).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.ErrConflict
			}
			return err
		}
		if err := tx.Model(&media.Media{}).
			Where("id = ?", mediaID).
			UpdateColumn("likes", gorm.Expr("likes + ?", 1)).Error; err != nil {
			return err
		}
		return tx.Model(&media.Media{}).
			Where("id = ?", mediaID).
			Select("likes").
			Scan(&newCount).Error
	})
	if err != nil {
		return 0, err
	}
	return newCount, nil
}

// RemoveLike is the symmetric operation: a missing like row aborts the
// transaction before the counter is touched.
func (r *SQLiteMediaRepository) RemoveLike(ctx context.Context, mediaID, userID int64) (int64, error) {
	var newCount int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&media.Like{}, "user_id = ? AND media_id = ?", userID, mediaID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrConflict
		}
		if err := tx.Model(&media.Media{}).
			Where("id = ?", mediaID).
			UpdateColumn("likes", gorm.Expr("likes - ?", 1)).Error; err != nil {
			return err
		}
		return tx.Model(&media.Media{}).
			Where("id = ?", mediaID).
			Select("likes").
			Scan(&newCount).Error
	})
	if err != nil {
		return 0, err
	}
	return newCount, nil
}

// LikedMediaIDs returns the subset of mediaIDs the user has liked, so a page
// of results needs one query instead of one per row.
func (r *SQLiteMediaRepository) LikedMediaIDs(ctx context.Context, userID int64, mediaIDs []int64) ([]int64, error) {
	if len(mediaIDs) == 0 {
		return nil, nil
	}
	var ids []int64
	err := r.db.WithContext(ctx).Model(&media.Like{}).
		Where("user_id = ? AND media_id IN ?", userID, mediaIDs).
		Pluck("media_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *SQLiteMediaRepository) HasLiked(ctx context.Context, mediaID, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&media.Like{}).
		Where("user_id = ? AND media_id = ?", userID, mediaID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
