package repository

import (
	"context"

	"snapvault/internal/domain/media"
	"snapvault/internal/domain/user"
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByUsername(ctx context.Context, username string) (user.User, error)
}

// MediaFilter holds the optional list constraints. Zero values mean
// "no constraint".
type MediaFilter struct {
	CreatedBy string
	Search    string
}

type MediaRepository interface {
	Create(ctx context.Context, m *media.Media) error
	GetByID(ctx context.Context, id int64) (media.Media, error)
	List(ctx context.Context, page, limit int, filter MediaFilter) ([]media.Media, int64, error)
	Delete(ctx context.Context, id int64) error
	AddLike(ctx context.Context, mediaID, userID int64) (int64, error)
	RemoveLike(ctx context.Context, mediaID, userID int64) (int64, error)
	HasLiked(ctx context.Context, mediaID, userID int64) (bool, error)
	LikedMediaIDs(ctx context.Context, userID int64, mediaIDs []int64) ([]int64, error)
}
