package media

import (
	"database/sql"
	"time"
)

// Media represents the media table: one row per object confirmed present in
// storage. FileName is the opaque storage key chosen by the client;
// OriginalFilename is the optional display name.
type Media struct {
	ID               int64          `gorm:"primaryKey;autoIncrement"`
	FileName         string         `gorm:"not null"`
	OriginalFilename sql.NullString
	Likes            int64     `gorm:"not null;default:0"`
	CreatedAt        time.Time `gorm:"index:idx_media_created"`
	Mimetype         string    `gorm:"not null"`
	CreatedBy        string    `gorm:"not null;index"`
}

// Like represents the likes join table. The composite unique index is what
// makes a double-like fail at insert time instead of relying on a prior
// existence check.
type Like struct {
	UserID  int64 `gorm:"uniqueIndex:uk_like_user_media,priority:1;not null"`
	MediaID int64 `gorm:"uniqueIndex:uk_like_user_media,priority:2;not null"`
}

// Item is the read-only projection of a Media row joined with the viewer's
// like and ownership status. Not persisted.
type Item struct {
	ID               int64     `json:"id"`
	FileName         string    `json:"file_name"`
	OriginalFilename string    `json:"original_filename,omitempty"`
	URL              string    `json:"url"`
	Likes            int64     `json:"likes"`
	CreatedAt        time.Time `json:"created_at"`
	Mimetype         string    `json:"mimetype"`
	CreatedBy        string    `json:"created_by"`
	LikedByUser      bool      `json:"likedByUser"`
	Deletable        bool      `json:"deletable"`
}

func (Media) TableName() string {
	return "media"
}

func (Like) TableName() string {
	return "likes"
}
