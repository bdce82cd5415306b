package user

import "time"

// User represents the users table. Rows are created on registration and never
// updated or deleted by the application.
type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"uniqueIndex;size:50;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
}

func (User) TableName() string {
	return "users"
}
