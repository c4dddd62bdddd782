package models

import "time"

// Like is a single row in a post's liked-by set.
// The combination of UserID and PostID must be unique, so a user can be a
// member of the set at most once. Rows are hard-deleted on unlike to keep
// like counts exact.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user"`
	Post Post `gorm:"foreignKey:PostID" json:"post"`
}
