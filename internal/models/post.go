// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a piece of writing owned by a user.
type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Content string `gorm:"type:text;not null" json:"content"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	User    User   `gorm:"foreignKey:UserID" json:"user"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool           `gorm:"->" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
