package models

import "time"

// Post is a short entry in a blog. Titles are capped at 100 characters and
// content at 140; content may be empty.
type Post struct {
	ID        uint      `json:"id" db:"id" gorm:"primaryKey"`
	BlogID    uint      `json:"blog" db:"blog_id" gorm:"not null;index"`
	Title     string    `json:"title" db:"title" gorm:"type:varchar(100);not null"`
	Content   string    `json:"content" db:"content" gorm:"type:varchar(140)"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	ReadMarks []ReadMark `json:"-" gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
}

const (
	// MaxTitleLength is the longest allowed post title.
	MaxTitleLength = 100
	// MaxContentLength is the longest allowed post body.
	MaxContentLength = 140
)
