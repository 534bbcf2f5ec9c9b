package models

import "time"

// Blog is a user's single container for posts. The unique index on
// AccountID enforces the one-blog-per-account invariant; blogs are created
// explicitly, not as a side effect of account creation.
type Blog struct {
	ID        uint      `json:"id" db:"id" gorm:"primaryKey"`
	AccountID uint      `json:"account_id" db:"account_id" gorm:"not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	Posts []Post `json:"posts,omitempty" gorm:"foreignKey:BlogID;references:ID;constraint:OnDelete:CASCADE"`
}
