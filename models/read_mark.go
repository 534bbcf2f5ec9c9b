package models

import "time"

// ReadMark records that an account has read (or been delivered) a post.
// The composite unique index keeps one mark per (account, post) pair, which
// makes re-marking an already-read post an idempotent no-op at the storage
// layer.
type ReadMark struct {
	ID        uint      `json:"id" db:"id" gorm:"primaryKey"`
	AccountID uint      `json:"account_id" db:"account_id" gorm:"not null;index;uniqueIndex:idx_read_mark_pair"`
	PostID    uint      `json:"post_id" db:"post_id" gorm:"not null;index;uniqueIndex:idx_read_mark_pair"`
	Read      bool      `json:"read" db:"read" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	Account *Account `json:"-" gorm:"foreignKey:AccountID;references:ID;constraint:OnDelete:CASCADE"`
}
