package models

import "time"

// Subscription is a directed follow relation from an account to a blog.
// The composite unique index keeps at most one active subscription per
// (account, blog) pair; concurrent duplicate inserts are serialized by the
// constraint rather than by application locking.
type Subscription struct {
	ID        uint      `json:"id" db:"id" gorm:"primaryKey"`
	AccountID uint      `json:"account_id" db:"account_id" gorm:"not null;index;uniqueIndex:idx_subscription_pair"`
	BlogID    uint      `json:"blog_id" db:"blog_id" gorm:"not null;index;uniqueIndex:idx_subscription_pair"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	Account *Account `json:"-" gorm:"foreignKey:AccountID;references:ID;constraint:OnDelete:CASCADE"`
	Blog    *Blog    `json:"-" gorm:"foreignKey:BlogID;references:ID;constraint:OnDelete:CASCADE"`
}
