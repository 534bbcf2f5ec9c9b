package models

import (
	"time"

	"github.com/google/uuid"
)

// Feed task kinds.
const (
	TaskPostCreated = "post_created"
	TaskPostDeleted = "post_deleted"
)

// Feed task statuses.
const (
	TaskPending    = "pending"
	TaskProcessing = "processing"
	TaskDone       = "done"
)

// FeedTask is a durable fan-out job, written in the same transaction as the
// post mutation that triggered it (outbox pattern). Workers claim a task by
// flipping it to processing; a claim older than the visibility timeout is
// considered abandoned and may be claimed again, which gives the queue
// at-least-once semantics.
type FeedTask struct {
	ID        uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	PostID    uint       `json:"post_id" db:"post_id" gorm:"not null;index"`
	BlogID    uint       `json:"blog_id" db:"blog_id" gorm:"not null"`
	Kind      string     `json:"kind" db:"kind" gorm:"type:varchar(16);not null"`
	Status    string     `json:"status" db:"status" gorm:"type:varchar(16);not null;index;default:pending"`
	Attempts  int        `json:"attempts" db:"attempts" gorm:"not null;default:0"`
	ClaimedAt *time.Time `json:"claimed_at,omitempty" db:"claimed_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at" gorm:"index"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// NewFeedTask builds a pending fan-out task for the given post event.
func NewFeedTask(kind string, postID, blogID uint) FeedTask {
	return FeedTask{
		ID:     uuid.New(),
		PostID: postID,
		BlogID: blogID,
		Kind:   kind,
		Status: TaskPending,
	}
}
