package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nekidaem/microblog/models"
	"gorm.io/gorm"
)

type FeedTaskRepo struct {
	db *gorm.DB
}

func NewFeedTaskRepo(db *gorm.DB) *FeedTaskRepo {
	return &FeedTaskRepo{db}
}

// Claim atomically moves up to limit tasks to processing and returns them.
// Pending tasks are eligible, as are processing tasks whose claim is older
// than the visibility timeout (a worker died mid-task); reclaiming those is
// what gives the queue its at-least-once delivery.
func (r *FeedTaskRepo) Claim(ctx context.Context, limit int, visibility time.Duration) ([]models.FeedTask, error) {
	var tasks []models.FeedTask
	now := time.Now()
	cutoff := now.Add(-visibility)
	err := r.db.WithContext(ctx).Raw(`
		UPDATE feed_tasks
		SET status = ?, claimed_at = ?, attempts = attempts + 1, updated_at = ?
		WHERE id IN (
			SELECT id FROM feed_tasks
			WHERE status = ? OR (status = ? AND claimed_at < ?)
			ORDER BY created_at
			LIMIT ?
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *`,
		models.TaskProcessing, now, now,
		models.TaskPending, models.TaskProcessing, cutoff,
		limit,
	).Scan(&tasks).Error
	return tasks, translateError(err)
}

// Complete marks a task done
func (r *FeedTaskRepo) Complete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Model(&models.FeedTask{}).
		Where("id = ?", id).
		Update("status", models.TaskDone).Error
	return translateError(err)
}

// Release puts a failed task back in the pending state so the queue retries
// it; attempts stays incremented from the claim.
func (r *FeedTaskRepo) Release(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Model(&models.FeedTask{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": models.TaskPending, "claimed_at": nil}).Error
	return translateError(err)
}
