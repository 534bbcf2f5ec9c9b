package database

import (
	"context"

	"github.com/nekidaem/microblog/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReadMarkRepo struct {
	db *gorm.DB
}

func NewReadMarkRepo(db *gorm.DB) *ReadMarkRepo {
	return &ReadMarkRepo{db}
}

// Add upserts a single read mark as read. An unread mark left by fan-out
// (read=false) is flipped to read; a pair that is already read stays read.
func (r *ReadMarkRepo) Add(ctx context.Context, mark *models.ReadMark) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}, {Name: "post_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"read": true}),
		}).
		Create(mark).Error
	return translateError(err)
}

// ReadPostIDs returns which of the given posts the account has already
// marked read.
func (r *ReadMarkRepo) ReadPostIDs(ctx context.Context, accountID uint, postIDs []uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.ReadMark{}).
		Where("account_id = ? AND post_id IN ? AND read = ?", accountID, postIDs, true).
		Pluck("post_id", &ids).Error
	return ids, translateError(err)
}

// BulkAdd upserts read marks for every given post. Existing pairs are left
// untouched, which keeps the fan-out sweep idempotent under at-least-once
// task delivery.
func (r *ReadMarkRepo) BulkAdd(ctx context.Context, accountID uint, postIDs []uint, read bool) error {
	if len(postIDs) == 0 {
		return nil
	}
	marks := make([]models.ReadMark, 0, len(postIDs))
	for _, postID := range postIDs {
		marks = append(marks, models.ReadMark{AccountID: accountID, PostID: postID, Read: read})
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(marks, 500).Error
	return translateError(err)
}
