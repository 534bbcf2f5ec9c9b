package database

import (
	"context"

	"github.com/nekidaem/microblog/errs"
	"github.com/nekidaem/microblog/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepo struct {
	db *gorm.DB
}

func NewSubscriptionRepo(db *gorm.DB) *SubscriptionRepo {
	return &SubscriptionRepo{db}
}

// Add inserts a subscription for the (account, blog) pair. The composite
// unique index serializes concurrent attempts; a duplicate insert affects
// zero rows and is reported as created=false, never as an error.
func (r *SubscriptionRepo) Add(ctx context.Context, accountID, blogID uint) (bool, error) {
	sub := models.Subscription{AccountID: accountID, BlogID: blogID}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&sub)
	if res.Error != nil {
		return false, translateError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// DeleteByPair removes the subscription for the pair, reporting
// errs.ErrNotFound when none exists.
func (r *SubscriptionRepo) DeleteByPair(ctx context.Context, accountID, blogID uint) error {
	res := r.db.WithContext(ctx).
		Where("account_id = ? AND blog_id = ?", accountID, blogID).
		Delete(&models.Subscription{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// BlogIDsForAccount returns the blogs the account follows, in no particular
// order; consumers treat the result as a filter set.
func (r *SubscriptionRepo) BlogIDsForAccount(ctx context.Context, accountID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("account_id = ?", accountID).
		Pluck("blog_id", &ids).Error
	return ids, translateError(err)
}

// SubscriberIDs returns the accounts subscribed to the given blog
func (r *SubscriptionRepo) SubscriberIDs(ctx context.Context, blogID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("blog_id = ?", blogID).
		Pluck("account_id", &ids).Error
	return ids, translateError(err)
}
