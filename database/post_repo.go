package database

import (
	"context"

	"github.com/nekidaem/microblog/models"
	"gorm.io/gorm"
)

type PostRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db}
}

// AddWithTask inserts a post and its fan-out task in one transaction, so a
// post never exists without the job that propagates it to subscribers.
func (r *PostRepo) AddWithTask(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		task := models.NewFeedTask(models.TaskPostCreated, post.ID, post.BlogID)
		return tx.Create(&task).Error
	})
	return translateError(err)
}

// DeleteWithTask removes a post and enqueues the deletion fan-out task in
// the same transaction. Read marks for the post go with it via the cascade.
func (r *PostRepo) DeleteWithTask(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Post{}, post.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		task := models.NewFeedTask(models.TaskPostDeleted, post.ID, post.BlogID)
		return tx.Create(&task).Error
	})
	return translateError(err)
}

// FindByID returns a post by its ID
func (r *PostRepo) FindByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).First(&post, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &post, nil
}

// Exists reports whether the post is still present
func (r *PostRepo) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Count(&count).Error
	return count > 0, translateError(err)
}

// ExistingIDs filters the given post IDs down to the ones that exist
func (r *PostRepo) ExistingIDs(ctx context.Context, ids []uint) ([]uint, error) {
	var existing []uint
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id IN ?", ids).
		Pluck("id", &existing).Error
	return existing, translateError(err)
}

// FeedWindow returns the most recent posts of the given blogs, newest first,
// capped at limit rows. The caller paginates within this window.
func (r *PostRepo) FeedWindow(ctx context.Context, blogIDs []uint, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("blog_id IN ?", blogIDs).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, translateError(err)
}

// IDsForBlogs returns the IDs of every post belonging to the given blogs
func (r *PostRepo) IDsForBlogs(ctx context.Context, blogIDs []uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("blog_id IN ?", blogIDs).
		Pluck("id", &ids).Error
	return ids, translateError(err)
}
