package database

import (
	"context"

	"github.com/nekidaem/microblog/models"
	"gorm.io/gorm"
)

type BlogRepo struct {
	db *gorm.DB
}

func NewBlogRepo(db *gorm.DB) *BlogRepo {
	return &BlogRepo{db}
}

// Add inserts a new blog. The unique index on account_id turns a second
// blog for the same account into errs.ErrAlreadyExists.
func (r *BlogRepo) Add(ctx context.Context, blog *models.Blog) error {
	return translateError(r.db.WithContext(ctx).Create(blog).Error)
}

// FindByID returns a blog by its ID
func (r *BlogRepo) FindByID(ctx context.Context, id uint) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.WithContext(ctx).First(&blog, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &blog, nil
}

// FindByAccountID returns the blog owned by the given account
func (r *BlogRepo) FindByAccountID(ctx context.Context, accountID uint) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&blog).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &blog, nil
}
