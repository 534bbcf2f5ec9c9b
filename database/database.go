package database

import (
	"errors"
	"strings"

	"github.com/nekidaem/microblog/errs"
	"gorm.io/gorm"
)

type Database struct {
	accountRepo      *AccountRepo
	blogRepo         *BlogRepo
	postRepo         *PostRepo
	subscriptionRepo *SubscriptionRepo
	readMarkRepo     *ReadMarkRepo
	feedTaskRepo     *FeedTaskRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		accountRepo:      NewAccountRepo(db),
		blogRepo:         NewBlogRepo(db),
		postRepo:         NewPostRepo(db),
		subscriptionRepo: NewSubscriptionRepo(db),
		readMarkRepo:     NewReadMarkRepo(db),
		feedTaskRepo:     NewFeedTaskRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) AccountRepo() *AccountRepo {
	return d.accountRepo
}

func (d Database) BlogRepo() *BlogRepo {
	return d.blogRepo
}

func (d Database) PostRepo() *PostRepo {
	return d.postRepo
}

func (d Database) SubscriptionRepo() *SubscriptionRepo {
	return d.subscriptionRepo
}

func (d Database) ReadMarkRepo() *ReadMarkRepo {
	return d.readMarkRepo
}

func (d Database) FeedTaskRepo() *FeedTaskRepo {
	return d.feedTaskRepo
}

// translateError maps GORM and driver errors onto the errs sentinels so the
// layers above never have to know which ORM produced them.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey),
		strings.Contains(err.Error(), "duplicate key"):
		return errs.ErrAlreadyExists
	}
	return err
}
