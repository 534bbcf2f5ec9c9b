package services

import (
	"context"
	"errors"
	"strings"

	"github.com/nekidaem/microblog/errs"
	"github.com/nekidaem/microblog/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// PostStore is the persistence port for posts. The WithTask variants write
// the post mutation and its fan-out task in one transaction.
type PostStore interface {
	AddWithTask(ctx context.Context, post *models.Post) error
	DeleteWithTask(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id uint) (*models.Post, error)
}

// PostService owns post creation and deletion, including the ownership
// checks and the fan-out task enqueue.
type PostService struct {
	logger zerolog.Logger
	posts  PostStore
	blogs  BlogFinder
}

func NewPostService(posts PostStore, blogs BlogFinder) *PostService {
	return &PostService{
		logger: log.With().Str("service", "posts").Logger(),
		posts:  posts,
		blogs:  blogs,
	}
}

// CreatePost adds a post to the given blog on behalf of the account. Only
// the blog owner may post; title and content length limits come from the
// model.
func (s *PostService) CreatePost(ctx context.Context, accountID, blogID uint, title, content string) (*models.Post, error) {
	blog, err := s.blogs.FindByID(ctx, blogID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.NewNotFoundError("blog")
		}
		return nil, errs.NewDatabaseError("find", "blog", err)
	}

	if blog.AccountID != accountID {
		return nil, errs.NewBadRequestError("you can only add posts to your own blog")
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errs.NewInvalidArgumentError("title must not be empty")
	}
	if len([]rune(title)) > models.MaxTitleLength {
		return nil, errs.NewInvalidArgumentError("title must be at most 100 characters")
	}
	if len([]rune(content)) > models.MaxContentLength {
		return nil, errs.NewInvalidArgumentError("content must be at most 140 characters")
	}

	post := &models.Post{BlogID: blogID, Title: title, Content: content}
	if err := s.posts.AddWithTask(ctx, post); err != nil {
		return nil, errs.NewDatabaseError("create", "post", err)
	}

	s.logger.Info().
		Uint("accountID", accountID).
		Uint("blogID", blogID).
		Uint("postID", post.ID).
		Msg("Created post")

	return post, nil
}

// DeletePost removes a post owned by the account. A post that does not
// exist and a post owned by someone else are both reported as not found,
// so callers cannot probe other users' post IDs.
func (s *PostService) DeletePost(ctx context.Context, accountID, postID uint) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.NewNotFoundError("post")
		}
		return errs.NewDatabaseError("find", "post", err)
	}

	blog, err := s.blogs.FindByID(ctx, post.BlogID)
	if err != nil {
		return errs.NewDatabaseError("find", "blog", err)
	}
	if blog.AccountID != accountID {
		return errs.NewNotFoundError("post")
	}

	if err := s.posts.DeleteWithTask(ctx, post); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.NewNotFoundError("post")
		}
		return errs.NewDatabaseError("delete", "post", err)
	}

	s.logger.Info().
		Uint("accountID", accountID).
		Uint("postID", postID).
		Msg("Deleted post")

	return nil
}
