package services

import (
	"context"
	"errors"

	"github.com/nekidaem/microblog/errs"
	"github.com/nekidaem/microblog/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SubscriptionStore is the persistence port for the subscription index.
type SubscriptionStore interface {
	Add(ctx context.Context, accountID, blogID uint) (bool, error)
	DeleteByPair(ctx context.Context, accountID, blogID uint) error
	BlogIDsForAccount(ctx context.Context, accountID uint) ([]uint, error)
}

// BlogFinder resolves blogs by ID.
type BlogFinder interface {
	FindByID(ctx context.Context, id uint) (*models.Blog, error)
}

// SubscriptionService maintains the directed follow relation from accounts
// to blogs.
type SubscriptionService struct {
	logger zerolog.Logger
	subs   SubscriptionStore
	blogs  BlogFinder
}

func NewSubscriptionService(subs SubscriptionStore, blogs BlogFinder) *SubscriptionService {
	return &SubscriptionService{
		logger: log.With().Str("service", "subscriptions").Logger(),
		subs:   subs,
		blogs:  blogs,
	}
}

// Subscribe adds a subscription from the account to the blog. Subscribing
// twice is benign: the second call reports created=false and succeeds.
// Subscribing to your own blog is a conflict.
func (s *SubscriptionService) Subscribe(ctx context.Context, accountID, blogID uint) (bool, error) {
	blog, err := s.blogs.FindByID(ctx, blogID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return false, errs.NewNotFoundError("blog")
		}
		return false, errs.NewDatabaseError("find", "blog", err)
	}

	if blog.AccountID == accountID {
		return false, errs.NewConflictError("cannot subscribe to your own blog")
	}

	created, err := s.subs.Add(ctx, accountID, blogID)
	if err != nil {
		// A concurrent subscriber for the same pair lost the race on the
		// unique constraint; that still counts as already subscribed.
		if errors.Is(err, errs.ErrAlreadyExists) {
			return false, nil
		}
		return false, errs.NewDatabaseError("create", "subscription", err)
	}

	s.logger.Info().
		Uint("accountID", accountID).
		Uint("blogID", blogID).
		Bool("created", created).
		Msg("Subscribe")

	return created, nil
}

// Unsubscribe removes the subscription for the pair. A missing blog and a
// missing subscription both report not found.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, accountID, blogID uint) error {
	if _, err := s.blogs.FindByID(ctx, blogID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.NewNotFoundError("blog")
		}
		return errs.NewDatabaseError("find", "blog", err)
	}

	if err := s.subs.DeleteByPair(ctx, accountID, blogID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.NewNotFoundError("subscription")
		}
		return errs.NewDatabaseError("delete", "subscription", err)
	}

	s.logger.Info().
		Uint("accountID", accountID).
		Uint("blogID", blogID).
		Msg("Unsubscribe")

	return nil
}

// ListSubscribedBlogs returns the IDs of the blogs the account follows.
// Order is unspecified; callers use the result as a filter set.
func (s *SubscriptionService) ListSubscribedBlogs(ctx context.Context, accountID uint) ([]uint, error) {
	ids, err := s.subs.BlogIDsForAccount(ctx, accountID)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "subscriptions", err)
	}
	return ids, nil
}
