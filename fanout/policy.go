package fanout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nekidaem/microblog/models"
	"github.com/rs/zerolog/log"
)

// Store is the persistence port for the fan-out worker: the task queue
// plus the subscription and read-mark operations the policies need.
type Store interface {
	ClaimTasks(ctx context.Context, limit int, visibility time.Duration) ([]models.FeedTask, error)
	CompleteTask(ctx context.Context, id uuid.UUID) error
	ReleaseTask(ctx context.Context, id uuid.UUID) error

	PostExists(ctx context.Context, id uint) (bool, error)
	SubscriberIDs(ctx context.Context, blogID uint) ([]uint, error)
	SubscribedBlogIDs(ctx context.Context, accountID uint) ([]uint, error)
	PostIDsForBlogs(ctx context.Context, blogIDs []uint) ([]uint, error)
	AddReadMarks(ctx context.Context, accountID uint, postIDs []uint, read bool) error
}

// Policy decides how a post event propagates into subscribers' read state.
// Policies must be idempotent: the queue is at-least-once and tasks for the
// same blog may run concurrently or out of order.
type Policy interface {
	Name() string
	Apply(ctx context.Context, store Store, task models.FeedTask) error
}

// PolicyFromName returns the policy for the configured name, defaulting to
// the eager sweep.
func PolicyFromName(name string) Policy {
	if name == "unread" {
		return UnreadFanoutPolicy{}
	}
	return EagerReadPolicy{}
}

// EagerReadPolicy recomputes, for every subscriber of the affected blog,
// the full set of posts visible through any of their subscriptions and
// marks all of them read. A post is born already read for its subscribers
// under this sweep; swap in UnreadFanoutPolicy to change that.
type EagerReadPolicy struct{}

func (EagerReadPolicy) Name() string { return "eager" }

func (EagerReadPolicy) Apply(ctx context.Context, store Store, task models.FeedTask) error {
	exists, err := store.PostExists(ctx, task.PostID)
	if err != nil {
		return err
	}
	if !exists {
		// Deleted between enqueue and execution, or a deletion event; the
		// sweep has nothing to anchor on either way.
		log.Warn().
			Uint("postID", task.PostID).
			Str("task", task.ID.String()).
			Msg("Post no longer exists, skipping fan-out")
		return nil
	}

	subscribers, err := store.SubscriberIDs(ctx, task.BlogID)
	if err != nil {
		return err
	}

	for _, accountID := range subscribers {
		blogIDs, err := store.SubscribedBlogIDs(ctx, accountID)
		if err != nil {
			return err
		}
		postIDs, err := store.PostIDsForBlogs(ctx, blogIDs)
		if err != nil {
			return err
		}
		if err := store.AddReadMarks(ctx, accountID, postIDs, true); err != nil {
			return err
		}
	}

	log.Info().
		Uint("blogID", task.BlogID).
		Int("subscribers", len(subscribers)).
		Msg("News feed updated")

	return nil
}

// UnreadFanoutPolicy is the incremental alternative: a new post becomes a
// single unread mark per subscriber, and deletions rely on the cascade
// having removed the marks already.
type UnreadFanoutPolicy struct{}

func (UnreadFanoutPolicy) Name() string { return "unread" }

func (UnreadFanoutPolicy) Apply(ctx context.Context, store Store, task models.FeedTask) error {
	if task.Kind == models.TaskPostDeleted {
		return nil
	}

	exists, err := store.PostExists(ctx, task.PostID)
	if err != nil {
		return err
	}
	if !exists {
		log.Warn().
			Uint("postID", task.PostID).
			Str("task", task.ID.String()).
			Msg("Post no longer exists, skipping fan-out")
		return nil
	}

	subscribers, err := store.SubscriberIDs(ctx, task.BlogID)
	if err != nil {
		return err
	}

	for _, accountID := range subscribers {
		if err := store.AddReadMarks(ctx, accountID, []uint{task.PostID}, false); err != nil {
			return err
		}
	}

	return nil
}
