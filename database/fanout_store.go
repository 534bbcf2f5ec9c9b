package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nekidaem/microblog/models"
)

// FanoutStore bundles the repository operations the fan-out worker needs
// behind one value, so the worker package depends on an interface instead
// of the individual repositories.
type FanoutStore struct {
	posts         *PostRepo
	subscriptions *SubscriptionRepo
	readMarks     *ReadMarkRepo
	tasks         *FeedTaskRepo
}

func (d Database) FanoutStore() *FanoutStore {
	return &FanoutStore{
		posts:         d.postRepo,
		subscriptions: d.subscriptionRepo,
		readMarks:     d.readMarkRepo,
		tasks:         d.feedTaskRepo,
	}
}

func (s *FanoutStore) ClaimTasks(ctx context.Context, limit int, visibility time.Duration) ([]models.FeedTask, error) {
	return s.tasks.Claim(ctx, limit, visibility)
}

func (s *FanoutStore) CompleteTask(ctx context.Context, id uuid.UUID) error {
	return s.tasks.Complete(ctx, id)
}

func (s *FanoutStore) ReleaseTask(ctx context.Context, id uuid.UUID) error {
	return s.tasks.Release(ctx, id)
}

func (s *FanoutStore) PostExists(ctx context.Context, id uint) (bool, error) {
	return s.posts.Exists(ctx, id)
}

func (s *FanoutStore) SubscriberIDs(ctx context.Context, blogID uint) ([]uint, error) {
	return s.subscriptions.SubscriberIDs(ctx, blogID)
}

func (s *FanoutStore) SubscribedBlogIDs(ctx context.Context, accountID uint) ([]uint, error) {
	return s.subscriptions.BlogIDsForAccount(ctx, accountID)
}

func (s *FanoutStore) PostIDsForBlogs(ctx context.Context, blogIDs []uint) ([]uint, error) {
	return s.posts.IDsForBlogs(ctx, blogIDs)
}

func (s *FanoutStore) AddReadMarks(ctx context.Context, accountID uint, postIDs []uint, read bool) error {
	return s.readMarks.BulkAdd(ctx, accountID, postIDs, read)
}
