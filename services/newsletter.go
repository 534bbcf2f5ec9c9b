package services

import (
	"context"
	"time"

	"github.com/nekidaem/microblog/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// newsletterPostCount is how many recent posts each digest mentions.
const newsletterPostCount = 5

// AccountLister returns every account for the digest sweep.
type AccountLister interface {
	FindAll(ctx context.Context) ([]models.Account, error)
}

// NewsletterService periodically logs a digest of the latest posts from
// each account's subscribed blogs. Delivery is a log line for now; the
// sweep itself is the part worth keeping.
type NewsletterService struct {
	logger   zerolog.Logger
	accounts AccountLister
	subs     SubscribedBlogLister
	posts    PostWindowStore
	interval time.Duration
}

func NewNewsletterService(accounts AccountLister, subs SubscribedBlogLister, posts PostWindowStore, interval time.Duration) *NewsletterService {
	return &NewsletterService{
		logger:   log.With().Str("service", "newsletter").Logger(),
		accounts: accounts,
		subs:     subs,
		posts:    posts,
		interval: interval,
	}
}

// Run sends a digest every interval until the context is cancelled.
func (s *NewsletterService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.interval).Msg("Newsletter sweep started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Newsletter sweep stopped")
			return
		case <-ticker.C:
			if err := s.SendDigest(ctx); err != nil {
				s.logger.Error().Err(err).Msg("Newsletter sweep failed")
			}
		}
	}
}

// SendDigest runs one sweep over all accounts.
func (s *NewsletterService) SendDigest(ctx context.Context) error {
	accounts, err := s.accounts.FindAll(ctx)
	if err != nil {
		return err
	}

	for _, account := range accounts {
		blogIDs, err := s.subs.BlogIDsForAccount(ctx, account.ID)
		if err != nil {
			return err
		}
		if len(blogIDs) == 0 {
			continue
		}

		posts, err := s.posts.FeedWindow(ctx, blogIDs, newsletterPostCount)
		if err != nil {
			return err
		}
		if len(posts) == 0 {
			continue
		}

		titles := make([]string, 0, len(posts))
		for _, post := range posts {
			titles = append(titles, post.Title)
		}

		s.logger.Info().
			Str("username", account.Username).
			Strs("latestPosts", titles).
			Msg("Daily digest")
	}

	return nil
}
